package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bci-users/internal/domain"
	"bci-users/internal/repository"
	"bci-users/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	findCalls    int
	err          error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.err != nil {
		return domain.User{}, m.err
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) Save(_ context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return domain.User{}, m.err
	}
	if user.ID == "" {
		if _, taken := m.usersByEmail[user.Email]; taken {
			return domain.User{}, fmt.Errorf("insert user: %w", repository.ErrConflict)
		}
		user.ID = uuid.NewString()
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return user, nil
}

type mockPhoneRepo struct {
	mu     sync.Mutex
	nextID int64
	byUser map[string][]domain.Phone
}

func newMockPhoneRepo() *mockPhoneRepo {
	return &mockPhoneRepo{byUser: make(map[string][]domain.Phone)}
}

func (m *mockPhoneRepo) FindByUserID(_ context.Context, userID string) ([]domain.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Phone{}, m.byUser[userID]...), nil
}

func (m *mockPhoneRepo) SaveAll(_ context.Context, phones []domain.Phone) ([]domain.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		m.nextID++
		p.ID = m.nextID
		m.byUser[p.UserID] = append(m.byUser[p.UserID], p)
		saved = append(saved, p)
	}
	return saved, nil
}

type testServer struct {
	router *gin.Engine
	users  *mockUserRepo
	phones *mockPhoneRepo
	tokens *service.JWTService
	hasher *service.BcryptHasher
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	users := newMockUserRepo()
	phones := newMockPhoneRepo()
	tokens := service.NewJWTService(testSecret, time.Hour)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)

	userH := NewUserHandler(logger, service.NewUserService(logger, users, phones, tokens, hasher))
	loginH := NewLoginHandler(logger, service.NewLoginService(logger, users, phones, tokens, hasher))
	healthH := NewHealthHandler(logger, nil, "bci-users", "test")

	return &testServer{
		router: NewRouter(logger, tokens, userH, loginH, healthH),
		users:  users,
		phones: phones,
		tokens: tokens,
		hasher: hasher,
	}
}

func performRequest(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(rec *httptest.ResponseRecorder) (map[string]any, error) {
	var body map[string]any
	err := json.Unmarshal(rec.Body.Bytes(), &body)
	return body, err
}
