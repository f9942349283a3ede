package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"bci-users/internal/domain"
	"bci-users/internal/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string

	findCalls int
	saveCalls int
	findErr   error
	saveErr   error
	// hideOnFind simula la carrera: FindByEmail no ve al usuario aunque exista.
	hideOnFind bool
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
	if m.findErr != nil {
		return domain.User{}, m.findErr
	}
	id, ok := m.usersByEmail[email]
	if !ok || m.hideOnFind {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepo) Save(_ context.Context, user domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.saveErr != nil {
		return domain.User{}, m.saveErr
	}
	if user.ID == "" {
		if _, taken := m.usersByEmail[user.Email]; taken {
			return domain.User{}, fmt.Errorf("insert user: %w", repository.ErrConflict)
		}
		user.ID = uuid.NewString()
	} else if _, ok := m.usersByID[user.ID]; !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return user, nil
}

func (m *mockUserRepo) put(user domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
}

func (m *mockUserRepo) get(email string) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, false
	}
	return m.usersByID[id], true
}

type mockPhoneRepo struct {
	mu       sync.Mutex
	nextID   int64
	byUser   map[string][]domain.Phone
	saveAll  int
	findErr  error
	saveErr  error
	findCall int
}

func newMockPhoneRepo() *mockPhoneRepo {
	return &mockPhoneRepo{byUser: make(map[string][]domain.Phone)}
}

func (m *mockPhoneRepo) FindByUserID(_ context.Context, userID string) ([]domain.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCall++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return append([]domain.Phone{}, m.byUser[userID]...), nil
}

func (m *mockPhoneRepo) SaveAll(_ context.Context, phones []domain.Phone) ([]domain.Phone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveAll++
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	saved := make([]domain.Phone, 0, len(phones))
	for _, p := range phones {
		m.nextID++
		p.ID = m.nextID
		m.byUser[p.UserID] = append(m.byUser[p.UserID], p)
		saved = append(saved, p)
	}
	return saved, nil
}
