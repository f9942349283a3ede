package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bci-users/internal/domain"
	"bci-users/internal/repository"
)

const bearerPrefix = "Bearer "

// LoginService resuelve los dos modos de login: por token y por credenciales.
type LoginService struct {
	logger *zap.Logger
	users  repository.UserRepository
	phones repository.PhoneRepository
	tokens *JWTService
	hasher PasswordHasher
	now    func() time.Time
}

func NewLoginService(
	logger *zap.Logger,
	users repository.UserRepository,
	phones repository.PhoneRepository,
	tokens *JWTService,
	hasher PasswordHasher,
) *LoginService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginService{
		logger: logger,
		users:  users,
		phones: phones,
		tokens: tokens,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// LoginWithToken re-autentica a partir de un header "Bearer <token>".
func (s *LoginService) LoginWithToken(ctx context.Context, authHeader string) (domain.UserView, error) {
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return domain.UserView{}, ErrMalformedRequest
	}
	if s.users == nil || s.phones == nil || s.tokens == nil {
		return domain.UserView{}, errors.New("login service not configured")
	}

	email, err := s.tokens.Validate(authHeader[len(bearerPrefix):])
	if err != nil {
		s.logger.Warn("token login rejected", zap.Error(err))
		return domain.UserView{}, err
	}

	user, err := s.findUser(ctx, email)
	if err != nil {
		return domain.UserView{}, err
	}
	return s.refresh(ctx, user)
}

// LoginWithCredentials autentica con email y contraseña. Una contraseña
// incorrecta no modifica el usuario almacenado.
func (s *LoginService) LoginWithCredentials(ctx context.Context, email, password string) (domain.UserView, error) {
	if s.users == nil || s.phones == nil || s.tokens == nil || s.hasher == nil {
		return domain.UserView{}, errors.New("login service not configured")
	}

	user, err := s.findUser(ctx, email)
	if err != nil {
		return domain.UserView{}, err
	}
	if !user.Active {
		s.logger.Info("credential login on disabled account", zap.String("user_id", user.ID))
		return domain.UserView{}, ErrAccountDisabled
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info("credential login with invalid password", zap.String("user_id", user.ID))
		return domain.UserView{}, ErrInvalidPassword
	}
	return s.refresh(ctx, user)
}

func (s *LoginService) findUser(ctx context.Context, email string) (domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// refresh emite un token nuevo, actualiza el ultimo login y recarga los telefonos.
func (s *LoginService) refresh(ctx context.Context, user domain.User) (domain.UserView, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.UserView{}, fmt.Errorf("issue token: %w", err)
	}
	now := s.now()
	user.Token = token
	user.LastLogin = &now

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return domain.UserView{}, err
	}
	phones, err := s.phones.FindByUserID(ctx, saved.ID)
	if err != nil {
		return domain.UserView{}, err
	}

	s.logger.Info("user logged in", zap.String("user_id", saved.ID))
	return domain.NewUserView(saved, phones), nil
}
