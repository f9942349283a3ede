package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bci-users/internal/domain"
	"bci-users/internal/repository"
)

// UserService coordina el registro de cuentas nuevas.
type UserService struct {
	logger *zap.Logger
	users  repository.UserRepository
	phones repository.PhoneRepository
	tokens *JWTService
	hasher PasswordHasher
	now    func() time.Time
}

func NewUserService(
	logger *zap.Logger,
	users repository.UserRepository,
	phones repository.PhoneRepository,
	tokens *JWTService,
	hasher PasswordHasher,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		logger: logger,
		users:  users,
		phones: phones,
		tokens: tokens,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// PhoneInput es un telefono ya validado por la capa HTTP.
type PhoneInput struct {
	Number      string
	CityCode    int
	CountryCode string
}

// SignUpInput agrupa los datos de registro. Las entradas nil en Phones
// corresponden a telefonos que no pasaron la validacion de forma y se descartan.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Phones   []*PhoneInput
}

// SignUp registra un usuario nuevo. El usuario se persiste dos veces: la primera
// obtiene el id, la segunda guarda el token cuyos claims ya incluyen ese id.
func (s *UserService) SignUp(ctx context.Context, input SignUpInput) (domain.UserView, error) {
	if s.users == nil || s.phones == nil || s.tokens == nil || s.hasher == nil {
		return domain.UserView{}, errors.New("user service not configured")
	}

	// La unicidad real la garantiza la restriccion de la base; esta consulta
	// solo produce un error limpio en el caso comun.
	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		s.logger.Info("sign-up rejected, email taken", zap.String("email", input.Email))
		return domain.UserView{}, ErrAccountExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.UserView{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.UserView{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Save(ctx, domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Created:      s.now(),
		Active:       true,
	})
	if err != nil {
		return domain.UserView{}, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return domain.UserView{}, fmt.Errorf("issue token: %w", err)
	}
	user.Token = token
	user, err = s.users.Save(ctx, user)
	if err != nil {
		return domain.UserView{}, err
	}

	phones, err := s.attachPhones(ctx, user.ID, input.Phones)
	if err != nil {
		return domain.UserView{}, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.Int("phones", len(phones)))
	return domain.NewUserView(user, phones), nil
}

func (s *UserService) attachPhones(ctx context.Context, userID string, inputs []*PhoneInput) ([]domain.Phone, error) {
	phones := make([]domain.Phone, 0, len(inputs))
	for _, in := range inputs {
		if in == nil {
			continue
		}
		phones = append(phones, domain.Phone{
			Number:      in.Number,
			CityCode:    in.CityCode,
			CountryCode: in.CountryCode,
			UserID:      userID,
		})
	}
	if len(phones) == 0 {
		return []domain.Phone{}, nil
	}
	return s.phones.SaveAll(ctx, phones)
}
