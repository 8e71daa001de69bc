package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
	"github.com/sabor/restaurant-orders/internal/pkg/metrics"
)

// DefaultHashCost keeps a single bcrypt comparison well above 100ms on
// commodity hardware.
const DefaultHashCost = 12

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	hashCost int
	log      zerolog.Logger
	now      func() time.Time
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, hashCost int, log zerolog.Logger) *AuthService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = DefaultHashCost
	}
	return &AuthService{
		repo:     repo,
		tokens:   tokens,
		hashCost: hashCost,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a customer account. The role is never taken from the caller.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	user, err := s.create(ctx, name, email, password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// EnsureAdmin creates an administrator account unless the email is already
// registered. It is the only way an admin comes into existence.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			s.log.Warn().Str("user_id", existing.ID).Msg("bootstrap admin email belongs to a non-admin account")
		}
		return existing, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("ensure admin: %w", err)
	}

	user, err := s.create(ctx, name, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("bootstrap admin created")
	return user, nil
}

func (s *AuthService) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || password == "" || !validEmail(email) {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}
	return created, nil
}

// Login verifies credentials and issues a bearer token scoped to the user's
// ID and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var fieldValidator = validator.New()

func validEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}
