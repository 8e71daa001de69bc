package ports

import (
	"context"
	"time"

	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenService issues and verifies signed, time-limited identity assertions.
type TokenService interface {
	Issue(subjectID string, role domain.Role) (token string, expiresAt time.Time, err error)
	// Verify returns domain.ErrInvalidToken for malformed, tampered or expired tokens.
	Verify(token string) (*domain.AuthToken, error)
}
