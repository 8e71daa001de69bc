package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sabor/restaurant-orders/internal/core/domain"
	"github.com/sabor/restaurant-orders/internal/core/ports"
)

// Context keys set by Auth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// RoleLoader looks up the current record of a token's subject.
type RoleLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth verifies the bearer token and loads the caller's role from the
// credential store. The role claim inside the token is never trusted, so a
// demoted user loses access on the next request.
func Auth(tokens ports.TokenService, users RoleLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header").
					SetInternal(domain.ErrUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header").
					SetInternal(domain.ErrInvalidToken)
			}

			claims, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").
					SetInternal(domain.ErrInvalidToken)
			}

			user, err := users.FindByID(c.Request().Context(), claims.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").
						SetInternal(domain.ErrInvalidToken)
				}
				return fmt.Errorf("auth: load user: %w", err)
			}

			c.Set(ContextUserID, user.ID)
			c.Set(ContextRole, user.Role)

			return next(c)
		}
	}
}
