package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabor/restaurant-orders/internal/api/middleware"
	"github.com/sabor/restaurant-orders/internal/core/domain"
)

// ctxActor extracts the identity injected by the Auth middleware. Both
// values must be present; their absence means the route was mounted without
// the gate, which is treated as unauthenticated.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get(middleware.ContextUserID).(string)
	role, _ := c.Get(middleware.ContextRole).(domain.Role)
	if userID == "" || role == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims").
			SetInternal(domain.ErrUnauthenticated)
	}
	return domain.Actor{UserID: userID, Role: role}, nil
}
