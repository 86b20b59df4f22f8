package middleware

// identity.go resolves the authenticated user id left by JWTAuth into a
// full user record so handlers receive the current user the same way the
// service layer expects it.

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/model"
)

// UserLoader fetches a user by id. Satisfied by *repository.UserRepo.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// LoadUser reads "user_id" from the context, loads the user and stores it
// under "user". A stale token whose user no longer exists (or was soft
// deleted) is rejected as unauthorized.
func LoadUser(users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get("user_id").(string)
			if !ok || id == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			user, err := users.FindByID(c.Request().Context(), id)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			c.Set("user", user)
			return next(c)
		}
	}
}

// CurrentUser extracts the user stored by LoadUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get("user").(*model.User)
	return u, ok
}
