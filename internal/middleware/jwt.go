package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/utils"
)

// JWTAuth returns an Echo middleware that validates the Bearer access
// token from the Authorization header and stores the token subject (the
// user id) in the request context under "user_id". The secret must be the
// access-token signing secret; refresh tokens are signed with a different
// one and will not pass here.
func JWTAuth(accessSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			sub, err := utils.ParseSubject(auth, accessSecret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", sub)
			return next(c)
		}
	}
}
