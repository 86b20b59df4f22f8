package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/middleware"
	"github.com/waseet/event-social/internal/service"
)

// UserHandler serves the authenticated user's profile.
type UserHandler struct {
	Users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type updateProfileReq struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// Me handles GET /api/v1/user.
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toUserView(user)})
}

// UpdateProfile handles PATCH /api/v1/user/profile. Absent fields are
// left unchanged.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	updated, err := h.Users.UpdateProfile(c.Request().Context(), user, service.UpdateProfileInput{
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toUserView(updated)})
}
