package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/service"
)

// AuthHandler serves registration, login and refresh-token rotation.
type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshReq struct {
	UserID       string `json:"userId" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Register handles POST /api/v1/auth/register. Duplicate emails are a
// conflict; any unexpected failure surfaces as a generic bad request so
// internals do not leak.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.Auth.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return fail(c, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "registration failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Welcome aboard! Your registration was successful.",
		"data":    toUserView(user),
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, tokens, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{
			"user":   toUserView(user),
			"tokens": tokens,
		},
	})
}

// Refresh handles POST /api/v1/auth/refresh. The presented refresh token
// is single-use: a successful rotation invalidates it.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	tokens, err := h.Auth.RefreshTokens(c.Request().Context(), req.UserID, req.RefreshToken)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": tokens})
}
