// Package handler exposes the HTTP surface of the users/events API. Each
// handler binds and validates its request body, delegates to the service
// layer, and translates sentinel errors into HTTP statuses.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/model"
	"github.com/waseet/event-social/internal/service"
)

var validate = validator.New()

// ----- response views -----

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type creatorView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type eventView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	CreatedBy   creatorView `json:"createdBy"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type requestView struct {
	ID        string      `json:"id"`
	Status    string      `json:"status"`
	Event     eventView   `json:"event"`
	User      creatorView `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func toUserView(u *model.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toCreatorView(u model.User) creatorView {
	return creatorView{ID: u.ID, Email: u.Email, FullName: u.FullName}
}

func toEventView(ev model.Event) eventView {
	return eventView{
		ID:          ev.ID,
		Title:       ev.Title,
		Category:    ev.Category,
		Description: ev.Description,
		Date:        ev.Date,
		CreatedBy:   toCreatorView(ev.CreatedBy),
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func toEventViews(events []model.Event) []eventView {
	out := make([]eventView, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventView(ev))
	}
	return out
}

func toRequestView(req model.EventRequest) requestView {
	return requestView{
		ID:        req.ID,
		Status:    string(req.Status),
		Event:     toEventView(req.Event),
		User:      toCreatorView(req.User),
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
}

// ----- error mapping -----

// fail translates a service error into the matching HTTP response.
func fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidEventDate):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrRequestNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrRequestExists),
		errors.Is(err, service.ErrRequestDecided),
		errors.Is(err, service.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		return c.JSON(status, echo.Map{"error": "internal error"})
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}

// parseDate accepts a date-only value or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
