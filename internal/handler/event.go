package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/waseet/event-social/internal/middleware"
	"github.com/waseet/event-social/internal/service"
)

// EventHandler serves event CRUD and the join-request workflow.
type EventHandler struct {
	Events *service.EventService
}

func NewEventHandler(events *service.EventService) *EventHandler {
	return &EventHandler{Events: events}
}

type createEventReq struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

type joinRequestReq struct {
	EventID string `json:"eventId" validate:"required"`
}

type requestDecisionReq struct {
	RequestID string `json:"requestId" validate:"required"`
	Accept    *bool  `json:"accept" validate:"required"`
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ev, err := h.Events.CreateEvent(c.Request().Context(), user, service.CreateEventInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Event created successfully",
		"data":    toEventView(*ev),
	})
}

// ListUser handles GET /api/v1/events/user/list: all events the caller
// created, unpaginated.
func (h *EventHandler) ListUser(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	events, err := h.Events.ListUserEvents(c.Request().Context(), user)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toEventViews(events)})
}

// List handles GET /api/v1/events with optional date/category filters and
// page/pageSize pagination.
func (h *EventHandler) List(c echo.Context) error {
	q := service.EventQuery{
		Category: c.QueryParam("category"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 10),
	}
	if raw := c.QueryParam("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		q.Date = &date
	}

	page, err := h.Events.ListEvents(c.Request().Context(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data": echo.Map{
			"data": toEventViews(page.Events),
			"meta": page.Meta,
		},
	})
}

// Get handles GET /api/v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	ev, err := h.Events.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": toEventView(*ev)})
}

// Join handles POST /api/v1/events/requests/join.
func (h *EventHandler) Join(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req joinRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	if err := h.Events.JoinEventRequest(c.Request().Context(), user, req.EventID); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Request sent successfully"})
}

// Requests handles GET /api/v1/events/requests/list: pending requests on
// the caller's events.
func (h *EventHandler) Requests(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	requests, err := h.Events.ListPendingRequests(c.Request().Context(), user)
	if err != nil {
		return fail(c, err)
	}
	views := make([]requestView, 0, len(requests))
	for _, req := range requests {
		views = append(views, toRequestView(req))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": views})
}

// Decide handles POST /api/v1/events/requests/action.
func (h *EventHandler) Decide(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req requestDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	msg, err := h.Events.DecideRequest(c.Request().Context(), user, req.RequestID, *req.Accept)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg})
}

func queryInt(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
