package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/waseet/event-social/internal/model"
	"github.com/waseet/event-social/internal/queue"
	"github.com/waseet/event-social/internal/repository"
)

// EventRepository is the storage surface the event workflow needs.
type EventRepository interface {
	Create(ctx context.Context, ev *model.Event) error
	FindByID(ctx context.Context, id string) (*model.Event, error)
	FindByCreator(ctx context.Context, userID string) ([]model.Event, error)
	Search(ctx context.Context, f repository.EventFilter) ([]model.Event, int64, error)
}

// EventRequestRepository is the storage surface for join requests.
type EventRequestRepository interface {
	Create(ctx context.Context, req *model.EventRequest) error
	FindByID(ctx context.Context, id string) (*model.EventRequest, error)
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	FindPendingByEventOwner(ctx context.Context, ownerID string) ([]model.EventRequest, error)
	UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error
}

// NotificationPublisher is the outbound port to the email notification
// service. Emission is fire-and-forget: the workflow never reacts to a
// publish failure beyond logging it.
type NotificationPublisher interface {
	Publish(ctx context.Context, pattern string, payload any) error
}

// EventService orchestrates event creation, listing and the join-request
// workflow.
type EventService struct {
	events   EventRepository
	requests EventRequestRepository
	notify   NotificationPublisher
	logger   zerolog.Logger
}

func NewEventService(events EventRepository, requests EventRequestRepository, notify NotificationPublisher, logger zerolog.Logger) *EventService {
	return &EventService{events: events, requests: requests, notify: notify, logger: logger}
}

// CreateEventInput is the validated input for CreateEvent.
type CreateEventInput struct {
	Title       string
	Category    string
	Description string
	Date        time.Time
}

// EventQuery filters and pages the public event listing.
type EventQuery struct {
	Date     *time.Time
	Category string
	Page     int
	PageSize int
}

// EventPage is one page of events plus pagination metadata.
type EventPage struct {
	Events []model.Event
	Meta   PageMeta
}

// CreateEvent persists a new event owned by user. The event date must lie
// strictly after today's local midnight; a date-only value for today is
// rejected, tomorrow is allowed.
func (s *EventService) CreateEvent(ctx context.Context, user *model.User, in CreateEventInput) (*model.Event, error) {
	today := truncateToDay(time.Now())
	if !in.Date.After(today) {
		return nil, ErrInvalidEventDate
	}
	ev := &model.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		CreatedBy:   *user,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return ev, nil
}

// ListUserEvents returns every event the user created, without pagination.
func (s *EventService) ListUserEvents(ctx context.Context, user *model.User) ([]model.Event, error) {
	return s.events.FindByCreator(ctx, user.ID)
}

// ListEvents returns a paginated page of events filtered by date lower
// bound and category substring.
func (s *EventService) ListEvents(ctx context.Context, q EventQuery) (*EventPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	rows, total, err := s.events.Search(ctx, repository.EventFilter{
		Date:     q.Date,
		Category: q.Category,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	return &EventPage{
		Events: rows,
		Meta:   NewPageMeta(total, q.Page, q.PageSize),
	}, nil
}

// GetEvent fetches an event by id with its creator joined.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

// JoinEventRequest files a Pending join request from user for the event.
// A duplicate request for the same (user, event) pair fails before the
// self-join check does. On success the event creator is notified; a
// publish failure does not roll back the created request.
func (s *EventService) JoinEventRequest(ctx context.Context, user *model.User, eventID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	exists, err := s.requests.Exists(ctx, user.ID, event.ID)
	if err != nil {
		return fmt.Errorf("check existing request: %w", err)
	}
	if exists {
		return ErrRequestExists
	}
	if user.ID == event.CreatedBy.ID {
		return ErrForbidden
	}

	req := &model.EventRequest{
		ID:     uuid.NewString(),
		Event:  *event,
		User:   *user,
		Status: model.StatusPending,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		// The unique key closes the window between the existence check
		// and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrRequestExists
		}
		return fmt.Errorf("create request: %w", err)
	}

	if err := s.notify.Publish(ctx, queue.SendJoinRequest, queue.JoinRequestEvent{
		Email:         event.CreatedBy.Email,
		EventTitle:    event.Title,
		RequesterName: user.FullName,
		Name:          event.CreatedBy.FullName,
	}); err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("join request notification not delivered")
	}
	return nil
}

// ListPendingRequests returns all Pending requests against events the
// owner created.
func (s *EventService) ListPendingRequests(ctx context.Context, owner *model.User) ([]model.EventRequest, error) {
	return s.requests.FindPendingByEventOwner(ctx, owner.ID)
}

// DecideRequest lets the event owner accept or reject a Pending join
// request. The transition is one-way: a request that is already Accepted
// or Rejected cannot be re-decided. Returns a human-readable confirmation.
func (s *EventService) DecideRequest(ctx context.Context, owner *model.User, requestID string, accept bool) (string, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrRequestNotFound
		}
		return "", err
	}

	event, err := s.GetEvent(ctx, req.Event.ID)
	if err != nil {
		return "", err
	}
	if event.CreatedBy.ID != owner.ID {
		return "", ErrForbidden
	}
	if req.Status != model.StatusPending {
		return "", ErrRequestDecided
	}

	status := model.StatusRejected
	if accept {
		status = model.StatusAccepted
	}
	if err := s.requests.UpdateStatus(ctx, req.ID, status); err != nil {
		return "", fmt.Errorf("update request status: %w", err)
	}

	if err := s.notify.Publish(ctx, queue.SendJoinRequestResponse, queue.RequestDecisionEvent{
		Email:      req.User.Email,
		Name:       req.User.FullName,
		EventTitle: event.Title,
		Status:     string(status),
	}); err != nil {
		s.logger.Warn().Err(err).Str("request_id", req.ID).Msg("decision notification not delivered")
	}

	return fmt.Sprintf("Event request %s", status), nil
}

// truncateToDay drops the time-of-day component in the local zone.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
