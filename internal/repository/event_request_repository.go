package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/waseet/event-social/internal/model"
)

// EventRequestRepo persists join requests. Reads join both the event (with
// its creator) and the requesting user.
type EventRequestRepo struct{ DB *sql.DB }

func NewEventRequestRepo(db *sql.DB) *EventRequestRepo { return &EventRequestRepo{DB: db} }

const requestSelect = `SELECT
		r.id, r.status, r.created_at, r.updated_at,
		e.id, e.title, e.category, e.description, e.date,
		c.id, c.email, c.full_name,
		u.id, u.email, u.full_name
	FROM event_request r
	JOIN events e ON e.id = r.event_id
	JOIN users c ON c.id = e.created_by
	JOIN users u ON u.id = r.user_id`

// Create inserts a join request. The unique key on (user_id, event_id)
// backs the service-level duplicate check; a violation maps to
// ErrDuplicate.
func (r *EventRequestRepo) Create(ctx context.Context, req *model.EventRequest) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_request (id, event_id, user_id, status) VALUES (?,?,?,?)",
		req.ID, req.Event.ID, req.User.ID, req.Status)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// FindByID fetches a request with its event, the event's creator and the
// requesting user joined.
func (r *EventRequestRepo) FindByID(ctx context.Context, id string) (*model.EventRequest, error) {
	row := r.DB.QueryRowContext(ctx, requestSelect+" WHERE r.id=? LIMIT 1", id)
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// Exists reports whether the user already has a request for the event,
// regardless of its status.
func (r *EventRequestRepo) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_request WHERE user_id=? AND event_id=?",
		userID, eventID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindPendingByEventOwner returns all Pending requests against events the
// given user created, oldest first so owners review them in arrival order.
func (r *EventRequestRepo) FindPendingByEventOwner(ctx context.Context, ownerID string) ([]model.EventRequest, error) {
	rows, err := r.DB.QueryContext(ctx,
		requestSelect+" WHERE r.status=? AND e.created_by=? ORDER BY r.created_at ASC",
		model.StatusPending, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EventRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// UpdateStatus writes the decision for a request.
func (r *EventRequestRepo) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE event_request SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRequest(row rowScanner) (*model.EventRequest, error) {
	var req model.EventRequest
	err := row.Scan(
		&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt,
		&req.Event.ID, &req.Event.Title, &req.Event.Category, &req.Event.Description, &req.Event.Date,
		&req.Event.CreatedBy.ID, &req.Event.CreatedBy.Email, &req.Event.CreatedBy.FullName,
		&req.User.ID, &req.User.Email, &req.User.FullName)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
