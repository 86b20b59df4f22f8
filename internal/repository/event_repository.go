package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/waseet/event-social/internal/model"
)

// EventRepo persists events. Every read joins the creator so that callers
// always see a fully populated CreatedBy.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// EventFilter narrows and pages the event listing. Date keeps events on or
// after the given day; Category is a case-insensitive substring match.
type EventFilter struct {
	Date     *time.Time
	Category string
	Page     int
	PageSize int
}

const eventSelect = `SELECT
		e.id, e.title, e.category, e.description, e.date, e.created_at, e.updated_at,
		u.id, u.email, u.full_name
	FROM events e
	JOIN users u ON u.id = e.created_by`

// Create inserts an event row owned by ev.CreatedBy.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (id, title, category, description, date, created_by) VALUES (?,?,?,?,?,?)",
		ev.ID, ev.Title, ev.Category, ev.Description, ev.Date, ev.CreatedBy.ID)
	return err
}

// FindByID fetches an event with its creator joined.
func (r *EventRepo) FindByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.DB.QueryRowContext(ctx, eventSelect+" WHERE e.id=? LIMIT 1", id)
	ev, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ev, nil
}

// FindByCreator returns all events owned by the given user, newest first.
func (r *EventRepo) FindByCreator(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		eventSelect+" WHERE e.created_by=? ORDER BY e.created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

// Search returns one page of events matching the filter together with the
// total match count, ordered by event date ascending.
func (r *EventRepo) Search(ctx context.Context, f EventFilter) ([]model.Event, int64, error) {
	where := []string{"1=1"}
	args := []any{}
	if f.Date != nil {
		where = append(where, "e.date >= ?")
		args = append(args, *f.Date)
	}
	if f.Category != "" {
		where = append(where, "LOWER(e.category) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Category)+"%")
	}
	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := "SELECT COUNT(*) FROM events e WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.PageSize
	offset := (f.Page - 1) * f.PageSize
	dataArgs := append(append([]any{}, args...), limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		eventSelect+" WHERE "+cond+" ORDER BY e.date ASC LIMIT ? OFFSET ?", dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanEvent(row rowScanner) (*model.Event, error) {
	var ev model.Event
	err := row.Scan(
		&ev.ID, &ev.Title, &ev.Category, &ev.Description, &ev.Date, &ev.CreatedAt, &ev.UpdatedAt,
		&ev.CreatedBy.ID, &ev.CreatedBy.Email, &ev.CreatedBy.FullName)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	out := []model.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}
