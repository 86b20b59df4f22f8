package model

import "time"

// RequestStatus is the lifecycle state of an event join request.
type RequestStatus string

// Status values match the enum column in the event_request table. A
// request starts Pending and transitions exactly once to Accepted or
// Rejected; both are terminal.
const (
	StatusPending  RequestStatus = "Pending"
	StatusAccepted RequestStatus = "Accepted"
	StatusRejected RequestStatus = "Rejected"
)

// EventRequest links a requesting user to an event. At most one request
// may exist per (user, event) pair, enforced by a unique key, and the
// event creator can never hold a request on their own event.
//
// Fields:
//
//	ID        – uuid primary key.
//	Event     – event being requested, joined from the events table.
//	User      – requesting user, joined from the users table.
//	Status    – Pending, Accepted or Rejected.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update (set by the decision).
type EventRequest struct {
	ID        string        // event_request.id
	Event     Event         // event_request.event_id -> events
	User      User          // event_request.user_id -> users
	Status    RequestStatus // event_request.status
	CreatedAt time.Time     // event_request.created_at
	UpdatedAt time.Time     // event_request.updated_at
}
