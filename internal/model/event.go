package model

import "time"

// Event is a user-created happening other users can ask to join. Events
// are immutable once created; there are no update or delete operations.
// The creation date must lie strictly after "today" (date-only
// comparison), which the service layer enforces.
//
// Fields:
//
//	ID          – uuid primary key.
//	Title       – event title.
//	Category    – free-form category used for substring filtering.
//	Description – event description.
//	Date        – when the event takes place (future-dated).
//	CreatedBy   – creator, joined from the users table.
//	CreatedAt   – timestamp of creation.
//	UpdatedAt   – timestamp of last update.
type Event struct {
	ID          string    // events.id
	Title       string    // events.title
	Category    string    // events.category
	Description string    // events.description
	Date        time.Time // events.date
	CreatedBy   User      // events.created_by -> users
	CreatedAt   time.Time // events.created_at
	UpdatedAt   time.Time // events.updated_at
}
