package model

import "time"

// User represents an application user record as stored in the `users`
// table. Users own zero or more events and may request to join events
// created by others. Only the bcrypt hash of the password is persisted.
//
// Fields:
//
//	ID        – uuid primary key.
//	Email     – unique email address.
//	FullName  – display name.
//	Password  – bcrypt hashed password.
//	CreatedAt – timestamp of creation.
//	UpdatedAt – timestamp of last update.
//	DeletedAt – soft-delete marker (nil while the account is live).
type User struct {
	ID        string     // users.id
	Email     string     // users.email
	FullName  string     // users.full_name
	Password  string     // users.password_hash
	CreatedAt time.Time  // users.created_at
	UpdatedAt time.Time  // users.updated_at
	DeletedAt *time.Time // users.deleted_at (nullable)
}
