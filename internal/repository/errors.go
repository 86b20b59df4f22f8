// Package repository implements data access over MySQL. This file defines
// sentinel errors shared by all repositories so that the service layer can
// distinguish failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a lookup by id or unique column matches no
// live row.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a unique constraint,
// such as registering an email twice or filing a second join request for
// the same (user, event) pair.
var ErrDuplicate = errors.New("duplicate record")
