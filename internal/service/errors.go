// Package service implements the business logic of the users/events
// application: registration and token lifecycle, event creation and the
// join-request workflow. This file defines the sentinel errors services
// raise; handlers translate them into HTTP statuses.
package service

import "errors"

var (
	// ErrInvalidEventDate is raised when an event's date is not strictly
	// after today (400).
	ErrInvalidEventDate = errors.New("event date must be after today")

	// ErrEventNotFound is raised when an event lookup by id fails (404).
	ErrEventNotFound = errors.New("event does not exist")

	// ErrRequestNotFound is raised when a join-request lookup by id fails
	// (404).
	ErrRequestNotFound = errors.New("event request does not exist")

	// ErrUserNotFound is raised when a user lookup by id fails (404).
	ErrUserNotFound = errors.New("user does not exist")

	// ErrRequestExists is raised on a second join request for the same
	// (user, event) pair (409).
	ErrRequestExists = errors.New("you already have a request for this event")

	// ErrRequestDecided is raised when deciding a request that is no
	// longer Pending (409).
	ErrRequestDecided = errors.New("event request already decided")

	// ErrForbidden is raised when a caller acts on a resource they do not
	// own, including requesting to join their own event (403).
	ErrForbidden = errors.New("forbidden resource")

	// ErrEmailExists is raised when registering an email that already has
	// an account (409).
	ErrEmailExists = errors.New("user already exist")

	// ErrInvalidCredentials is raised on a failed login (401).
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken is raised when a refresh token is missing
	// from the cache, already consumed, or does not match (401).
	ErrInvalidRefreshToken = errors.New("refresh token is wrong")
)
