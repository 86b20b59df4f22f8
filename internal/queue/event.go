// Package queue defines the notification events exchanged between the
// users/events API and the email notification service, plus the publisher
// and consumer that move them over RabbitMQ.
package queue

import "encoding/json"

// Event patterns carried in the message envelope. The notifier dispatches
// on these names.
const (
	SendWelcomeEmail        = "SEND_WELCOME_EMAIL"
	SendJoinRequest         = "SEND_JOIN_REQUEST"
	SendJoinRequestResponse = "SEND_JOIN_REQUEST_RESPONSE"
)

// Envelope wraps every message on the notifications queue: a pattern
// naming the event and the raw payload.
type Envelope struct {
	Pattern string          `json:"pattern"`
	Data    json.RawMessage `json:"data"`
}

// WelcomeEmailEvent is published when a user registers.
type WelcomeEmailEvent struct {
	ToEmail string `json:"toEmail" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
}

// JoinRequestEvent is published when a user asks to join an event. It is
// addressed to the event creator.
type JoinRequestEvent struct {
	Email         string `json:"email" validate:"required,email"`
	EventTitle    string `json:"eventTitle" validate:"required"`
	RequesterName string `json:"requesterName" validate:"required"`
	Name          string `json:"name" validate:"required"`
}

// RequestDecisionEvent is published when an owner accepts or rejects a
// join request. It is addressed to the requester.
type RequestDecisionEvent struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	EventTitle string `json:"eventTitle" validate:"required"`
	Status     string `json:"status" validate:"required"`
}
