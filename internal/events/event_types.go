package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered            EventType = "user_registered"
	EventPasswordChanged           EventType = "password_changed"
	EventPasswordRecoveryRequested EventType = "password_recovery_requested"
	EventEmployeeCreated           EventType = "employee_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Username  string      `json:"username,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// PasswordRecoveryRequestedPayload payload. Token is the persisted recovery
// token the (simulated) mail delivery would embed in the link.
type PasswordRecoveryRequestedPayload struct {
	DisplayName string    `json:"display_name"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
	Department string `json:"department"`
}
