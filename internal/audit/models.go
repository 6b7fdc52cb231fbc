package audit

import (
	"time"

	"github.com/google/uuid"

	id "lahu/pkg/domain"
)

// EventType names an auditable action.
type EventType string

const (
	EventUserCreated           EventType = "user_created"
	EventProfileUpdated        EventType = "profile_updated"
	EventLoginSucceeded        EventType = "login_succeeded"
	EventLoginFailed           EventType = "login_failed"
	EventLogout                EventType = "logout"
	EventDonorRegistered       EventType = "donor_registered"
	EventRequestCreated        EventType = "request_created"
	EventRequestStatusChanged  EventType = "request_status_changed"
	EventDonationRecorded      EventType = "donation_recorded"
	EventDonationStatusChanged EventType = "donation_status_changed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Action     string            `json:"action"`
	UserID     id.UserID         `json:"user_id"`
	Subject    string            `json:"subject,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	ClientIP   string            `json:"client_ip,omitempty"`
	UserAgent  string            `json:"user_agent,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
