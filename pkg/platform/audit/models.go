package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "jurify/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route or retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers account lifecycle events (registration,
	// verification) that must survive for the life of the account.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers failed logins and sessions ended by the gateway.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine session activity.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by the session façade and the verification poller.
// It is transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	UserID    id.UserID
	SessionID string
	Role      string
	// Email is only set on failed logins and registrations.
	Email     string
	Action    string
	Reason    string
	IP        string
	RequestID string
}

type AuditEvent string

const (
	EventLoginSucceeded         AuditEvent = "login_succeeded"
	EventLoginFailed            AuditEvent = "login_failed"
	EventRegistered             AuditEvent = "registered"
	EventVerificationCompleted  AuditEvent = "verification_completed"
	EventVerificationAbandoned  AuditEvent = "verification_abandoned"
	EventLoggedOut              AuditEvent = "logged_out"
	EventTokenRefreshed         AuditEvent = "token_refreshed"
	EventSessionExpired         AuditEvent = "session_expired"
	EventOAuth2Completed        AuditEvent = "oauth2_completed"
	EventPasswordResetRequested AuditEvent = "password_reset_requested"
	EventPasswordReset          AuditEvent = "password_reset"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventRegistered:            CategoryCompliance,
	EventVerificationCompleted: CategoryCompliance,
	EventPasswordReset:         CategoryCompliance,

	EventLoginFailed:            CategorySecurity,
	EventSessionExpired:         CategorySecurity,
	EventVerificationAbandoned:  CategorySecurity,
	EventPasswordResetRequested: CategorySecurity,

	EventLoginSucceeded:  CategoryOperations,
	EventLoggedOut:       CategoryOperations,
	EventTokenRefreshed:  CategoryOperations,
	EventOAuth2Completed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events. Implementations: store/memory, store/postgres,
// store/kafka.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// Normalize fills the id, category and timestamp of e when unset.
func Normalize(e Event, now time.Time) Event {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = now
	}
	if e.Category == "" {
		e.Category = AuditEvent(e.Action).Category()
	}
	return e
}
