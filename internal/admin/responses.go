package admin

import (
	"time"

	"jurify/pkg/platform/audit"
)

// AuditEventResponse is the HTTP response DTO for one audit event.
type AuditEventResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Role      string    `json:"role,omitempty"`
	Email     string    `json:"email,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	IP        string    `json:"ip,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// AuditListResponse wraps the recent events, newest first.
type AuditListResponse struct {
	Events []*AuditEventResponse `json:"events"`
	Total  int                   `json:"total"`
}

func toAuditEventResponse(e audit.Event) *AuditEventResponse {
	resp := &AuditEventResponse{
		ID:        e.ID.String(),
		Category:  string(e.Category),
		Action:    e.Action,
		Timestamp: e.Timestamp,
		SessionID: e.SessionID,
		Role:      e.Role,
		Email:     e.Email,
		Reason:    e.Reason,
		IP:        e.IP,
		RequestID: e.RequestID,
	}
	if !e.UserID.IsNil() {
		resp.UserID = e.UserID.String()
	}
	return resp
}
