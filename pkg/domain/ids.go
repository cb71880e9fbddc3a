package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	dErrors "jurify/pkg/domain-errors"
)

// SessionID identifies a gateway session. It is the value of the session cookie.
type SessionID uuid.UUID

// NewSessionID returns a random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.New())
}

// ParseSessionID parses a session id at a trust boundary (cookie, URL).
// Empty, malformed and nil UUIDs are rejected with CodeInvalidInput.
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return SessionID{}, dErrors.New(dErrors.CodeInvalidInput, "session id cannot be empty")
	}
	if len(s) > 64 {
		return SessionID{}, dErrors.New(dErrors.CodeInvalidInput, "session id is too long")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid session id")
	}
	if parsed == uuid.Nil {
		return SessionID{}, dErrors.New(dErrors.CodeInvalidInput, "session id cannot be nil")
	}
	return SessionID(parsed), nil
}

func (id SessionID) String() string {
	return uuid.UUID(id).String()
}

func (id SessionID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *SessionID) UnmarshalText(b []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(b); err != nil {
		return err
	}
	*id = SessionID(u)
	return nil
}

// IsNil reports whether the id is the zero value.
func (id SessionID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// UserID is the backend's numeric user identifier.
type UserID int64

// ParseUserID parses a positive decimal user id.
func ParseUserID(s string) (UserID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "user id cannot be empty")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid user id")
	}
	return UserID(n), nil
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// IsNil reports whether the id is unset.
func (id UserID) IsNil() bool {
	return id == 0
}
