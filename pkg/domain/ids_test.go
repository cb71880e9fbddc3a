package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "jurify/pkg/domain-errors"
)

// TestParseSessionID_Invariants validates the parsing invariant:
// "session ids must be valid, non-empty, non-nil UUIDs"
func TestParseSessionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSessionID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseSessionID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, SessionID(valid), id)
		assert.False(t, id.IsNil())
	})
}

// TestParseSessionID_CookieTampering covers values a client can put in the
// session cookie.
func TestParseSessionID_CookieTampering(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE sessions;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSessionID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseUserID(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "-4", "1.5"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := ParseUserID(input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}

	id, err := ParseUserID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, UserID(42), id)
	assert.Equal(t, "42", id.String())
}

func TestParseRole(t *testing.T) {
	t.Run("accepts any casing", func(t *testing.T) {
		r, err := ParseRole("ngo")
		require.NoError(t, err)
		assert.Equal(t, RoleNGO, r)
		assert.Equal(t, "ngo", r.Segment())
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := ParseRole("judge")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("dashboards per role", func(t *testing.T) {
		assert.Equal(t, "/citizen/dashboard", RoleCitizen.DashboardPath())
		assert.Equal(t, "/lawyer/dashboard", RoleLawyer.DashboardPath())
		assert.Equal(t, "/ngo/dashboard", RoleNGO.DashboardPath())
		assert.Equal(t, "/admin/dashboard", RoleAdmin.DashboardPath())
		assert.Equal(t, "/", Role("GUEST").DashboardPath())
	})

	t.Run("admins cannot self-register", func(t *testing.T) {
		assert.False(t, RoleAdmin.CanRegister())
		assert.True(t, RoleLawyer.CanRegister())
	})
}
