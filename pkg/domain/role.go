package domain

import (
	"strings"

	dErrors "jurify/pkg/domain-errors"
)

// Role is the account type a user registered as.
// Invariant: the value is one of the supported roles.
//
// Construct via ParseRole at trust boundaries; direct casting bypasses validation.
type Role string

const (
	RoleCitizen Role = "CITIZEN"
	RoleLawyer  Role = "LAWYER"
	RoleNGO     Role = "NGO"
	RoleAdmin   Role = "ADMIN"
)

var dashboards = map[Role]string{
	RoleCitizen: "/citizen/dashboard",
	RoleLawyer:  "/lawyer/dashboard",
	RoleNGO:     "/ngo/dashboard",
	RoleAdmin:   "/admin/dashboard",
}

// ParseRole accepts any casing ("citizen", "NGO") and returns the canonical role.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "role cannot be empty")
	}
	r := Role(strings.ToUpper(s))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported role: "+s)
	}
	return r, nil
}

// IsValid reports whether r is a supported role.
func (r Role) IsValid() bool {
	_, ok := dashboards[r]
	return ok
}

// DashboardPath is where an authenticated user of this role lands.
// Unknown roles land on the home page.
func (r Role) DashboardPath() string {
	if p, ok := dashboards[r]; ok {
		return p
	}
	return "/"
}

// Segment is the lower-case path segment used by registration endpoints.
func (r Role) Segment() string {
	return strings.ToLower(string(r))
}

// CanRegister reports whether accounts of this role may self-register.
func (r Role) CanRegister() bool {
	return r == RoleCitizen || r == RoleLawyer || r == RoleNGO
}

func (r Role) String() string {
	return string(r)
}
