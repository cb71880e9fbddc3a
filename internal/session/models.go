// Package session owns the gateway session: the tokens and normalized profile
// the backend returns on login, their storage, and the façade that performs
// every authenticated backend call on the browser's behalf.
package session

import (
	"strings"
	"time"

	"jurify/internal/jurifyapi"
	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/email"
)

// Profile is the normalized user every view renders.
type Profile struct {
	ID              domain.UserID `json:"id"`
	Email           string        `json:"email"`
	Role            domain.Role   `json:"role"`
	FirstName       string        `json:"firstName"`
	LastName        string        `json:"lastName"`
	DisplayName     string        `json:"displayName"`
	IsEmailVerified bool          `json:"isEmailVerified"`
	Phone           string        `json:"phone,omitempty"`
	Gender          string        `json:"gender,omitempty"`
	Dob             string        `json:"dob,omitempty"`
	AddressLine1    string        `json:"addressLine1,omitempty"`
	AddressLine2    string        `json:"addressLine2,omitempty"`
	City            string        `json:"city,omitempty"`
	State           string        `json:"state,omitempty"`
	Country         string        `json:"country,omitempty"`
	Pincode         string        `json:"pincode,omitempty"`
	DirectoryActive *bool         `json:"directoryActive,omitempty"`
}

// ProfileFromAuth normalizes a backend auth or /users/me payload. NGOs without
// a person name fall back to the representative, then the organisation name;
// everyone else falls back to a name derived from the email.
func ProfileFromAuth(a *jurifyapi.AuthResponse) Profile {
	if a == nil {
		return Profile{}
	}
	role, err := domain.ParseRole(a.Role)
	if err != nil {
		role = domain.Role(strings.ToUpper(strings.TrimSpace(a.Role)))
	}
	first, last := strings.TrimSpace(a.FirstName), strings.TrimSpace(a.LastName)
	if first == "" && role == domain.RoleNGO {
		first = strings.TrimSpace(a.RepName)
		if first == "" {
			first = strings.TrimSpace(a.NgoName)
		}
	}
	if first == "" && last == "" {
		first, last = email.DeriveNameFromEmail(a.Email)
	}
	return Profile{
		ID:              domain.UserID(a.UserID),
		Email:           a.Email,
		Role:            role,
		FirstName:       first,
		LastName:        last,
		DisplayName:     email.DisplayName(a.Email, first, last),
		IsEmailVerified: a.IsEmailVerified,
		Phone:           a.Phone,
		Gender:          a.Gender,
		Dob:             a.Dob,
		AddressLine1:    a.AddressLine1,
		AddressLine2:    a.AddressLine2,
		City:            a.City,
		State:           a.State,
		Country:         a.Country,
		Pincode:         a.Pincode,
		DirectoryActive: a.IsActive,
	}
}

// Session is what the gateway keeps per browser. Its ID is the cookie value.
type Session struct {
	ID           domain.SessionID `json:"id"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         Profile          `json:"user"`
	DeviceLabel  string           `json:"deviceLabel"`
	ClientIP     string           `json:"clientIp,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	ExpiresAt    time.Time        `json:"expiresAt"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Result is the normalized outcome of a façade operation. Failures carry a
// user-facing message and the code the HTTP layer maps to a status.
type Result struct {
	Success  bool         `json:"success"`
	Error    string       `json:"error,omitempty"`
	Message  string       `json:"message,omitempty"`
	User     *Profile     `json:"user,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
	Code     dErrors.Code `json:"-"`
	Session  *Session     `json:"-"`
}

// RegisterResult adds the registration outcomes: an immediate session, a
// polling token to wait on, or validation errors.
type RegisterResult struct {
	Result
	PollingToken string             `json:"pollingToken,omitempty"`
	Validation   *ValidationFailure `json:"validation,omitempty"`
}

// ValidationFailure is the rendered form validation result.
type ValidationFailure struct {
	Fields    map[string]string `json:"fields"`
	Focus     string            `json:"focus,omitempty"`
	FormError string            `json:"form_error,omitempty"`
}

// DashboardView is the payload of the role dashboards.
type DashboardView struct {
	User            Profile `json:"user"`
	DirectoryActive *bool   `json:"directoryActive,omitempty"`
	Nearby          any     `json:"nearby,omitempty"`
}
