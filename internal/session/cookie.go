package session

import (
	"net/http"
	"time"

	"jurify/pkg/domain"
)

const DefaultCookieName = "jurify_session"

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (c CookieConfig) name() string {
	if c.Name == "" {
		return DefaultCookieName
	}
	return c.Name
}

// SetCookie writes the HttpOnly session cookie for sess.
func (c CookieConfig) SetCookie(w http.ResponseWriter, sess *Session, now time.Time) {
	maxAge := int(sess.ExpiresAt.Sub(now).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    sess.ID.String(),
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (c CookieConfig) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionID reads and parses the cookie. ok is false when it is missing or
// malformed.
func (c CookieConfig) SessionID(r *http.Request) (domain.SessionID, bool) {
	cookie, err := r.Cookie(c.name())
	if err != nil {
		return domain.SessionID{}, false
	}
	id, err := domain.ParseSessionID(cookie.Value)
	if err != nil {
		return domain.SessionID{}, false
	}
	return id, true
}
