package testutil

import (
	"net/http"

	id "jurify/pkg/domain"
	"jurify/pkg/requestcontext"
)

// WithSession adds the identity the session loader would have resolved.
// Invalid session ids and roles are silently ignored.
func WithSession(req *http.Request, sessionID, role string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseSessionID(sessionID); err == nil {
		ctx = requestcontext.WithSessionID(ctx, parsed)
	}
	if parsed, err := id.ParseRole(role); err == nil {
		ctx = requestcontext.WithRole(ctx, parsed)
	}
	return req.WithContext(ctx)
}
