package verification

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"jurify/internal/session"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

// Pollers is the registry surface the handler serves.
type Pollers interface {
	Status(token string) Status
	Claim(token string) (*session.Session, bool)
	Cancel(ctx context.Context, token string) bool
}

type Handler struct {
	pollers Pollers
	cookies session.CookieConfig
	logger  *slog.Logger
	now     func() time.Time
}

func NewHandler(pollers Pollers, cookies session.CookieConfig, logger *slog.Logger) *Handler {
	return &Handler{pollers: pollers, cookies: cookies, logger: logger, now: time.Now}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/verification/{token}", h.handleStatus)
	r.Delete("/auth/verification/{token}", h.handleCancel)
}

// handleStatus reports the poller state. The first request after verification
// receives the session cookie.
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	st := h.pollers.Status(token)
	if st.State == StateIdle {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no verification in progress for this token"))
		return
	}
	if sess, ok := h.pollers.Claim(token); ok {
		h.cookies.SetCookie(w, sess, h.now())
		h.logger.InfoContext(r.Context(), "verification completed, session issued",
			"request_id", requestcontext.RequestID(r.Context()),
			"generation", st.Generation,
		)
	}
	httputil.WriteJSON(w, http.StatusOK, st)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if !h.pollers.Cancel(r.Context(), token) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no running verification for this token"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.pollers.Status(token))
}
