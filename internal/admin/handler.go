// Package admin serves the operator endpoints behind the static admin token.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/audit"
	"jurify/pkg/platform/httputil"
	adminmw "jurify/pkg/platform/middleware/admin"
	"jurify/pkg/requestcontext"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditReader lists the newest audit events.
type AuditReader interface {
	Recent(ctx context.Context, limit int) ([]audit.Event, error)
}

type Handler struct {
	audit  AuditReader
	token  string
	logger *slog.Logger
}

func NewHandler(reader AuditReader, token string, logger *slog.Logger) *Handler {
	return &Handler{audit: reader, token: token, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(adminmw.RequireAdminToken(h.token, h.logger))
		r.Get("/internal/audit/recent", h.handleRecentAudit)
	})
}

func (h *Handler) handleRecentAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = min(n, maxAuditLimit)
	}

	events, err := h.audit.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	resp := AuditListResponse{Events: make([]*AuditEventResponse, 0, len(events)), Total: len(events)}
	for _, e := range events {
		resp.Events = append(resp.Events, toAuditEventResponse(e))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
