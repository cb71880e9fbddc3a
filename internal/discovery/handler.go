package discovery

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"jurify/pkg/platform/httputil"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/discovery/lawyers", h.handleLawyers)
	r.Get("/discovery/ngos", h.handleNGOs)
	r.Get("/discovery/facets", h.handleFacets)
}

func (h *Handler) handleLawyers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.service.SearchLawyers(r.Context(), LawyerFilter{
		Query:        q.Get("q"),
		State:        q.Get("state"),
		CaseType:     q.Get("caseType"),
		Language:     q.Get("language"),
		Availability: q.Get("availability"),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleNGOs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.service.SearchNGOs(r.Context(), NGOFilter{
		Query:       q.Get("q"),
		State:       q.Get("state"),
		Cause:       q.Get("cause"),
		Language:    q.Get("language"),
		SupportType: q.Get("supportType"),
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFacets(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.Facets())
}
