package geocoding

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

const locationNotFoundMessage = "Location not found. Please try a different search term."

// Searcher is the part of the client the search endpoint needs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// SearchResult is one selectable search hit.
type SearchResult struct {
	DisplayName string      `json:"displayName"`
	Position    GeoPosition `json:"position"`
}

// Handler serves the picker's search and reverse endpoints.
type Handler struct {
	searcher Searcher
	picker   *Picker
	logger   *slog.Logger
}

func NewHandler(searcher Searcher, picker *Picker, logger *slog.Logger) *Handler {
	return &Handler{searcher: searcher, picker: picker, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/geocode/search", h.handleSearch)
	r.Get("/geocode/reverse", h.handleReverse)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	places, err := h.searcher.Search(ctx, r.URL.Query().Get("q"))
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "location search failed",
				"request_id", requestID,
				"error", err,
			)
			err = dErrors.New(dErrors.CodeUnavailable, "Unable to search location. Please check your connection.")
		}
		httputil.WriteError(w, err)
		return
	}

	results := make([]SearchResult, 0, len(places))
	for _, p := range places {
		query, pos, err := SelectResult(p)
		if err != nil {
			continue
		}
		results = append(results, SearchResult{DisplayName: query, Position: pos})
	}
	if len(results) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, locationNotFoundMessage))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": results})
}

// handleReverse always answers with the requested position; the address is
// attached only when the lookup succeeds.
func (h *Handler) handleReverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil || !ValidCoordinates(lat, lon) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "lat and lon must be valid coordinates"))
		return
	}
	pos := GeoPosition{Latitude: lat, Longitude: lon}
	h.picker.Apply(r.Context(), &pos)
	httputil.WriteJSON(w, http.StatusOK, pos)
}
