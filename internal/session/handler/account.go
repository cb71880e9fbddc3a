package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"jurify/internal/geocoding"
	"jurify/internal/jurifyapi"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

const maxProfileBytes = 64 << 10

type directoryStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

func (r *directoryStatusRequest) Validate() error {
	if r.IsActive == nil {
		return dErrors.New(dErrors.CodeBadRequest, "isActive is required")
	}
	return nil
}

// locationRequest is a map selection. Address fields may be left empty for
// the gateway to fill from a reverse lookup.
type locationRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	AddressLine1 string   `json:"addressLine1"`
	AddressLine2 string   `json:"addressLine2"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	Country      string   `json:"country"`
}

func (r *locationRequest) Validate() error {
	if r.Latitude == nil || r.Longitude == nil {
		return dErrors.New(dErrors.CodeBadRequest, "latitude and longitude are required")
	}
	if !geocoding.ValidCoordinates(*r.Latitude, *r.Longitude) {
		return dErrors.New(dErrors.CodeBadRequest, "coordinates out of range")
	}
	return nil
}

func (r *locationRequest) hasAddress() bool {
	return strings.TrimSpace(r.AddressLine1) != "" || strings.TrimSpace(r.City) != ""
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.writeResult(w, h.sessions.GetProfile(ctx, requestcontext.SessionID(ctx)), http.StatusOK)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var partial map[string]any
	if err := json.NewDecoder(io.LimitReader(r.Body, maxProfileBytes)).Decode(&partial); err != nil || len(partial) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "profile fields are required"))
		return
	}
	h.writeResult(w, h.sessions.UpdateProfile(ctx, requestcontext.SessionID(ctx), partial), http.StatusOK)
}

func (h *Handler) handleDirectoryStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[directoryStatusRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.writeResult(w, h.sessions.UpdateDirectoryStatus(ctx, requestcontext.SessionID(ctx), *req.IsActive), http.StatusOK)
}

func (h *Handler) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[locationRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	loc := jurifyapi.LocationUpdate{
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
	}
	if !req.hasAddress() && h.enricher != nil {
		pos := &geocoding.GeoPosition{Latitude: loc.Latitude, Longitude: loc.Longitude}
		h.enricher.Apply(ctx, pos)
		if a := pos.Address; a != nil {
			loc.AddressLine1 = a.AddressLine1
			loc.City = a.City
			loc.State = a.State
			loc.Pincode = a.Pincode
			loc.Country = a.Country
		}
	}
	h.writeResult(w, h.sessions.UpdateLocation(ctx, requestcontext.SessionID(ctx), loc), http.StatusOK)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	view, err := h.sessions.Dashboard(ctx, requestcontext.SessionID(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			h.cookies.ClearCookie(w)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleDirectorySearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q, err := parseDirectoryQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	raw, err := h.sessions.SearchDirectory(ctx, q)
	if err != nil {
		h.logger.WarnContext(ctx, "directory search failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, jurifyapi.CodeOf(err), jurifyapi.MessageOf(err)))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func parseDirectoryQuery(r *http.Request) (jurifyapi.DirectoryQuery, error) {
	v := r.URL.Query()
	q := jurifyapi.DirectoryQuery{
		Q:              strings.TrimSpace(v.Get("q")),
		State:          v.Get("state"),
		City:           v.Get("city"),
		Type:           v.Get("type"),
		Specialization: v.Get("specialization"),
		Languages:      v.Get("languages"),
	}
	var err error
	intParam := func(key string) *int {
		raw := strings.TrimSpace(v.Get(key))
		if raw == "" || err != nil {
			return nil
		}
		n, perr := strconv.Atoi(raw)
		if perr != nil {
			err = dErrors.New(dErrors.CodeBadRequest, "invalid "+key)
			return nil
		}
		return &n
	}
	floatParam := func(key string) float64 {
		raw := strings.TrimSpace(v.Get(key))
		if raw == "" || err != nil {
			return 0
		}
		f, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			err = dErrors.New(dErrors.CodeBadRequest, "invalid "+key)
		}
		return f
	}
	q.MinExp = intParam("minExp")
	q.MaxExp = intParam("maxExp")
	q.MinRating = floatParam("minRating")
	q.MaxRating = floatParam("maxRating")
	if p := intParam("page"); p != nil {
		q.Page = *p
	}
	if s := intParam("size"); s != nil {
		q.Size = *s
	}
	return q, err
}
