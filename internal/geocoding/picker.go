package geocoding

import (
	"context"
	"errors"
	"log/slog"

	"jurify/internal/platform/metrics"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/requestcontext"
)

// Reverser is the part of the client the picker needs.
type Reverser interface {
	Reverse(ctx context.Context, lat, lon float64) (*Place, error)
}

// Picker applies map selections to a form's position and enriches them with
// an address. Lookup failures never surface: the raw position is kept.
type Picker struct {
	geocoder Reverser
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewPicker(geocoder Reverser, logger *slog.Logger, m *metrics.Metrics) *Picker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Picker{geocoder: geocoder, logger: logger, metrics: m}
}

// Apply fills pos.Address from a reverse lookup of its coordinates. pos keeps
// its coordinates whatever the lookup does.
func (p *Picker) Apply(ctx context.Context, pos *GeoPosition) {
	if pos == nil || p.geocoder == nil {
		return
	}
	place, err := p.geocoder.Reverse(ctx, pos.Latitude, pos.Longitude)
	if err != nil {
		p.metrics.IncGeocodeFailure("reverse", causeOf(err))
		p.logger.WarnContext(ctx, "reverse geocoding failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		return
	}
	addr := ExtractAddress(*place)
	pos.Address = &addr
}

func causeOf(err error) string {
	switch {
	case dErrors.HasCode(err, dErrors.CodeTimeout):
		return "rate_limited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		return "not_found"
	case dErrors.HasCode(err, dErrors.CodeUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
