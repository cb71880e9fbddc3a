package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/circuit"
	"jurify/pkg/platform/ratelimit"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "jurify-app/1.0"

	searchLimit      = 5
	reverseZoom      = 18
	maxResponseBytes = 1 << 20
	rateKey          = "nominatim"
)

// Client calls the Nominatim search and reverse endpoints. Outbound calls
// queue behind a per-second budget and are guarded by a circuit breaker.
type Client struct {
	rest      *resty.Client
	tracer    trace.Tracer
	limiter   *ratelimit.Window
	perSecond int
	breaker   *circuit.Breaker
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.rest.SetHeader("User-Agent", ua)
		}
	}
}

// WithRateLimit caps outbound calls at perSecond using limiter. Calls over
// the budget wait for a slot until their context ends.
func WithRateLimit(limiter *ratelimit.Window, perSecond int) Option {
	return func(c *Client) {
		c.limiter = limiter
		c.perSecond = perSecond
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) { c.breaker = b }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		rest: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", DefaultUserAgent).
			SetResponseBodyLimit(maxResponseBytes),
		tracer:  otel.Tracer("jurify/geocoding"),
		breaker: circuit.New("nominatim", circuit.WithFailureThreshold(3), circuit.WithCooldown(30*time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		trace.SpanFromContext(resp.Request.Context()).
			SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
		return nil
	})
	c.rest.OnError(func(r *resty.Request, err error) {
		trace.SpanFromContext(r.Context()).RecordError(err)
	})
	return c
}

// Search looks up free text and returns up to five places.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Please enter a location to search")
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("addressdetails", "1")
	q.Set("limit", strconv.Itoa(searchLimit))

	var places []Place
	if err := c.get(ctx, "search", q, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Reverse resolves a coordinate to the nearest place.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	if !ValidCoordinates(lat, lon) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid coordinates")
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(reverseZoom))
	q.Set("addressdetails", "1")

	var place Place
	if err := c.get(ctx, "reverse", q, &place); err != nil {
		return nil, err
	}
	if place.DisplayName == "" && place.Address.empty() {
		return nil, dErrors.New(dErrors.CodeNotFound, "no address found for this location")
	}
	return &place, nil
}

func (c *Client) get(ctx context.Context, operation string, q url.Values, out any) error {
	ctx, span := c.tracer.Start(ctx, "nominatim "+operation, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if err := c.waitTurn(ctx); err != nil {
		span.SetStatus(codes.Error, "rate limited")
		return err
	}
	if !c.breaker.Allow() {
		span.SetStatus(codes.Error, "circuit open")
		return dErrors.New(dErrors.CodeUnavailable, "geocoding temporarily unavailable")
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(q).
		Get("/" + operation)
	if err != nil {
		span.SetStatus(codes.Error, "transport")
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.breaker.RecordFailure()
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "Unable to search location. Please check your connection.")
	}

	status := resp.StatusCode()
	if status >= 500 || status == http.StatusTooManyRequests {
		c.breaker.RecordFailure()
		span.SetStatus(codes.Error, resp.Status())
		return dErrors.New(dErrors.CodeUnavailable, fmt.Sprintf("geocoding service answered %d", status))
	}
	c.breaker.RecordSuccess()
	if status != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status())
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("geocoding service answered %d", status))
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		span.RecordError(err)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "invalid geocoding response")
	}
	return nil
}

// waitTurn blocks until the shared per-second budget has a slot.
func (c *Client) waitTurn(ctx context.Context) error {
	if c.limiter == nil || c.perSecond <= 0 {
		return nil
	}
	err := c.limiter.Wait(ctx, rateKey, c.perSecond, time.Second)
	if errors.Is(err, context.DeadlineExceeded) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "geocoding is busy, please try again")
	}
	return err
}
