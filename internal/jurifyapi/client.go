// Package jurifyapi is the HTTP client for the Jurify backend REST API.
package jurifyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"jurify/pkg/domain"
	dErrors "jurify/pkg/domain-errors"
)

const (
	retryWait    = 200 * time.Millisecond
	retryMaxWait = 2 * time.Second
)

// LatencyObserver records backend call latency.
type LatencyObserver interface {
	ObserveAPILatency(endpoint, status string, start time.Time)
}

type routeKey struct{}

type Client struct {
	rest    *resty.Client
	tracer  trace.Tracer
	latency LatencyObserver
}

type Option func(*Client)

func WithLatencyObserver(o LatencyObserver) Option {
	return func(c *Client) { c.latency = o }
}

// WithRetry retries idempotent calls that failed in transport or with a
// gateway error, up to count extra attempts.
func WithRetry(count int) Option {
	return func(c *Client) {
		if count > 0 {
			c.rest.SetRetryCount(count)
		}
	}
}

// New creates a client for the API rooted at baseURL (e.g. http://host/api).
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		rest: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json").
			SetError(&errorBody{}).
			SetRetryWaitTime(retryWait).
			SetRetryMaxWaitTime(retryMaxWait).
			AddRetryCondition(retryIdempotent),
		tracer: otel.Tracer("jurify/jurifyapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rest.OnBeforeRequest(c.injectTrace)
	c.rest.OnAfterResponse(c.observeResponse)
	c.rest.OnError(c.observeError)
	return c
}

// Login never triggers a refresh: a 401 here means bad credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var out TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refreshToken}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "Session expired"}
	}
	return &out, nil
}

// Logout revokes the refresh token on the backend.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", "", map[string]string{"refreshToken": refreshToken}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", "", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"token":       token,
		"newPassword": newPassword,
	}, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (*AuthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/auth/verify-email", func(r *resty.Request) {
		r.SetQueryParam("token", token)
	})
	if err != nil {
		return nil, err
	}
	var out AuthResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PollVerification asks whether the account behind pollingToken is verified.
// 202 (or a 200 without tokens) means still pending.
func (c *Client) PollVerification(ctx context.Context, pollingToken string) (PollResult, error) {
	resp, err := c.do(ctx, http.MethodPost, "/auth/poll-verification", func(r *resty.Request) {
		r.SetBody(map[string]string{"pollingToken": pollingToken})
	})
	if err != nil {
		return PollResult{}, err
	}
	if resp.StatusCode() == http.StatusAccepted || len(bytes.TrimSpace(resp.Body())) == 0 {
		return PollResult{}, nil
	}
	var out AuthResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return PollResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "invalid verification response")
	}
	if !out.HasTokens() {
		return PollResult{}, nil
	}
	return PollResult{Verified: true, Auth: &out}, nil
}

// Register posts the multipart submission to /register/{role}: the JSON
// "data" part, the role field, then every file part in order.
func (c *Client) Register(ctx context.Context, role domain.Role, req RegisterRequest) (*RegisterResponse, error) {
	data, err := json.Marshal(req.Data)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode registration data")
	}

	resp, err := c.do(ctx, http.MethodPost, "/register/"+role.Segment(), func(r *resty.Request) {
		r.SetMultipartField("data", "blob", "application/json", bytes.NewReader(data))
		r.SetMultipartFormData(map[string]string{"role": role.Segment()})
		for _, f := range req.Files {
			ct := f.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			r.SetMultipartField(f.Field, f.Filename, ct, bytes.NewReader(f.Content))
		}
	})
	if err != nil {
		return nil, err
	}
	var out RegisterResponse
	if err := decode(resp, &out); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "invalid registration response")
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context, accessToken string) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, accessToken string, fields map[string]any) error {
	return c.doJSON(ctx, http.MethodPut, "/users/profile", accessToken, fields, nil)
}

func (c *Client) UpdateDirectoryStatus(ctx context.Context, accessToken string, isActive bool) error {
	return c.doJSON(ctx, http.MethodPatch, "/users/directory-status", accessToken, map[string]bool{"isActive": isActive}, nil)
}

func (c *Client) UpdateLocation(ctx context.Context, accessToken string, loc LocationUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "/users/profile/location", accessToken, loc, nil)
}

// SearchDirectory returns the backend page untouched.
func (c *Client) SearchDirectory(ctx context.Context, q DirectoryQuery) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, "/public/directory/search", func(r *resty.Request) {
		r.SetQueryParamsFromValues(q.Values())
	})
	if err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(resp.Body())
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(raw), nil
}

func (c *Client) doJSON(ctx context.Context, method, route, token string, in, out any) error {
	resp, err := c.do(ctx, method, route, func(r *resty.Request) {
		if token != "" {
			r.SetAuthToken(token)
		}
		if in != nil {
			r.SetBody(in)
		}
	})
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(resp, out)
}

// decode unmarshals a 2xx body; an empty body leaves out untouched.
func decode(resp *resty.Response, out any) error {
	raw := resp.Body()
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "invalid response from server")
	}
	return nil
}

// do runs one call under its own span. Error answers become *APIError;
// transport failures become coded errors.
func (c *Client) do(ctx context.Context, method, route string, build func(*resty.Request)) (*resty.Response, error) {
	ctx, span := c.tracer.Start(ctx, "jurifyapi "+method+" "+route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", route),
		))
	defer span.End()

	req := c.rest.R().SetContext(context.WithValue(ctx, routeKey{}, route))
	if build != nil {
		build(req)
	}
	resp, err := req.Execute(method, route)
	if err != nil {
		span.SetStatus(codes.Error, "transport")
		return nil, transportError(ctx, err)
	}
	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode(), Message: errorMessage(resp)}
		span.SetStatus(codes.Error, apiErr.Message)
		return resp, apiErr
	}
	return resp, nil
}

func transportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "The server took too long to respond")
		}
		return ctxErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "The server took too long to respond")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "Unable to reach the server. Please try again.")
}

func (c *Client) injectTrace(_ *resty.Client, r *resty.Request) error {
	otel.GetTextMapPropagator().Inject(r.Context(), propagation.HeaderCarrier(r.Header))
	return nil
}

func (c *Client) observeResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))
	c.observe(ctx, strconv.Itoa(resp.StatusCode()), resp.Request.Time)
	return nil
}

func (c *Client) observeError(r *resty.Request, err error) {
	ctx := r.Context()
	var respErr *resty.ResponseError
	if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.RawResponse != nil {
		// The response hook already observed this attempt.
		return
	}
	trace.SpanFromContext(ctx).RecordError(err)
	c.observe(ctx, "error", r.Time)
}

func (c *Client) observe(ctx context.Context, status string, start time.Time) {
	if c.latency == nil {
		return
	}
	route, _ := ctx.Value(routeKey{}).(string)
	if start.IsZero() {
		start = time.Now()
	}
	c.latency.ObserveAPILatency(route, status, start)
}

// retryIdempotent retries reads that failed in transport or hit a gateway
// error. Writes are never replayed.
func retryIdempotent(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return resp.Request.Context().Err() == nil
	}
	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
