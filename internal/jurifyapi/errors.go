package jurifyapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	dErrors "jurify/pkg/domain-errors"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the human message for err: the backend's message for API
// errors, the domain message for coded errors, else err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if msg := dErrors.MessageOf(err); msg != "" {
		return msg
	}
	return err.Error()
}

// extractMessage picks the backend message in order: JSON "message", JSON
// "error", the plain-text body, then the HTTP status text.
func extractMessage(status int, body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed != "" {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err == nil {
			if msg, ok := payload["message"].(string); ok && msg != "" {
				return msg
			}
			if msg, ok := payload["error"].(string); ok && msg != "" {
				return msg
			}
		} else if !strings.HasPrefix(trimmed, "<") {
			return trimmed
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "Request failed"
}

// CodeOf maps err to a domain code: backend statuses by class, coded errors
// as they are, anything else internal.
func CodeOf(err error) dErrors.Code {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return dErrors.CodeOf(err)
	}
	switch {
	case apiErr.Status == http.StatusUnauthorized:
		return dErrors.CodeUnauthorized
	case apiErr.Status == http.StatusForbidden:
		return dErrors.CodeForbidden
	case apiErr.Status == http.StatusNotFound:
		return dErrors.CodeNotFound
	case apiErr.Status == http.StatusConflict:
		return dErrors.CodeConflict
	case apiErr.Status == http.StatusTooManyRequests:
		return dErrors.CodeTooManyRequests
	case apiErr.Status >= 500:
		return dErrors.CodeUnavailable
	default:
		return dErrors.CodeBadRequest
	}
}

// errorBody is the JSON error envelope the backend sends. Both fields stay
// raw so an unexpected shape never fails the decode.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (b *errorBody) text() string {
	for _, raw := range []json.RawMessage{b.Message, b.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && s != "" {
			return s
		}
	}
	return ""
}

// errorMessage prefers the decoded JSON envelope and falls back to the raw
// body for non-JSON answers.
func errorMessage(resp *resty.Response) string {
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		if msg := body.text(); msg != "" {
			return msg
		}
	}
	return extractMessage(resp.StatusCode(), resp.Body())
}
