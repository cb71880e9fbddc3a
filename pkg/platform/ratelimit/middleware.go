package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	"jurify/pkg/requestcontext"
)

// PerIP limits requests per client IP. The client IP must already be in the
// context (metadata.ClientMetadata). Limiter errors fail open.
func PerIP(w *Window, class string, limit int, window time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := w.Allow(ctx, class+":"+ip, limit, window)
			if err != nil {
				logger.WarnContext(ctx, "rate limit check failed",
					"class", class,
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(rw, r)
				return
			}

			rw.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			rw.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			rw.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retry := int(result.RetryAfter(time.Now()).Seconds()) + 1
				rw.Header().Set("Retry-After", strconv.Itoa(retry))
				logger.WarnContext(ctx, "rate limit exceeded",
					"class", class,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(rw, dErrors.New(dErrors.CodeTooManyRequests, "too many requests, please try again later"))
				return
			}
			next.ServeHTTP(rw, r)
		})
	}
}
