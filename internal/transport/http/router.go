// Package httptransport assembles the gateway's HTTP surface: the middleware
// chain, every feature handler and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jurify/internal/session"
	dErrors "jurify/pkg/domain-errors"
	"jurify/pkg/platform/httputil"
	authmw "jurify/pkg/platform/middleware/auth"
	"jurify/pkg/platform/middleware/metadata"
	"jurify/pkg/platform/middleware/request"
	"jurify/pkg/platform/middleware/requesttime"
	"jurify/pkg/platform/ratelimit"
)

// Routes is implemented by every feature handler.
type Routes interface {
	Register(r chi.Router)
}

// Config holds the per-IP request limits and the proxies whose forwarding
// headers identify the client. Zero disables a limit.
type Config struct {
	LoginPerMinute   int
	GeocodePerMinute int
	TrustedProxies   []netip.Prefix
}

// Dependencies are the collaborators the router mounts. Nil handlers are
// skipped.
type Dependencies struct {
	Logger   *slog.Logger
	Sessions authmw.SessionResolver
	Cookies  session.CookieConfig
	Limiter  *ratelimit.Window
	Gatherer prometheus.Gatherer

	Session      Routes
	Verification Routes
	Geocoding    Routes
	Discovery    Routes
	Admin        Routes
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewRouter builds the gateway router.
func NewRouter(cfg Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata(cfg.TrustedProxies...))
	r.Use(requesttime.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "The page you are looking for does not exist."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.ErrorResponse{Error: "method_not_allowed"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	if deps.Admin != nil {
		deps.Admin.Register(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(authmw.LoadSession(deps.Sessions, deps.Cookies.SessionID, deps.Logger))

		r.Get(authmw.UnauthorizedPath, func(w http.ResponseWriter, _ *http.Request) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "You do not have permission to view this page."))
		})

		if deps.Session != nil {
			r.Group(func(r chi.Router) {
				if deps.Limiter != nil && cfg.LoginPerMinute > 0 {
					r.Use(onlyFor(isCredentialSubmission,
						ratelimit.PerIP(deps.Limiter, "auth", cfg.LoginPerMinute, time.Minute, deps.Logger)))
				}
				deps.Session.Register(r)
			})
		}
		if deps.Verification != nil {
			deps.Verification.Register(r)
		}
		if deps.Discovery != nil {
			deps.Discovery.Register(r)
		}
		if deps.Geocoding != nil {
			r.Group(func(r chi.Router) {
				if deps.Limiter != nil && cfg.GeocodePerMinute > 0 {
					r.Use(ratelimit.PerIP(deps.Limiter, "geocode", cfg.GeocodePerMinute, time.Minute, deps.Logger))
				}
				deps.Geocoding.Register(r)
			})
		}
	})
	return r
}

// isCredentialSubmission matches the endpoints that take a password or
// create an account.
func isCredentialSubmission(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	switch r.URL.Path {
	case "/auth/login", "/auth/forgot-password", "/auth/reset-password":
		return true
	}
	return strings.HasPrefix(r.URL.Path, "/register/") && !strings.HasPrefix(r.URL.Path, "/register/validate/")
}

// onlyFor applies mw to the requests matched by match.
func onlyFor(match func(*http.Request) bool, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if match(r) {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
