package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"jurify/internal/admin"
	"jurify/internal/discovery"
	"jurify/internal/geocoding"
	"jurify/internal/jurifyapi"
	jwttoken "jurify/internal/jwt_token"
	"jurify/internal/platform/config"
	"jurify/internal/platform/httpserver"
	"jurify/internal/platform/logger"
	"jurify/internal/platform/metrics"
	"jurify/internal/platform/postgres"
	"jurify/internal/registration"
	"jurify/internal/session"
	sessionhandler "jurify/internal/session/handler"
	httptransport "jurify/internal/transport/http"
	"jurify/internal/verification"
	"jurify/pkg/platform/audit/publisher"
	"jurify/pkg/platform/middleware/metadata"
	"jurify/pkg/platform/ratelimit"
)

const auditBufferSize = 256

func runServe(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cl closers
	defer cl.closeAll()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	auditStore, err := buildAuditStore(ctx, cfg, log, &cl)
	if err != nil {
		return err
	}
	auditor := publisher.NewPublisher(auditStore,
		publisher.WithAsyncBuffer(auditBufferSize),
		publisher.WithLogger(log),
	)
	cl.add(auditor.Close)

	repo, err := buildSessionRepository(ctx, cfg, log, &cl)
	if err != nil {
		return err
	}

	api := jurifyapi.New(cfg.API.BaseURL, cfg.API.Timeout,
		jurifyapi.WithLatencyObserver(m),
		jurifyapi.WithRetry(cfg.API.RetryCount),
	)
	validator := registration.NewValidator()
	sessions, err := session.New(api, repo,
		session.WithLogger(log),
		session.WithMetrics(m),
		session.WithAuditPublisher(auditor),
		session.WithTTL(cfg.Session.TTL),
		session.WithTokenInspector(jwttoken.NewJWTService(cfg.JWT.SigningKey)),
		session.WithValidator(validator),
	)
	if err != nil {
		return fmt.Errorf("session service: %w", err)
	}

	pollers, err := verification.NewRegistry(api, sessions,
		verification.WithPolicy(verification.Policy{
			Interval:    cfg.Poller.Interval,
			MaxInterval: cfg.Poller.MaxInterval,
			Multiplier:  cfg.Poller.Multiplier,
			MaxAttempts: cfg.Poller.MaxAttempts,
			MaxDuration: cfg.Poller.MaxDuration,
		}),
		verification.WithLogger(log),
		verification.WithMetrics(m),
		verification.WithAuditPublisher(auditor),
	)
	if err != nil {
		return fmt.Errorf("verification registry: %w", err)
	}
	cl.add(pollers.Close)

	limiter := ratelimit.NewWindow()
	geocoder := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.Timeout,
		geocoding.WithUserAgent(cfg.Geocoding.UserAgent),
		geocoding.WithRateLimit(limiter, cfg.Geocoding.RatePerSecond),
	)
	picker := geocoding.NewPicker(geocoder, log, m)

	catalog, err := buildCatalog(ctx, cfg, log, &cl)
	if err != nil {
		return err
	}

	proxies, err := metadata.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}

	cookies := session.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Server.CookieSecure}
	router := httptransport.NewRouter(httptransport.Config{
		LoginPerMinute:   cfg.RateLimit.LoginPerMinute,
		GeocodePerMinute: cfg.RateLimit.GeocodePerMinute,
		TrustedProxies:   proxies,
	}, httptransport.Dependencies{
		Logger:   log,
		Sessions: sessions,
		Cookies:  cookies,
		Limiter:  limiter,
		Gatherer: reg,
		Session: sessionhandler.New(sessions, cookies, log,
			sessionhandler.WithValidator(validator),
			sessionhandler.WithPollStarter(pollers),
			sessionhandler.WithEnricher(picker),
			sessionhandler.WithPublicBaseURL(cfg.Server.PublicBaseURL),
		),
		Verification: verification.NewHandler(pollers, cookies, log),
		Geocoding:    geocoding.NewHandler(geocoder, picker, log),
		Discovery:    discovery.NewHandler(discovery.NewService(catalog, log), log),
		Admin:        admin.NewHandler(auditor, cfg.Server.AdminToken, log),
	})

	srv := httpserver.New(cfg.Server.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting jurify gateway",
			"addr", cfg.Server.Addr,
			"api", cfg.API.BaseURL,
			"session_store", cfg.Session.Store,
			"audit_sink", cfg.Audit.Sink,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func runSeedDiscovery(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)
	if cfg.Postgres.URL == "" {
		return errors.New("seed-discovery requires postgres.url")
	}
	base, err := baseCatalog(cfg)
	if err != nil {
		return err
	}
	seed := base.Seed()
	pool, err := postgres.NewPool(parent, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := seedCatalog(parent, pool, seed); err != nil {
		return err
	}
	log.Info("discovery catalog seeded",
		slog.Int("lawyers", len(seed.Lawyers)),
		slog.Int("ngos", len(seed.NGOs)),
	)
	return nil
}
