package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"jurify/internal/discovery"
	"jurify/internal/platform/config"
	"jurify/internal/platform/postgres"
	redisclient "jurify/internal/platform/redis"
	"jurify/internal/session"
	"jurify/pkg/platform/audit"
	kafkastore "jurify/pkg/platform/audit/store/kafka"
	auditmemory "jurify/pkg/platform/audit/store/memory"
	postgresstore "jurify/pkg/platform/audit/store/postgres"
)

const auditMemoryCapacity = 1000

// closers collects shutdown hooks in reverse order of acquisition.
type closers []func()

func (c *closers) add(fn func()) { *c = append(*c, fn) }

func (c closers) closeAll() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

func buildSessionRepository(ctx context.Context, cfg config.Config, log *slog.Logger, cl *closers) (session.Repository, error) {
	if cfg.Session.Store != config.StoreRedis {
		return session.NewInMemoryRepository(), nil
	}
	client, err := redisclient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	cl.add(func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	})
	log.Info("session store ready", "store", "redis")
	return session.NewRedisRepository(client.Client), nil
}

func buildAuditStore(ctx context.Context, cfg config.Config, log *slog.Logger, cl *closers) (audit.Store, error) {
	switch cfg.Audit.Sink {
	case config.StorePostgres:
		db, err := postgres.OpenDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		cl.add(func() { _ = db.Close() })
		store := postgresstore.New(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.Info("audit sink ready", "sink", "postgres")
		return store, nil
	case config.SinkKafka:
		store, err := kafkastore.New(ctx, cfg.Audit.KafkaBrokers, cfg.Audit.KafkaTopic)
		if err != nil {
			return nil, err
		}
		cl.add(store.Close)
		log.Info("audit sink ready", "sink", "kafka", "topic", cfg.Audit.KafkaTopic)
		return store, nil
	default:
		return auditmemory.NewInMemoryStore(auditMemoryCapacity), nil
	}
}

func baseCatalog(cfg config.Config) (*discovery.MemoryCatalog, error) {
	if cfg.Discovery.SeedFile == "" {
		return discovery.NewMemoryCatalog(), nil
	}
	return discovery.LoadSeedFile(cfg.Discovery.SeedFile)
}

func buildCatalog(ctx context.Context, cfg config.Config, log *slog.Logger, cl *closers) (discovery.Catalog, error) {
	if cfg.Discovery.Store != config.StorePostgres {
		return baseCatalog(cfg)
	}
	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	cl.add(pool.Close)
	log.Info("discovery catalog ready", "store", "postgres")
	return discovery.NewPostgresCatalog(pool), nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, seed discovery.SeedFile) error {
	catalog := discovery.NewPostgresCatalog(pool)
	if err := catalog.EnsureSchema(ctx); err != nil {
		return err
	}
	return catalog.Seed(ctx, seed)
}
