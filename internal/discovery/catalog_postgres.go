package discovery

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS discovery_lawyers (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	score      INTEGER NOT NULL,
	expertise  TEXT NOT NULL,
	location   TEXT NOT NULL,
	state      TEXT NOT NULL,
	language   TEXT NOT NULL,
	available  TEXT NOT NULL,
	experience TEXT NOT NULL DEFAULT '',
	rating     DOUBLE PRECISION NOT NULL DEFAULT 0,
	bio        TEXT NOT NULL DEFAULT ''
)`, `
CREATE TABLE IF NOT EXISTS discovery_ngos (
	id       INTEGER PRIMARY KEY,
	name     TEXT NOT NULL,
	score    INTEGER NOT NULL,
	cause    TEXT NOT NULL,
	location TEXT NOT NULL,
	state    TEXT NOT NULL,
	language TEXT NOT NULL,
	support  TEXT NOT NULL,
	reach    TEXT NOT NULL DEFAULT '',
	rating   DOUBLE PRECISION NOT NULL DEFAULT 0,
	bio      TEXT NOT NULL DEFAULT ''
)`}

const (
	selectLawyers = `SELECT id, name, score, expertise, location, state, language, available, experience, rating, bio
		FROM discovery_lawyers ORDER BY score DESC, id`
	selectNGOs = `SELECT id, name, score, cause, location, state, language, support, reach, rating, bio
		FROM discovery_ngos ORDER BY score DESC, id`
	upsertLawyer = `INSERT INTO discovery_lawyers (id, name, score, expertise, location, state, language, available, experience, rating, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, score = EXCLUDED.score, expertise = EXCLUDED.expertise,
			location = EXCLUDED.location, state = EXCLUDED.state, language = EXCLUDED.language,
			available = EXCLUDED.available, experience = EXCLUDED.experience, rating = EXCLUDED.rating, bio = EXCLUDED.bio`
	upsertNGO = `INSERT INTO discovery_ngos (id, name, score, cause, location, state, language, support, reach, rating, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, score = EXCLUDED.score, cause = EXCLUDED.cause,
			location = EXCLUDED.location, state = EXCLUDED.state, language = EXCLUDED.language,
			support = EXCLUDED.support, reach = EXCLUDED.reach, rating = EXCLUDED.rating, bio = EXCLUDED.bio`
)

// PostgresCatalog reads the catalog from the discovery_lawyers and
// discovery_ngos tables.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// EnsureSchema creates the catalog tables if they do not exist.
func (c *PostgresCatalog) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := c.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create discovery schema: %w", err)
		}
	}
	return nil
}

// Seed upserts every entry of seed in a single batch.
func (c *PostgresCatalog) Seed(ctx context.Context, seed SeedFile) error {
	batch := &pgx.Batch{}
	for _, l := range seed.Lawyers {
		batch.Queue(upsertLawyer, l.ID, l.Name, l.Score, l.Expertise, l.Location, l.State,
			l.Language, l.Available, l.Experience, l.Rating, l.Bio)
	}
	for _, n := range seed.NGOs {
		batch.Queue(upsertNGO, n.ID, n.Name, n.Score, n.Cause, n.Location, n.State,
			n.Language, n.Support, n.Reach, n.Rating, n.Bio)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := c.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed discovery catalog: %w", err)
	}
	return nil
}

func (c *PostgresCatalog) Lawyers(ctx context.Context) ([]Lawyer, error) {
	rows, err := c.pool.Query(ctx, selectLawyers)
	if err != nil {
		return nil, fmt.Errorf("query lawyers: %w", err)
	}
	lawyers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Lawyer, error) {
		var l Lawyer
		err := row.Scan(&l.ID, &l.Name, &l.Score, &l.Expertise, &l.Location, &l.State,
			&l.Language, &l.Available, &l.Experience, &l.Rating, &l.Bio)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan lawyers: %w", err)
	}
	return lawyers, nil
}

func (c *PostgresCatalog) NGOs(ctx context.Context) ([]NGO, error) {
	rows, err := c.pool.Query(ctx, selectNGOs)
	if err != nil {
		return nil, fmt.Errorf("query ngos: %w", err)
	}
	ngos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (NGO, error) {
		var n NGO
		err := row.Scan(&n.ID, &n.Name, &n.Score, &n.Cause, &n.Location, &n.State,
			&n.Language, &n.Support, &n.Reach, &n.Rating, &n.Bio)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan ngos: %w", err)
	}
	return ngos, nil
}
