// Package store provides optional PostgreSQL persistence: aggregation run
// records for diagnostics, fetched job snapshots, and an embedding cache.
// The service runs fully without it; every caller must tolerate a nil *Store.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Liam-Hayes8/Job-Matcher/internal/types"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables the store needs if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS aggregation_runs (
			id UUID PRIMARY KEY,
			sources_queried INT NOT NULL,
			fetched_total INT NOT NULL,
			returned INT NOT NULL,
			duration_seconds DOUBLE PRECISION NOT NULL,
			diagnostics JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT,
			apply_url TEXT NOT NULL,
			source TEXT NOT NULL,
			posted_at TIMESTAMPTZ,
			payload JSONB NOT NULL,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS embedding_cache (
			text_hash TEXT PRIMARY KEY,
			provider TEXT NOT NULL,
			vector DOUBLE PRECISION[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveRun records one aggregation run's diagnostics and returns its ID.
func (s *Store) SaveRun(ctx context.Context, diag types.Diagnostics) (uuid.UUID, error) {
	id := uuid.New()
	payload, err := json.Marshal(diag)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal diagnostics: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO aggregation_runs (id, sources_queried, fetched_total, returned, duration_seconds, diagnostics)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, diag.SourcesQueried, diag.FetchedTotal, diag.Returned, diag.DurationSeconds, payload,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// UpsertJob stores or refreshes a fetched job snapshot.
func (s *Store) UpsertJob(ctx context.Context, job types.RawJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, company, location, apply_url, source, posted_at, payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   title = $2, company = $3, location = $4, apply_url = $5,
		   source = $6, posted_at = $7, payload = $8, fetched_at = NOW()`,
		job.ID, job.Title, job.Company, job.Location, job.ApplyURL, string(job.Source), job.PostedAt, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert job %s: %w", job.ID, err)
	}
	return nil
}

// UpsertJobs stores a batch of job snapshots, stopping at the first error.
func (s *Store) UpsertJobs(ctx context.Context, jobs []types.RawJob) error {
	for _, job := range jobs {
		if err := s.UpsertJob(ctx, job); err != nil {
			return err
		}
	}
	return nil
}

// GetJob retrieves a stored job snapshot; nil when not present.
func (s *Store) GetJob(ctx context.Context, id string) (*types.RawJob, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM jobs WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job %s: %w", id, err)
	}
	var job types.RawJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", id, err)
	}
	return &job, nil
}

// GetEmbedding returns a cached vector for the text; nil when not cached.
func (s *Store) GetEmbedding(ctx context.Context, provider, text string) ([]float64, error) {
	var vector []float64
	err := s.pool.QueryRow(ctx,
		`SELECT vector FROM embedding_cache WHERE text_hash = $1 AND provider = $2`,
		TextHash(text), provider,
	).Scan(&vector)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached embedding: %w", err)
	}
	return vector, nil
}

// SaveEmbedding caches a vector for the text.
func (s *Store) SaveEmbedding(ctx context.Context, provider, text string, vector []float64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO embedding_cache (text_hash, provider, vector)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (text_hash) DO UPDATE SET provider = $2, vector = $3, created_at = NOW()`,
		TextHash(text), provider, vector,
	)
	if err != nil {
		return fmt.Errorf("failed to cache embedding: %w", err)
	}
	return nil
}

// TextHash is the cache key for a piece of embedded text.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
