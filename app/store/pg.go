// Package store is the PostgreSQL persistence layer: schema setup, surrogate
// id allocation, the streaming bulk loader, the whole-work delete cascade,
// and the collection taxonomy.
package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/parser"
)

//go:embed schema.sql
var schemaSQL string

// Store is the persistence surface the ingestion pipeline runs against.
type Store interface {
	WorkExists(ctx context.Context, workName string) (bool, error)
	NextIDs(ctx context.Context) (*corpus.IDSpace, error)
	EnsureCollection(ctx context.Context, c corpus.Collection) (int64, error)
	Load(ctx context.Context, res *parser.Result, links []corpus.WorkCollection) (*Counts, error)
	DeleteWork(ctx context.Context, workName string) (*Counts, error)
}

type PgStore struct {
	pool *pgxpool.Pool
}

var _ Store = &PgStore{}

func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *PgStore) Close() {
	s.pool.Close()
}

// Connect opens a pool against databaseURL. Searches lease one connection
// per request; ingestion is single-writer, so a small pool suffices.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	conf, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}
	conf.MinConns = 2
	conf.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return pool, nil
}

// Setup creates the tables, indexes, and denormalized views. Idempotent.
func (s *PgStore) Setup(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *PgStore) WorkExists(ctx context.Context, workName string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM works WHERE work_name = $1)", workName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up work %q: %w", workName, err)
	}
	return exists, nil
}
