package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/senkathir/sorkuvai/app/corpus"
)

// collectionQuerier is the slice of the pool the collection upsert needs.
type collectionQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const insertCollectionSQL = `
	INSERT INTO collections (
		collection_id, collection_name, collection_name_tamil,
		collection_type, description, parent_collection_id, sort_order
	)
	SELECT COALESCE(MAX(collection_id), 0) + 1, $1, $2, $3, $4, $5, $6
	FROM collections
	ON CONFLICT DO NOTHING
	RETURNING collection_id`

// EnsureCollection returns the id of the named collection, creating it if
// absent. Creation is idempotent: overlapping jobs may both try to
// materialize the same collection, and a conflict is not a failure.
func (s *PgStore) EnsureCollection(ctx context.Context, c corpus.Collection) (int64, error) {
	return ensureCollection(ctx, s.pool, c)
}

func ensureCollection(ctx context.Context, q collectionQuerier, c corpus.Collection) (int64, error) {
	// The bare ON CONFLICT covers both races: a lost name conflict is
	// resolved by the re-select, a lost id conflict by a fresh MAX+1.
	for attempt := 0; attempt < 3; attempt++ {
		var id int64
		err := q.QueryRow(ctx,
			"SELECT collection_id FROM collections WHERE collection_name = $1",
			c.CollectionName,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("failed to look up collection %q: %w", c.CollectionName, err)
		}

		err = q.QueryRow(ctx, insertCollectionSQL,
			c.CollectionName, nullIfEmpty(c.CollectionNameTamil), c.CollectionType,
			nullIfEmpty(c.Description), c.ParentCollectionID, c.SortOrder,
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("failed to create collection %q: %w", c.CollectionName, err)
		}
	}
	return 0, fmt.Errorf("failed to create collection %q: conflicting concurrent inserts", c.CollectionName)
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
