package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrWorkNotFound reports a delete against a work name the store does not
// hold.
var ErrWorkNotFound = errors.New("work not found")

// DeleteWork removes one work and everything under it, in dependency
// order, inside a single transaction. Reimporting from the same source
// afterwards reproduces identical per-table counts.
func (s *PgStore) DeleteWork(ctx context.Context, workName string) (*Counts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var workID int64
	err = tx.QueryRow(ctx,
		"SELECT work_id FROM works WHERE work_name = $1", workName,
	).Scan(&workID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrWorkNotFound, workName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up work %q: %w", workName, err)
	}

	counts := &Counts{}
	steps := []struct {
		sql  string
		dest *int64
	}{
		{`DELETE FROM words WHERE line_id IN (
			SELECT l.line_id FROM lines l
			JOIN verses v ON l.verse_id = v.verse_id
			WHERE v.work_id = $1)`, &counts.Words},
		{`DELETE FROM lines WHERE verse_id IN (
			SELECT verse_id FROM verses WHERE work_id = $1)`, &counts.Lines},
		{`DELETE FROM verses WHERE work_id = $1`, &counts.Verses},
		{`DELETE FROM sections WHERE work_id = $1`, &counts.Sections},
		{`DELETE FROM work_collections WHERE work_id = $1`, &counts.WorkCollections},
		{`DELETE FROM works WHERE work_id = $1`, &counts.Works},
	}
	for _, step := range steps {
		tag, err := tx.Exec(ctx, step.sql, workID)
		if err != nil {
			return nil, fmt.Errorf("failed to delete rows of work %q: %w", workName, err)
		}
		*step.dest = tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit delete: %w", err)
	}
	return counts, nil
}
