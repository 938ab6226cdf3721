package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/senkathir/sorkuvai/app/corpus"
	"github.com/senkathir/sorkuvai/app/parser"
)

// Counts reports per-table row counts of one load or delete.
type Counts struct {
	Works           int64
	WorkCollections int64
	Sections        int64
	Verses          int64
	Lines           int64
	Words           int64
}

// Load streams the parse buffers into the store inside one transaction,
// in referential dependency order. On any failure the transaction rolls
// back and no rows from this run are visible. The buffers are validated
// before the transaction opens.
func (s *PgStore) Load(ctx context.Context, res *parser.Result, links []corpus.WorkCollection) (*Counts, error) {
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to load inconsistent buffers: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	counts := &Counts{}
	steps := []struct {
		table string
		cols  []string
		data  io.Reader
		dest  *int64
	}{
		{"works", workColumns, encodeWorks(res.Works), &counts.Works},
		{"work_collections", workCollectionColumns, encodeWorkCollections(links), &counts.WorkCollections},
		{"sections", sectionColumns, encodeSections(res.Sections), &counts.Sections},
		{"verses", verseColumns, encodeVerses(res.Verses), &counts.Verses},
		{"lines", lineColumns, encodeLines(res.Lines), &counts.Lines},
		{"words", wordColumns, encodeWords(res.Words), &counts.Words},
	}
	for _, step := range steps {
		n, err := copyTable(ctx, tx, step.table, step.cols, step.data)
		if err != nil {
			return nil, fmt.Errorf("bulk copy into %s failed: %w", step.table, err)
		}
		*step.dest = n
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit ingestion: %w", err)
	}
	return counts, nil
}

func copyTable(ctx context.Context, tx pgx.Tx, table string, cols []string, data io.Reader) (int64, error) {
	sql := fmt.Sprintf("COPY %s (%s) FROM STDIN", table, strings.Join(cols, ", "))
	tag, err := tx.Conn().PgConn().CopyFrom(ctx, data, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
