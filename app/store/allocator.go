package store

import (
	"context"
	"fmt"

	"github.com/senkathir/sorkuvai/app/corpus"
)

// NextIDs seeds an IDSpace with the current maximum surrogate id of each
// entity kind. The parser increments in memory from there; ids are never
// re-queried mid-run, so only one ingestion may run at a time.
func (s *PgStore) NextIDs(ctx context.Context) (*corpus.IDSpace, error) {
	ids := &corpus.IDSpace{}
	maxima := []struct {
		table string
		col   string
		dest  *int64
	}{
		{"works", "work_id", &ids.Work},
		{"collections", "collection_id", &ids.Collection},
		{"work_collections", "work_collection_id", &ids.WorkCollection},
		{"sections", "section_id", &ids.Section},
		{"verses", "verse_id", &ids.Verse},
		{"lines", "line_id", &ids.Line},
		{"words", "word_id", &ids.Word},
	}
	for _, m := range maxima {
		query := fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) FROM %s", m.col, m.table)
		if err := s.pool.QueryRow(ctx, query).Scan(m.dest); err != nil {
			return nil, fmt.Errorf("failed to read max id of %s: %w", m.table, err)
		}
	}
	return ids, nil
}
