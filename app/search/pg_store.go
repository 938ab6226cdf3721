package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/senkathir/sorkuvai/app/corpus"
)

// ErrVerseNotFound reports a verse lookup with an unknown id.
var ErrVerseNotFound = errors.New("verse not found")

type PgSearchStore struct {
	pool *pgxpool.Pool
}

var _ SearchStore = &PgSearchStore{}

func NewPgSearchStore(pool *pgxpool.Pool) *PgSearchStore {
	return &PgSearchStore{pool: pool}
}

func (s *PgSearchStore) Search(ctx context.Context, p Params) ([]Match, error) {
	filter, args := buildFilter(p)

	join := ""
	if p.SortBy == SortCollection {
		args = append(args, p.CollectionID)
		join = fmt.Sprintf(
			"LEFT JOIN work_collections wc ON wc.work_id = wd.work_id AND wc.collection_id = $%d",
			len(args))
	}
	args = append(args, p.Limit, p.Offset)

	query := fmt.Sprintf(`
		SELECT
			wd.word_id, wd.word_text, COALESCE(wd.sandhi_split, ''), wd.word_position,
			wd.line_id, wd.line_number, wd.line_text,
			wd.verse_id, wd.verse_number,
			COALESCE(wd.verse_type, ''), COALESCE(wd.verse_type_tamil, ''),
			wd.section_path, wd.section_path_tamil,
			wd.work_id, wd.work_name, COALESCE(wd.work_name_tamil, ''),
			wd.chronology_start_year, wd.chronology_end_year
		FROM word_details wd
		%s
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		join, filter, orderClause(p.SortBy), len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		err := rows.Scan(
			&m.WordID, &m.WordText, &m.SandhiSplit, &m.WordPosition,
			&m.LineID, &m.LineNumber, &m.LineText,
			&m.VerseID, &m.VerseNumber, &m.VerseType, &m.VerseTypeTamil,
			&m.SectionPath, &m.SectionPathTamil,
			&m.WorkID, &m.WorkName, &m.WorkNameTamil,
			&m.StartYear, &m.EndYear,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Summarize aggregates the full (unpaginated) match set: occurrence and
// distinct-verse counts per word form, with a per-work breakdown.
func (s *PgSearchStore) Summarize(ctx context.Context, p Params) ([]WordSummary, error) {
	filter, args := buildFilter(p)

	query := fmt.Sprintf(`
		SELECT wd.word_text, wd.work_id, wd.work_name,
			COUNT(*), COUNT(DISTINCT wd.verse_id)
		FROM word_details wd
		WHERE %s
		GROUP BY wd.word_text, wd.work_id, wd.work_name
		ORDER BY wd.word_text ASC, wd.work_name ASC`, filter)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summary query failed: %w", err)
	}
	defer rows.Close()

	var summaries []WordSummary
	index := map[string]int{}
	for rows.Next() {
		var text, workName string
		var workID int64
		var occurrences, verses int
		if err := rows.Scan(&text, &workID, &workName, &occurrences, &verses); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		i, ok := index[text]
		if !ok {
			i = len(summaries)
			index[text] = i
			summaries = append(summaries, WordSummary{WordText: text})
		}
		summaries[i].Occurrences += occurrences
		summaries[i].DistinctVerses += verses
		summaries[i].Works = append(summaries[i].Works, WorkOccurrence{
			WorkID:      workID,
			WorkName:    workName,
			Occurrences: occurrences,
		})
	}
	return summaries, rows.Err()
}

func (s *PgSearchStore) Works(ctx context.Context, sortBy string) ([]corpus.Work, error) {
	order := "work_name ASC"
	switch sortBy {
	case SortCanonical:
		order = "canonical_order ASC NULLS LAST, work_name ASC"
	case SortChronological:
		order = "chronology_start_year ASC NULLS LAST, work_name ASC"
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT work_id, work_name, COALESCE(work_name_tamil, ''),
			COALESCE(author, ''), COALESCE(author_tamil, ''),
			COALESCE(period, ''), COALESCE(description, ''),
			chronology_start_year, chronology_end_year,
			COALESCE(chronology_confidence, ''), COALESCE(chronology_notes, ''),
			COALESCE(canonical_order, 0), primary_collection_id
		FROM works
		ORDER BY %s`, order))
	if err != nil {
		return nil, fmt.Errorf("works query failed: %w", err)
	}
	defer rows.Close()

	var works []corpus.Work
	for rows.Next() {
		var w corpus.Work
		err := rows.Scan(
			&w.WorkID, &w.WorkName, &w.WorkNameTamil,
			&w.Author, &w.AuthorTamil, &w.Period, &w.Description,
			&w.ChronologyStartYear, &w.ChronologyEndYear,
			&w.ChronologyConfidence, &w.ChronologyNotes,
			&w.CanonicalOrder, &w.PrimaryCollectionID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work row: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

func (s *PgSearchStore) Verse(ctx context.Context, verseID int64) (*VerseDetail, error) {
	var d VerseDetail
	err := s.pool.QueryRow(ctx, `
		SELECT verse_id, verse_number,
			COALESCE(verse_type, ''), COALESCE(verse_type_tamil, ''),
			total_lines, section_path, section_path_tamil,
			work_id, work_name, COALESCE(work_name_tamil, ''),
			verse_metadata
		FROM verse_hierarchy
		WHERE verse_id = $1`, verseID,
	).Scan(
		&d.VerseID, &d.VerseNumber, &d.VerseType, &d.VerseTypeTamil,
		&d.TotalLines, &d.SectionPath, &d.SectionPathTamil,
		&d.WorkID, &d.WorkName, &d.WorkNameTamil, &d.Metadata,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrVerseNotFound, verseID)
	}
	if err != nil {
		return nil, fmt.Errorf("verse query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT line_number, line_text FROM lines WHERE verse_id = $1 ORDER BY line_number",
		verseID)
	if err != nil {
		return nil, fmt.Errorf("verse lines query failed: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l VerseLine
		if err := rows.Scan(&l.LineNumber, &l.LineText); err != nil {
			return nil, fmt.Errorf("failed to scan verse line: %w", err)
		}
		d.Lines = append(d.Lines, l)
	}
	return &d, rows.Err()
}

func (s *PgSearchStore) Collections(ctx context.Context) ([]corpus.Collection, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT collection_id, collection_name, COALESCE(collection_name_tamil, ''),
			collection_type, COALESCE(description, ''),
			parent_collection_id, sort_order
		FROM collections
		ORDER BY sort_order ASC, collection_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("collections query failed: %w", err)
	}
	defer rows.Close()

	var collections []corpus.Collection
	for rows.Next() {
		var c corpus.Collection
		err := rows.Scan(
			&c.CollectionID, &c.CollectionName, &c.CollectionNameTamil,
			&c.CollectionType, &c.Description, &c.ParentCollectionID, &c.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}
