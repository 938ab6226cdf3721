// Package search is the read-only concordance lookup surface over the
// normalized store. It reads the denormalized word_details and
// verse_hierarchy views; ingestion never goes through this package.
package search

import (
	"context"
	"fmt"

	"github.com/senkathir/sorkuvai/app/common"
	"github.com/senkathir/sorkuvai/app/corpus"
)

const (
	MatchExact   = "exact"
	MatchPartial = "partial"

	PositionBeginning = "beginning"
	PositionEnd       = "end"
	PositionAnywhere  = "anywhere"

	SortAlphabetical  = "alphabetical"
	SortCanonical     = "canonical"
	SortChronological = "chronological"
	SortCollection    = "collection"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Params are the validated inputs of one concordance search.
type Params struct {
	Query        string
	MatchType    string
	WordPosition string
	WorkIDs      []int64
	WordRoot     string
	SortBy       string
	CollectionID int64
	Limit        int
	Offset       int
}

// Validate normalizes defaults and rejects unusable combinations. The
// returned errors are user visible.
func (p *Params) Validate() error {
	if p.Query == "" {
		return common.NewBadParameter("q", "search term is required")
	}
	if p.MatchType == "" {
		p.MatchType = MatchExact
	}
	if p.MatchType != MatchExact && p.MatchType != MatchPartial {
		return common.NewBadParameter("match_type",
			fmt.Sprintf("must be %q or %q", MatchExact, MatchPartial))
	}
	if p.WordPosition == "" {
		p.WordPosition = PositionAnywhere
	}
	switch p.WordPosition {
	case PositionBeginning, PositionEnd, PositionAnywhere:
	default:
		return common.NewBadParameter("word_position",
			fmt.Sprintf("must be %q, %q or %q", PositionBeginning, PositionEnd, PositionAnywhere))
	}
	if p.SortBy == "" {
		p.SortBy = SortAlphabetical
	}
	switch p.SortBy {
	case SortAlphabetical, SortCanonical, SortChronological:
	case SortCollection:
		if p.CollectionID == 0 {
			return common.NewBadParameter("collection_id",
				"required when sort_by is collection")
		}
	default:
		return common.NewBadParameter("sort_by", "unknown sort mode")
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		return common.NewBadParameter("offset", "must not be negative")
	}
	return nil
}

// Match is one word occurrence with its full hierarchical context.
type Match struct {
	WordID           int64  `json:"word_id"`
	WordText         string `json:"word_text"`
	SandhiSplit      string `json:"sandhi_split,omitempty"`
	WordPosition     int    `json:"word_position"`
	LineID           int64  `json:"line_id"`
	LineNumber       int    `json:"line_number"`
	LineText         string `json:"line_text"`
	VerseID          int64  `json:"verse_id"`
	VerseNumber      int    `json:"verse_number"`
	VerseType        string `json:"verse_type,omitempty"`
	VerseTypeTamil   string `json:"verse_type_tamil,omitempty"`
	SectionPath      string `json:"section_path"`
	SectionPathTamil string `json:"section_path_tamil"`
	WorkID           int64  `json:"work_id"`
	WorkName         string `json:"work_name"`
	WorkNameTamil    string `json:"work_name_tamil,omitempty"`
	StartYear        *int   `json:"chronology_start_year,omitempty"`
	EndYear          *int   `json:"chronology_end_year,omitempty"`
}

// WorkOccurrence is the per-work slice of one word form's summary.
type WorkOccurrence struct {
	WorkID      int64  `json:"work_id"`
	WorkName    string `json:"work_name"`
	Occurrences int    `json:"occurrences"`
}

// WordSummary aggregates one distinct matching word form.
type WordSummary struct {
	WordText       string           `json:"word_text"`
	Occurrences    int              `json:"occurrences"`
	DistinctVerses int              `json:"distinct_verses"`
	Works          []WorkOccurrence `json:"works"`
}

// Response is the full payload of one search call.
type Response struct {
	Query   string        `json:"query"`
	Matches []Match       `json:"matches"`
	Summary []WordSummary `json:"summary"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

// VerseLine is one line of a verse detail payload.
type VerseLine struct {
	LineNumber int    `json:"line_number"`
	LineText   string `json:"line_text"`
}

// VerseDetail is the full context of one verse.
type VerseDetail struct {
	VerseID          int64           `json:"verse_id"`
	VerseNumber      int             `json:"verse_number"`
	VerseType        string          `json:"verse_type,omitempty"`
	VerseTypeTamil   string          `json:"verse_type_tamil,omitempty"`
	TotalLines       int             `json:"total_lines"`
	SectionPath      string          `json:"section_path"`
	SectionPathTamil string          `json:"section_path_tamil"`
	WorkID           int64           `json:"work_id"`
	WorkName         string          `json:"work_name"`
	WorkNameTamil    string          `json:"work_name_tamil,omitempty"`
	Metadata         corpus.Metadata `json:"metadata,omitempty"`
	Lines            []VerseLine     `json:"lines"`
}

// SearchStore is the read-only persistence surface of the service.
type SearchStore interface {
	Search(ctx context.Context, p Params) ([]Match, error)
	Summarize(ctx context.Context, p Params) ([]WordSummary, error)
	Works(ctx context.Context, sortBy string) ([]corpus.Work, error)
	Verse(ctx context.Context, verseID int64) (*VerseDetail, error)
	Collections(ctx context.Context) ([]corpus.Collection, error)
}
