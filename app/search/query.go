package search

import (
	"fmt"
	"strings"
)

// escapeLike makes a user term safe inside a LIKE pattern: the term is
// always a literal, never a pattern.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	term = strings.ReplaceAll(term, "%", `\%`)
	term = strings.ReplaceAll(term, "_", `\_`)
	return term
}

// likePattern anchors the escaped term per the requested word position.
func likePattern(term, position string) string {
	escaped := escapeLike(term)
	switch position {
	case PositionBeginning:
		return escaped + "%"
	case PositionEnd:
		return "%" + escaped
	default:
		return "%" + escaped + "%"
	}
}

// buildFilter renders the WHERE clause of a search over word_details,
// returning the clause and its ordered arguments.
func buildFilter(p Params) (string, []any) {
	var clauses []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if p.MatchType == MatchExact {
		clauses = append(clauses, "wd.word_text = "+arg(p.Query))
	} else {
		clauses = append(clauses, "wd.word_text LIKE "+arg(likePattern(p.Query, p.WordPosition)))
	}
	if len(p.WorkIDs) > 0 {
		clauses = append(clauses, "wd.work_id = ANY("+arg(p.WorkIDs)+")")
	}
	if p.WordRoot != "" {
		clauses = append(clauses, "wd.word_text LIKE "+arg(escapeLike(p.WordRoot)+"%"))
	}
	return strings.Join(clauses, " AND "), args
}

// tieBreak is the within-work ordering shared by every sort mode. The
// leading work_id pins matches from works that tie on every sort key, so
// paging over the same query always walks the same order.
const tieBreak = "wd.work_id ASC, wd.section_sort_order ASC, wd.verse_sort_order ASC, wd.line_number ASC, wd.word_position ASC"

func orderClause(sortBy string) string {
	switch sortBy {
	case SortCanonical:
		return "wd.canonical_order ASC NULLS LAST, wd.work_name ASC, " + tieBreak
	case SortChronological:
		return "wd.chronology_start_year ASC NULLS LAST, wd.work_name ASC, " + tieBreak
	case SortCollection:
		return "wc.position_in_collection ASC NULLS LAST, " + tieBreak
	default:
		return "wd.word_text ASC, wd.work_name ASC, " + tieBreak
	}
}
