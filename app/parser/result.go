package parser

import (
	"fmt"

	"github.com/senkathir/sorkuvai/app/common"
	"github.com/senkathir/sorkuvai/app/corpus"
)

// Result holds everything one parse run produced, buffered in memory in
// load order. The bulk loader streams it to the store in one transaction.
type Result struct {
	Works    []corpus.Work
	Sections []corpus.Section
	Verses   []corpus.Verse
	Lines    []corpus.Line
	Words    []corpus.Word
}

// ParseError reports an unclassifiable or out-of-order marker. The work's
// buffers are discarded; nothing reaches the store.
type ParseError struct {
	File    string
	LineNo  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.LineNo, e.Message)
}

// Validate checks the relational invariants that can be verified in memory,
// before any transaction is opened. The store's constraints are only a
// backstop.
func (r *Result) Validate() error {
	works := make(map[int64]bool, len(r.Works))
	for _, w := range r.Works {
		works[w.WorkID] = true
	}

	sections := make(map[int64]corpus.Section, len(r.Sections))
	for _, s := range r.Sections {
		if !works[s.WorkID] {
			return fmt.Errorf("section %d references unknown work %d", s.SectionID, s.WorkID)
		}
		sections[s.SectionID] = s
	}
	for _, s := range r.Sections {
		if s.ParentSectionID == nil {
			continue
		}
		parent, ok := sections[*s.ParentSectionID]
		if !ok {
			return fmt.Errorf("section %d references unknown parent %d", s.SectionID, *s.ParentSectionID)
		}
		if parent.WorkID != s.WorkID {
			return fmt.Errorf("section %d has parent in another work", s.SectionID)
		}
	}
	if err := checkSectionAcyclic(sections); err != nil {
		return err
	}

	verses := make(map[int64]corpus.Verse, len(r.Verses))
	verseNumbers := make(map[[2]int64]bool, len(r.Verses))
	for _, v := range r.Verses {
		sec, ok := sections[v.SectionID]
		if !ok {
			return fmt.Errorf("verse %d references unknown section %d", v.VerseID, v.SectionID)
		}
		if sec.WorkID != v.WorkID {
			return fmt.Errorf("verse %d disagrees with its section about the work", v.VerseID)
		}
		key := [2]int64{v.SectionID, int64(v.VerseNumber)}
		if verseNumbers[key] {
			return fmt.Errorf("duplicate verse number %d in section %d", v.VerseNumber, v.SectionID)
		}
		verseNumbers[key] = true
		verses[v.VerseID] = v
	}

	lineCount := make(map[int64]int, len(r.Verses))
	lines := make(map[int64]bool, len(r.Lines))
	lineNumbers := make(map[[2]int64]bool, len(r.Lines))
	for _, l := range r.Lines {
		if _, ok := verses[l.VerseID]; !ok {
			return fmt.Errorf("line %d references unknown verse %d", l.LineID, l.VerseID)
		}
		key := [2]int64{l.VerseID, int64(l.LineNumber)}
		if lineNumbers[key] {
			return fmt.Errorf("duplicate line number %d in verse %d", l.LineNumber, l.VerseID)
		}
		lineNumbers[key] = true
		lineCount[l.VerseID]++
		lines[l.LineID] = true
	}
	for _, v := range r.Verses {
		if v.TotalLines != lineCount[v.VerseID] {
			return fmt.Errorf("verse %d declares %d lines but owns %d", v.VerseID, v.TotalLines, lineCount[v.VerseID])
		}
	}

	wordPositions := make(map[[2]int64]bool, len(r.Words))
	for _, w := range r.Words {
		if !lines[w.LineID] {
			return fmt.Errorf("word %d references unknown line %d", w.WordID, w.LineID)
		}
		key := [2]int64{w.LineID, int64(w.WordPosition)}
		if wordPositions[key] {
			return fmt.Errorf("duplicate word position %d in line %d", w.WordPosition, w.LineID)
		}
		wordPositions[key] = true
		if w.WordText == "" {
			return fmt.Errorf("word %d has empty text", w.WordID)
		}
		for _, ch := range w.WordText {
			if !common.IsTamil(ch) && ch != '-' && ch != '_' {
				return fmt.Errorf("word %d carries non-Tamil character %q", w.WordID, ch)
			}
		}
	}
	return nil
}

func checkSectionAcyclic(sections map[int64]corpus.Section) error {
	for id := range sections {
		slow, seen := id, 0
		for {
			sec := sections[slow]
			if sec.ParentSectionID == nil {
				break
			}
			slow = *sec.ParentSectionID
			seen++
			if seen > len(sections) {
				return fmt.Errorf("section %d participates in a parent cycle", id)
			}
		}
	}
	return nil
}
