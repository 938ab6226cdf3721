package store

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/senkathir/sorkuvai/app/corpus"
)

// Tab-delimited text encoding for COPY FROM STDIN. Null is the protocol's
// native \N sentinel; embedded tabs, newlines, and carriage returns inside
// text fields are replaced with a single space before emission.

const copyNull = `\N`

type copyBuffer struct {
	buf bytes.Buffer
}

func (c *copyBuffer) row(fields ...string) {
	c.buf.WriteString(strings.Join(fields, "\t"))
	c.buf.WriteByte('\n')
}

func (c *copyBuffer) reader() *bytes.Reader {
	return bytes.NewReader(c.buf.Bytes())
}

func sanitizeCopyText(s string) string {
	// Backslash opens an escape sequence in the COPY text format.
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func textField(s string) string {
	return sanitizeCopyText(s)
}

func textOrNull(s string) string {
	if s == "" {
		return copyNull
	}
	return sanitizeCopyText(s)
}

func intField(n int) string {
	return strconv.Itoa(n)
}

func intOrNull(n int) string {
	if n == 0 {
		return copyNull
	}
	return strconv.Itoa(n)
}

func intPtrOrNull(p *int) string {
	if p == nil {
		return copyNull
	}
	return strconv.Itoa(*p)
}

func int64Field(n int64) string {
	return strconv.FormatInt(n, 10)
}

func int64PtrOrNull(p *int64) string {
	if p == nil {
		return copyNull
	}
	return strconv.FormatInt(*p, 10)
}

func boolField(b bool) string {
	if b {
		return "t"
	}
	return "f"
}

func jsonOrNull(m corpus.Metadata) string {
	if len(m) == 0 {
		return copyNull
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		// Metadata values are strings and numbers; marshalling them
		// cannot fail in practice.
		return copyNull
	}
	return sanitizeCopyText(string(encoded))
}

var workColumns = []string{
	"work_id", "work_name", "work_name_tamil", "author", "author_tamil",
	"period", "description", "chronology_start_year", "chronology_end_year",
	"chronology_confidence", "chronology_notes", "canonical_order",
	"primary_collection_id", "metadata",
}

func encodeWorks(works []corpus.Work) *bytes.Reader {
	var c copyBuffer
	for _, w := range works {
		c.row(
			int64Field(w.WorkID),
			textField(w.WorkName),
			textOrNull(w.WorkNameTamil),
			textOrNull(w.Author),
			textOrNull(w.AuthorTamil),
			textOrNull(w.Period),
			textOrNull(w.Description),
			intPtrOrNull(w.ChronologyStartYear),
			intPtrOrNull(w.ChronologyEndYear),
			textOrNull(w.ChronologyConfidence),
			textOrNull(w.ChronologyNotes),
			intOrNull(w.CanonicalOrder),
			int64PtrOrNull(w.PrimaryCollectionID),
			jsonOrNull(w.Metadata),
		)
	}
	return c.reader()
}

var workCollectionColumns = []string{
	"work_collection_id", "work_id", "collection_id",
	"position_in_collection", "is_primary", "notes",
}

func encodeWorkCollections(links []corpus.WorkCollection) *bytes.Reader {
	var c copyBuffer
	for _, wc := range links {
		c.row(
			int64Field(wc.WorkCollectionID),
			int64Field(wc.WorkID),
			int64Field(wc.CollectionID),
			intField(wc.PositionInCollection),
			boolField(wc.IsPrimary),
			textOrNull(wc.Notes),
		)
	}
	return c.reader()
}

var sectionColumns = []string{
	"section_id", "work_id", "parent_section_id", "level_type",
	"level_type_tamil", "section_number", "section_name",
	"section_name_tamil", "sort_order", "metadata",
}

func encodeSections(sections []corpus.Section) *bytes.Reader {
	var c copyBuffer
	for _, s := range sections {
		c.row(
			int64Field(s.SectionID),
			int64Field(s.WorkID),
			int64PtrOrNull(s.ParentSectionID),
			textOrNull(s.LevelType),
			textOrNull(s.LevelTypeTamil),
			intField(s.SectionNumber),
			textOrNull(s.SectionName),
			textOrNull(s.SectionNameTamil),
			intField(s.SortOrder),
			jsonOrNull(s.Metadata),
		)
	}
	return c.reader()
}

var verseColumns = []string{
	"verse_id", "work_id", "section_id", "verse_number", "verse_type",
	"verse_type_tamil", "total_lines", "sort_order", "metadata",
}

func encodeVerses(verses []corpus.Verse) *bytes.Reader {
	var c copyBuffer
	for _, v := range verses {
		c.row(
			int64Field(v.VerseID),
			int64Field(v.WorkID),
			int64Field(v.SectionID),
			intField(v.VerseNumber),
			textOrNull(v.VerseType),
			textOrNull(v.VerseTypeTamil),
			intField(v.TotalLines),
			intField(v.SortOrder),
			jsonOrNull(v.Metadata),
		)
	}
	return c.reader()
}

var lineColumns = []string{"line_id", "verse_id", "line_number", "line_text"}

func encodeLines(lines []corpus.Line) *bytes.Reader {
	var c copyBuffer
	for _, l := range lines {
		c.row(
			int64Field(l.LineID),
			int64Field(l.VerseID),
			intField(l.LineNumber),
			textField(l.LineText),
		)
	}
	return c.reader()
}

var wordColumns = []string{
	"word_id", "line_id", "word_position", "word_text", "sandhi_split",
}

func encodeWords(words []corpus.Word) *bytes.Reader {
	var c copyBuffer
	for _, w := range words {
		c.row(
			int64Field(w.WordID),
			int64Field(w.LineID),
			intField(w.WordPosition),
			textField(w.WordText),
			textOrNull(w.SandhiSplit),
		)
	}
	return c.reader()
}
