package parser

import "github.com/senkathir/sorkuvai/app/corpus"

// VerseMode selects how verse boundaries are recognized inside a section.
type VerseMode int

const (
	// ExplicitMarker opens verses only on "#N" lines; blanks are layout.
	ExplicitMarker VerseMode = iota
	// BlankBoundary treats each blank-delimited run of content lines as one
	// verse; "#N" lines, when present, pin the numbering. A number at or
	// below the section's stored maximum continues past the maximum, so
	// (section, verse number) stays unique.
	BlankBoundary
)

// LevelBinding names one rank of the section hierarchy for a work, e.g.
// Kandam or Padalam.
type LevelBinding struct {
	LevelType      string
	LevelTypeTamil string
	// TrimNameSuffix is removed from trailing section names, e.g. works
	// whose every padalam name ends in " படலம்".
	TrimNameSuffix string
}

// Binding is the declarative per-work configuration the engine runs under.
// One binding replaces one of the source corpus's per-work parser scripts.
type Binding struct {
	// Work is the template row: names, author, chronology, canonical order.
	// The engine assigns its id and, for header-carrying files, fills the
	// Tamil name and author from the "author^title" line.
	Work corpus.Work

	// Marker class to hierarchy rank bindings. A nil binding makes the
	// corresponding marker a parse error; a work with no bindings at all is
	// flat and gets a single synthesized section.
	L1    *LevelBinding // "$"
	L1Alt *LevelBinding // "&"
	L2    *LevelBinding // "@" and "*N"
	L3    *LevelBinding // "*N.M"

	VerseMode VerseMode

	// Generic verse-type labels for this tradition, e.g. paadal / nurpaa.
	VerseType      string
	VerseTypeTamil string

	// SectionAsVerseName uses the enclosing section's Tamil name as the
	// verse type, for works where each named sub-section is one verse.
	SectionAsVerseName bool

	// OneVersePerSection collects every content line of a section into a
	// single verse; blank lines are layout.
	OneVersePerSection bool

	// SkipSingleCharWords drops single-Tamil-letter tokens, for grammar
	// treatises where those are metalinguistic references.
	SkipSingleCharWords bool

	// HeaderDeclaresWork reads the file's first "author^title" line into
	// the work row.
	HeaderDeclaresWork bool

	// MultiWork opens a new work on every "&N <author>" marker, and on
	// digit-less "@" headers when L2 is unbound. An "author - title"
	// header splits into the two fields; otherwise the work is named by
	// MultiWorkNameFormat (one %s verb, the author). A header naming an
	// earlier work resumes it.
	MultiWork           bool
	MultiWorkNameFormat string

	// InlineVerseContent treats text after "#N" as the verse's first line
	// rather than a title.
	InlineVerseContent bool

	// NumberBareSectionsGlobally numbers digit-less section markers with
	// one work-wide counter instead of restarting per parent.
	NumberBareSectionsGlobally bool
}

func (b *Binding) levelFor(class Class) *LevelBinding {
	switch class {
	case ClassL1:
		return b.L1
	case ClassL1Alt:
		return b.L1Alt
	case ClassL2, ClassL2Num:
		return b.L2
	case ClassL3:
		return b.L3
	}
	return nil
}

func (b *Binding) flat() bool {
	return b.L1 == nil && b.L1Alt == nil && b.L2 == nil && b.L3 == nil
}
