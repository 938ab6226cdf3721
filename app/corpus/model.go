// Package corpus defines the normalized relational model every other
// package works against: work → section* → verse → line → word, plus the
// user-facing collection taxonomy.
package corpus

// Chronology confidence tags.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// Collection type tags.
const (
	CollectionTradition  = "tradition"
	CollectionCanon      = "canon"
	CollectionGenre      = "genre"
	CollectionDevotional = "devotional"
	CollectionCustom     = "custom"
)

// Metadata is the opaque per-row attribute bag. Serialized as JSON into a
// jsonb column; per-tradition attributes (musical mode, saint attribution,
// publisher verse references) live here rather than as columns.
type Metadata map[string]any

type Work struct {
	WorkID               int64
	WorkName             string
	WorkNameTamil        string
	Author               string
	AuthorTamil          string
	Period               string
	Description          string
	ChronologyStartYear  *int
	ChronologyEndYear    *int
	ChronologyConfidence string
	ChronologyNotes      string
	CanonicalOrder       int
	PrimaryCollectionID  *int64
	Metadata             Metadata
}

type Collection struct {
	CollectionID        int64
	CollectionName      string
	CollectionNameTamil string
	CollectionType      string
	Description         string
	ParentCollectionID  *int64
	SortOrder           int
}

type WorkCollection struct {
	WorkCollectionID     int64
	WorkID               int64
	CollectionID         int64
	PositionInCollection int
	IsPrimary            bool
	Notes                string
}

type Section struct {
	SectionID        int64
	WorkID           int64
	ParentSectionID  *int64
	LevelType        string
	LevelTypeTamil   string
	SectionNumber    int
	SectionName      string
	SectionNameTamil string
	SortOrder        int
	Metadata         Metadata
}

type Verse struct {
	VerseID        int64
	WorkID         int64
	SectionID      int64
	VerseNumber    int
	VerseType      string
	VerseTypeTamil string
	TotalLines     int
	SortOrder      int
	Metadata       Metadata
}

type Line struct {
	LineID     int64
	VerseID    int64
	LineNumber int
	LineText   string
}

type Word struct {
	WordID       int64
	LineID       int64
	WordPosition int
	WordText     string
	// SandhiSplit carries the compound-segmentation hint for words written
	// with underscore-joined parts, e.g. "மலை_பெயர்" → "மலை + பெயர்".
	SandhiSplit string
}
