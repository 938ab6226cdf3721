package store

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkathir/sorkuvai/app/corpus"
)

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestEncodeWorks(t *testing.T) {
	start, end := 0, 200
	works := []corpus.Work{{
		WorkID:               3,
		WorkName:             "Thirukkural",
		WorkNameTamil:        "திருக்குறள்",
		Author:               "Thiruvalluvar",
		AuthorTamil:          "திருவள்ளுவர்",
		Period:               "post-Sangam",
		ChronologyStartYear:  &start,
		ChronologyEndYear:    &end,
		ChronologyConfidence: corpus.ConfidenceMedium,
		CanonicalOrder:       12,
	}}

	out := readAll(t, encodeWorks(works))
	assert.Equal(t,
		"3\tThirukkural\tதிருக்குறள்\tThiruvalluvar\tதிருவள்ளுவர்\t"+
			"post-Sangam\t\\N\t0\t200\tmedium\t\\N\t12\t\\N\t\\N\n",
		out)
}

func TestEncodeSections_NullsAndMetadata(t *testing.T) {
	parent := int64(7)
	sections := []corpus.Section{
		{
			SectionID:        8,
			WorkID:           2,
			ParentSectionID:  &parent,
			LevelType:        "padalam",
			LevelTypeTamil:   "படலம்",
			SectionNumber:    1,
			SectionNameTamil: "கடல் காண்",
			SortOrder:        1,
			Metadata:         corpus.Metadata{"pan": "கொல்லி"},
		},
		{SectionID: 9, WorkID: 2, SectionNumber: 1, SortOrder: 1},
	}

	out := readAll(t, encodeSections(sections))
	assert.Equal(t,
		"8\t2\t7\tpadalam\tபடலம்\t1\t\\N\tகடல் காண்\t1\t{\"pan\":\"கொல்லி\"}\n"+
			"9\t2\t\\N\t\\N\t\\N\t1\t\\N\t\\N\t1\t\\N\n",
		out)
}

func TestEncodeLines_SanitizesControlCharacters(t *testing.T) {
	lines := []corpus.Line{
		{LineID: 1, VerseID: 4, LineNumber: 1, LineText: "அறம்\tசெய்ய\nவிரும்பு\r"},
	}

	out := readAll(t, encodeLines(lines))
	assert.Equal(t, "1\t4\t1\tஅறம் செய்ய விரும்பு \n", out)
}

func TestEncodeWords_SandhiSplit(t *testing.T) {
	words := []corpus.Word{
		{WordID: 1, LineID: 2, WordPosition: 1, WordText: "கடல்_அலை", SandhiSplit: "கடல் + அலை"},
		{WordID: 2, LineID: 2, WordPosition: 2, WordText: "ஓசை"},
	}

	out := readAll(t, encodeWords(words))
	assert.Equal(t,
		"1\t2\t1\tகடல்_அலை\tகடல் + அலை\n2\t2\t2\tஓசை\t\\N\n",
		out)
}

func TestEncodeWorkCollections(t *testing.T) {
	links := []corpus.WorkCollection{
		{WorkCollectionID: 5, WorkID: 3, CollectionID: 1, PositionInCollection: 4, IsPrimary: true},
	}

	out := readAll(t, encodeWorkCollections(links))
	assert.Equal(t, "5\t3\t1\t4\tt\t\\N\n", out)
}

func TestSanitizeCopyText_EscapesBackslash(t *testing.T) {
	assert.Equal(t, `a\\b c`, sanitizeCopyText("a\\b\tc"))
}
