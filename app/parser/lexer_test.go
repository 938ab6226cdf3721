package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected Line
	}{
		{"Blank", "   ", Line{Class: ClassBlank}},
		{"Content", "அகர முதல", Line{Class: ClassContent}},
		{"Work header", "திருவள்ளுவர்^திருக்குறள்",
			Line{Class: ClassWork, Author: "திருவள்ளுவர்", Title: "திருக்குறள்"}},
		{"L1 with number", "$6 யுத்த காண்டம்",
			Line{Class: ClassL1, Number: 6, HasNumber: true, Name: "யுத்த காண்டம்"}},
		{"L1 bare", "$ அறத்துப்பால்",
			Line{Class: ClassL1, Name: "அறத்துப்பால்"}},
		{"L1Alt", "&2 பொருட்பால்",
			Line{Class: ClassL1Alt, Number: 2, HasNumber: true, Name: "பொருட்பால்"}},
		{"L2", "@3 நாட்டுப் படலம்",
			Line{Class: ClassL2, Number: 3, HasNumber: true, Name: "நாட்டுப் படலம்"}},
		{"L2 bare", "@ கடவுள் வாழ்த்து",
			Line{Class: ClassL2, Name: "கடவுள் வாழ்த்து"}},
		{"L2 numbered star", "*4 இயல்",
			Line{Class: ClassL2Num, Number: 4, HasNumber: true, Name: "இயல்"}},
		{"L3", "*2.14 களவியல்",
			Line{Class: ClassL3, Parts: []int{2, 14}, Name: "களவியல்"}},
		{"Reference marker", "$1.2.3",
			Line{Class: ClassRef, Parts: []int{1, 2, 3}}},
		{"Verse", "#42", Line{Class: ClassVerse, Number: 42, HasNumber: true}},
		{"Verse with title", "#1 கடவுள் வாழ்த்து",
			Line{Class: ClassVerse, Number: 1, HasNumber: true, Name: "கடவுள் வாழ்த்து"}},
		{"Verse separator", "மேல்", Line{Class: ClassVSep}},
		{"Meta with pan", "** [பண் : நட்டபாடை]",
			Line{Class: ClassMeta, MetaKey: "பண்", MetaValue: "நட்டபாடை"}},
		{"Meta bare", "**", Line{Class: ClassMeta}},
		{"Ignore banner", "*** பாயிரம் ***", Line{Class: ClassIgnore}},
		{"Hash without digits", "#அறம்", Line{Class: ClassContent}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Lex(tc.raw, 7)
			tc.expected.Raw = tc.raw
			tc.expected.LineNo = 7
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCleanLine(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"Plain", "அகர முதல எழுத்தெல்லாம்", "அகர முதல எழுத்தெல்லாம்"},
		{"Leading marker run", "#@ அறம் செய்ய", "அறம் செய்ய"},
		{"Trailing count", "கடல் அலை 5", "கடல் அலை"},
		{"Attached digits kept", "அறம்10 பொருள்", "அறம்10 பொருள்"},
		{"Meta pair stripped", "அறம் ** குறிப்பு ** பொருள்", "அறம் பொருள்"},
		{"Dots removed", "அறம். பொருள்…", "அறம் பொருள்"},
		{"Whitespace collapsed", "அறம்   பொருள்\tஇன்பம்", "அறம் பொருள் இன்பம்"},
		{"Empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CleanLine(tc.raw))
		})
	}
}
