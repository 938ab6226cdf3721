package parser

import "strings"

const lineMarkerChars = "#@$&*"

// CleanLine produces the stored form of a content line: leading marker
// characters and "** ... **" pairs removed, trailing line-count digits
// dropped, alignment dots stripped, internal whitespace collapsed.
func CleanLine(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, lineMarkerChars)
	s = stripMetaPairs(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "…", "")
	s = stripTrailingCount(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripMetaPairs removes "** ... **" spans, including an unterminated
// trailing one.
func stripMetaPairs(s string) string {
	for {
		start := strings.Index(s, "**")
		if start < 0 {
			return s
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			return s[:start]
		}
		s = s[:start] + " " + s[start+2+end+2:]
	}
}

// stripTrailingCount drops a trailing whitespace-separated digit run, the
// per-line count annotation some sources carry.
func stripTrailingCount(s string) string {
	trimmed := strings.TrimRight(s, "0123456789")
	if trimmed == s {
		return s
	}
	if cut := strings.TrimRight(trimmed, " \t"); cut != trimmed {
		return cut
	}
	return s
}
