// Package parser turns marker-annotated Tamil source files into in-memory
// corpus records. The lexer classifies physical lines; a single state-machine
// engine interprets the classes under a small per-work Binding, replacing the
// one-script-per-work approach of the source corpus.
package parser

import "strings"

// Class identifies the structural role of one physical line.
type Class int

const (
	ClassBlank Class = iota
	ClassContent
	// ClassWork is an "author^title" header line.
	ClassWork
	// ClassL1 is a "$" top-level division marker.
	ClassL1
	// ClassL1Alt is a "&" top-level division marker.
	ClassL1Alt
	// ClassL2 is an "@" second-level division marker.
	ClassL2
	// ClassL2Num is a "*N" second-level division marker.
	ClassL2Num
	// ClassL3 is a "*N.M" or "*N.M.K" third-level marker.
	ClassL3
	// ClassRef is a "$N.M" or "$N.M.K" source reference marker.
	ClassRef
	// ClassVerse is a "#N" verse marker.
	ClassVerse
	// ClassVSep is the bare "மேல்" verse separator.
	ClassVSep
	// ClassMeta is a "**" metadata line, e.g. "** [பண் : Gāndhāram]".
	ClassMeta
	// ClassIgnore is a "***" decorative banner.
	ClassIgnore
)

func (c Class) String() string {
	switch c {
	case ClassBlank:
		return "blank"
	case ClassContent:
		return "content"
	case ClassWork:
		return "work-header"
	case ClassL1:
		return "level1"
	case ClassL1Alt:
		return "level1-alt"
	case ClassL2:
		return "level2"
	case ClassL2Num:
		return "level2-numbered"
	case ClassL3:
		return "level3"
	case ClassRef:
		return "reference"
	case ClassVerse:
		return "verse"
	case ClassVSep:
		return "verse-separator"
	case ClassMeta:
		return "metadata"
	case ClassIgnore:
		return "ignore"
	}
	return "unknown"
}

// Line is one lexed physical line. Only the fields relevant to its Class are
// populated.
type Line struct {
	Class  Class
	Raw    string
	LineNo int

	// Marker number for L1/L1Alt/L2/L2Num/Verse lines.
	Number    int
	HasNumber bool
	// Dotted number components for L3 and Ref lines.
	Parts []int
	// Trailing name or title on a marker line.
	Name string

	// Work header fields.
	Author string
	Title  string

	// Metadata field, e.g. key "பண்".
	MetaKey   string
	MetaValue string
}

const verseSeparatorToken = "மேல்"

// Lex classifies one physical line. It is pure; all behavioural variance
// between works lives in the engine's Binding.
func Lex(raw string, lineNo int) Line {
	line := Line{Raw: raw, LineNo: lineNo}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		line.Class = ClassBlank
		return line
	}

	switch {
	case strings.HasPrefix(trimmed, "***"):
		line.Class = ClassIgnore
	case strings.HasPrefix(trimmed, "**"):
		line.Class = ClassMeta
		line.MetaKey, line.MetaValue = parseMetaField(trimmed[2:])
	case strings.HasPrefix(trimmed, "$"):
		lexDollar(&line, trimmed[1:])
	case strings.HasPrefix(trimmed, "&"):
		line.Class = ClassL1Alt
		line.Number, line.HasNumber, line.Name = parseMarkerBody(trimmed[1:])
	case strings.HasPrefix(trimmed, "@"):
		line.Class = ClassL2
		line.Number, line.HasNumber, line.Name = parseMarkerBody(trimmed[1:])
	case strings.HasPrefix(trimmed, "*"):
		lexStar(&line, trimmed[1:])
	case strings.HasPrefix(trimmed, "#"):
		lexHash(&line, trimmed[1:], trimmed)
	case trimmed == verseSeparatorToken:
		line.Class = ClassVSep
	default:
		lexPlain(&line, trimmed)
	}
	return line
}

// "$6 யுத்த காண்டம்" is a top-level division; "$1.2.3" is a source
// reference identifier carried as verse metadata.
func lexDollar(line *Line, body string) {
	if parts, rest, ok := parseDotted(body); ok && len(parts) >= 2 {
		line.Class = ClassRef
		line.Parts = parts
		line.Name = strings.TrimSpace(rest)
		return
	}
	line.Class = ClassL1
	line.Number, line.HasNumber, line.Name = parseMarkerBody(body)
}

func lexStar(line *Line, body string) {
	parts, rest, ok := parseDotted(body)
	if !ok {
		// "*" followed by no digits is decoration.
		line.Class = ClassIgnore
		return
	}
	if len(parts) >= 2 {
		line.Class = ClassL3
		line.Parts = parts
		line.Name = strings.TrimSpace(rest)
		return
	}
	line.Class = ClassL2Num
	line.Number = parts[0]
	line.HasNumber = true
	line.Name = strings.TrimSpace(rest)
}

func lexHash(line *Line, body string, trimmed string) {
	number, rest, ok := leadingDigits(body)
	if !ok {
		// "#" with no digits carries no verse number; let line cleaning
		// strip the marker.
		lexPlain(line, trimmed)
		return
	}
	line.Class = ClassVerse
	line.Number = number
	line.HasNumber = true
	line.Name = strings.TrimSpace(rest)
}

func lexPlain(line *Line, trimmed string) {
	if author, title, ok := strings.Cut(trimmed, "^"); ok {
		author = strings.TrimSpace(author)
		title = strings.TrimSpace(title)
		if author != "" && title != "" {
			line.Class = ClassWork
			line.Author = author
			line.Title = title
			return
		}
	}
	line.Class = ClassContent
}

func parseMarkerBody(body string) (number int, hasNumber bool, name string) {
	number, rest, hasNumber := leadingDigits(body)
	if !hasNumber {
		rest = body
	}
	return number, hasNumber, strings.TrimSpace(rest)
}

// parseDotted reads a run of dot-separated digit groups, e.g. "2.14" or
// "1.2.3", returning the components and the remainder of the line.
func parseDotted(body string) (parts []int, rest string, ok bool) {
	rest = body
	for {
		number, after, hasDigits := leadingDigits(rest)
		if !hasDigits {
			break
		}
		parts = append(parts, number)
		rest = after
		if !strings.HasPrefix(rest, ".") {
			break
		}
		// A dot not followed by a digit terminates the group.
		if _, _, more := leadingDigits(rest[1:]); !more {
			break
		}
		rest = rest[1:]
	}
	return parts, rest, len(parts) > 0
}

func leadingDigits(s string) (int, string, bool) {
	i := 0
	n := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:], i > 0
}

// parseMetaField extracts a "key : value" pair from a metadata line body,
// tolerating optional surrounding brackets.
func parseMetaField(body string) (key, value string) {
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "[")
	body = strings.TrimSuffix(body, "]")
	key, value, ok := strings.Cut(body, ":")
	if !ok {
		return "", strings.TrimSpace(body)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value)
}
