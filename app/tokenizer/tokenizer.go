// Package tokenizer extracts concordance words from cleaned lines of Tamil
// verse. The cleaning policy follows Prof. P. Pandiyaraja's segmentation
// principles: a word keeps every Tamil character, hyphens mark attached
// grammatical particles, underscores mark internal compound boundaries, and
// everything else (line-count digits, alignment dots, stray Latin text) is
// structural noise to be discarded.
package tokenizer

import (
	"strings"

	"github.com/senkathir/sorkuvai/app/common"
)

// Token is one concordance word extracted from a line.
type Token struct {
	Text string
	// SandhiSplit is non-empty for underscore-joined compounds: the word
	// with each "_" rendered as " + ".
	SandhiSplit string
}

type Options struct {
	// SkipSingleChar drops tokens whose Tamil content is a single code
	// point. Grammar treatises use single letters as metalinguistic
	// references; those are not concordance words.
	SkipSingleChar bool
}

var punctReplacer = strings.NewReplacer(
	",", " ", ";", " ", "!", " ", "?", " ",
	"(", " ", ")", " ", "।", " ", ".", " ",
	"…", " ", "*", " ",
)

// Split tokenizes one cleaned line into concordance words, in order.
// It never fails; a line of pure noise yields an empty slice.
func Split(line string, opts Options) []Token {
	fields := strings.Fields(punctReplacer.Replace(line))

	var tokens []Token
	for _, field := range fields {
		if isDecimal(field) {
			// Line-count annotation embedded in the source (5, 10, 15 ...).
			continue
		}
		cleaned := CleanWord(field)
		if cleaned == "" {
			continue
		}
		if opts.SkipSingleChar && common.TamilRuneCount(cleaned) == 1 {
			continue
		}
		tok := Token{Text: cleaned}
		if strings.Contains(cleaned, "_") {
			tok.SandhiSplit = strings.ReplaceAll(cleaned, "_", " + ")
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// CleanWord strips leading and trailing digit runs from a token, then keeps
// only Tamil code points, hyphen-minus, and underscore.
func CleanWord(token string) string {
	token = strings.TrimLeft(token, "0123456789")
	token = strings.TrimRight(token, "0123456789")

	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		if common.IsTamil(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
