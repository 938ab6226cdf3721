package common

// Tamil Unicode block.
const (
	TamilBlockStart rune = 0x0B80
	TamilBlockEnd   rune = 0x0BFF
)

func IsTamil(r rune) bool {
	return r >= TamilBlockStart && r <= TamilBlockEnd
}

// HasTamil reports whether s contains at least one Tamil code point.
func HasTamil(s string) bool {
	for _, r := range s {
		if IsTamil(r) {
			return true
		}
	}
	return false
}

// TamilRuneCount counts the Tamil code points in s, ignoring everything else.
func TamilRuneCount(s string) int {
	n := 0
	for _, r := range s {
		if IsTamil(r) {
			n++
		}
	}
	return n
}
