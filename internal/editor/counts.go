package editor

import (
	"strings"
	"unicode/utf8"
)

type Counts struct {
	Words int
	Chars int
}

// CountText returns the word count (whitespace-delimited tokens of the trimmed text) and the
// character count of the raw text.
func CountText(s string) Counts {
	return Counts{
		Words: len(strings.Fields(s)),
		Chars: utf8.RuneCountInString(s),
	}
}
