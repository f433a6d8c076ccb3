package itemlist

import (
	"unicode"
	"unicode/utf8"
)

// FilterFunc returns true when an item should be kept.
type FilterFunc func(string) bool

// FilterKanji keeps entries that are exactly one Han character.
func FilterKanji(item string) bool {
	if utf8.RuneCountInString(item) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(item)
	return unicode.Is(unicode.Han, r)
}

// FilterKana keeps entries made only of hiragana or katakana.
func FilterKana(item string) bool {
	if item == "" {
		return false
	}
	for _, r := range item {
		if !unicode.In(r, unicode.Hiragana, unicode.Katakana) {
			return false
		}
	}
	return true
}

// Filter returns the items accepted by keep.
func Filter(items []string, keep FilterFunc) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}
