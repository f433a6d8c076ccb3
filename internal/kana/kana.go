// Package kana holds the static kana and kanji datasets.
package kana

import (
	"fmt"
	"strings"
)

// Group classifies a kana entry.
type Group string

const (
	GroupBase    Group = "main"
	GroupDakuten Group = "dakuten"
	GroupCombo   Group = "combo"
)

// Kana is one character (or digraph) with its romaji.
type Kana struct {
	Char   string
	Romaji string
	Group  Group
}

// Set names accepted by Set.
const (
	SetHiragana = "hiragana"
	SetKatakana = "katakana"
	SetAll      = "all"
)

// Hiragana returns base, dakuten and combo hiragana in chart order.
func Hiragana() []Kana {
	return concat(hiraganaBase, hiraganaDakuten, hiraganaCombos)
}

// Katakana returns base, dakuten and combo katakana in chart order.
func Katakana() []Kana {
	return concat(katakanaBase, katakanaDakuten, katakanaCombos)
}

// Set returns the quiz pool for name.
func Set(name string) ([]Kana, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SetHiragana:
		return Hiragana(), nil
	case SetKatakana:
		return Katakana(), nil
	case SetAll, "":
		return concat(Hiragana(), Katakana()), nil
	default:
		return nil, fmt.Errorf("unknown kana set %q (use hiragana, katakana or all)", name)
	}
}

// Pair lines up a hiragana with the katakana of the same sound.
type Pair struct {
	Hiragana string
	Katakana string
	Romaji   string
	Group    Group
}

// Chart pairs the two scripts row by row for the study screen.
func Chart() []Pair {
	hira, kata := Hiragana(), Katakana()
	out := make([]Pair, 0, len(hira))
	for i, h := range hira {
		p := Pair{Hiragana: h.Char, Romaji: h.Romaji, Group: h.Group}
		if i < len(kata) {
			p.Katakana = kata[i].Char
		}
		out = append(out, p)
	}
	return out
}

func concat(parts ...[]Kana) []Kana {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Kana, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
