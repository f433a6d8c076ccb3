// Package quiz holds the rules of the kana and kanji quizzes. It keeps no
// durable state; answers are reported through the recorder.
package quiz

import (
	"math/rand"
	"time"
)

// DefaultWeakFactor is the extra weight given to weak items.
const DefaultWeakFactor = 2.0

// Picker selects quiz items, optionally biased toward weak items.
type Picker struct {
	rnd    *rand.Rand
	weak   map[string]struct{}
	factor float64
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return NewSeededPicker(time.Now().UnixNano())
}

// NewSeededPicker returns a deterministic Picker.
func NewSeededPicker(seed int64) *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(seed))}
}

// SetWeak biases later picks toward ids. Each weak item weighs 1 + factor,
// every other item weighs 1. An empty list restores uniform picks.
func (p *Picker) SetWeak(ids []string, factor float64) {
	if len(ids) == 0 || factor <= 0 {
		p.weak = nil
		p.factor = 0
		return
	}
	p.weak = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		p.weak[id] = struct{}{}
	}
	p.factor = factor
}

// Weighted reports whether weak items are favoured.
func (p *Picker) Weighted() bool {
	return len(p.weak) > 0
}

// Next returns the index of the chosen id, or -1 for an empty list.
func (p *Picker) Next(ids []string) int {
	if len(ids) == 0 {
		return -1
	}
	if !p.Weighted() {
		return p.rnd.Intn(len(ids))
	}

	weights := make([]float64, len(ids))
	total := 0.0
	for i, id := range ids {
		w := 1.0
		if _, ok := p.weak[id]; ok {
			w += p.factor
		}
		weights[i] = w
		total += w
	}
	r := p.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return i
		}
	}
	return len(ids) - 1
}

// Sample returns up to n distinct ids in random order, leaving out exclude.
func (p *Picker) Sample(ids []string, n int, exclude string) []string {
	pool := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != exclude {
			pool = append(pool, id)
		}
	}
	p.Shuffle(pool)
	if n < len(pool) {
		pool = pool[:n]
	}
	return pool
}

// Shuffle permutes items in place.
func (p *Picker) Shuffle(items []string) {
	p.rnd.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
