package quiz

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/nihongo/internal/kana"
)

// DefaultLives is the number of misses a kana game allows.
const DefaultLives = 5

// KanaGame tracks one kana typing run.
type KanaGame struct {
	set      string
	pool     []kana.Kana
	ids      []string
	picker   *Picker
	current  kana.Kana
	lives    int
	maxLives int
	score    int
	answered int
}

// NewKanaGame starts a game over the named kana set.
func NewKanaGame(set string, lives int, picker *Picker) (*KanaGame, error) {
	pool, err := kana.Set(set)
	if err != nil {
		return nil, err
	}
	if lives <= 0 {
		lives = DefaultLives
	}
	if picker == nil {
		picker = NewPicker()
	}
	if set == "" {
		set = kana.SetAll
	}
	ids := make([]string, len(pool))
	for i, k := range pool {
		ids[i] = k.Char
	}
	g := &KanaGame{
		set:      strings.ToLower(set),
		pool:     pool,
		ids:      ids,
		picker:   picker,
		maxLives: lives,
	}
	g.Restart()
	return g, nil
}

// Restart resets score and lives and draws a new kana.
func (g *KanaGame) Restart() {
	g.lives = g.maxLives
	g.score = 0
	g.answered = 0
	g.advance()
}

func (g *KanaGame) advance() {
	g.current = g.pool[g.picker.Next(g.ids)]
}

// Current returns the kana being asked.
func (g *KanaGame) Current() kana.Kana { return g.current }

// Lives returns the remaining lives.
func (g *KanaGame) Lives() int { return g.lives }

// Score returns the number of correct answers.
func (g *KanaGame) Score() int { return g.score }

// Answered returns the number of submitted answers.
func (g *KanaGame) Answered() int { return g.answered }

// Over reports whether all lives are spent.
func (g *KanaGame) Over() bool { return g.lives <= 0 }

// Mode returns the session label for this game.
func (g *KanaGame) Mode() string { return KanaModeLabel(g.set) }

// Submit checks input against the current kana and draws the next one.
// It returns false without effect once the game is over.
func (g *KanaGame) Submit(input string) bool {
	if g.Over() {
		return false
	}
	correct := strings.ToLower(strings.TrimSpace(input)) == g.current.Romaji
	g.answered++
	if correct {
		g.score++
	} else {
		g.lives--
	}
	g.advance()
	return correct
}

// KanaModeLabel names a kana session, e.g. "kana-hiragana".
func KanaModeLabel(set string) string {
	if set == "" {
		set = kana.SetAll
	}
	return "kana-" + set
}

// KanjiModeLabel names a kanji session, e.g. "typing-meaning".
func KanjiModeLabel(mode, questionType string) string {
	return fmt.Sprintf("%s-%s", mode, questionType)
}
