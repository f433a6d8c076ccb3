// Package model defines shared data structures.
package model

import "time"

// SchemaVersion is the current StatsRecord layout version.
const SchemaVersion = 1

// MaxSessionHistory caps the number of sessions kept in a StatsRecord.
const MaxSessionHistory = 50

// TimestampLayout matches JavaScript's Date.toISOString output.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp written by FormatTimestamp
// or any RFC 3339 writer.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// StatsRecord is the single persisted aggregate of study progress.
type StatsRecord struct {
	SchemaVersion    int                 `json:"schemaVersion"`
	TotalQuizzes     int                 `json:"totalQuizzes"`
	TotalQuestions   int                 `json:"totalQuestions"`
	CorrectAnswers   int                 `json:"correctAnswers"`
	IncorrectAnswers int                 `json:"incorrectAnswers"`
	CurrentStreak    int                 `json:"currentStreak"`
	BestStreak       int                 `json:"bestStreak"`
	LastQuizDate     string              `json:"lastQuizDate"`
	ItemStats        map[string]ItemStat `json:"itemStats"`
	SessionHistory   []QuizSession       `json:"sessionHistory"`
}

// NewStatsRecord returns a zeroed record with empty collections.
func NewStatsRecord() StatsRecord {
	return StatsRecord{
		SchemaVersion:  SchemaVersion,
		ItemStats:      map[string]ItemStat{},
		SessionHistory: []QuizSession{},
	}
}

// Clone returns a deep copy; the map and slice are not shared.
func (r StatsRecord) Clone() StatsRecord {
	out := r
	out.ItemStats = make(map[string]ItemStat, len(r.ItemStats))
	for id, item := range r.ItemStats {
		out.ItemStats[id] = item
	}
	out.SessionHistory = make([]QuizSession, len(r.SessionHistory))
	copy(out.SessionHistory, r.SessionHistory)
	return out
}

// ItemStat tracks answers for one kana or kanji.
type ItemStat struct {
	ID        string `json:"id"`
	Correct   int    `json:"correct"`
	Incorrect int    `json:"incorrect"`
	LastSeen  string `json:"lastSeen"`
	Mastery   int    `json:"mastery"`
}

// Total returns the number of recorded answers for the item.
func (s ItemStat) Total() int {
	return s.Correct + s.Incorrect
}

// QuizSession summarizes one finished or abandoned quiz run.
type QuizSession struct {
	Date           string  `json:"date"`
	Mode           string  `json:"mode"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Accuracy       float64 `json:"accuracy"`
	Duration       int     `json:"duration"`
}

// SessionInput is what a quiz screen reports when a run ends.
type SessionInput struct {
	Mode           string    `validate:"required"`
	Score          int       `validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions int       `validate:"gte=0"`
	Duration       int       `validate:"gte=0"`
	Date           time.Time // zero means now
}

// QuizConfig defines quiz settings.
type QuizConfig struct {
	KanaSet         string
	Mode            string
	QuestionType    string
	Difficulty      string
	TimerMode       string
	QuestionSeconds int
	Lives           int
	FocusWeak       bool
	WeakTop         int
	WeakFactor      float64
	ReviewWeak      bool
	KanjiListPath   string
}

// Kanji quiz modes.
const (
	ModeTyping         = "typing"
	ModeMultipleChoice = "multiple-choice"
)

// Question types.
const (
	QuestionMeaning = "meaning"
	QuestionReading = "reading"
)

// Timer modes.
const (
	TimerNone        = "none"
	TimerPerQuestion = "per-question"
	TimerTotal       = "total"
)

// KanjiDetail is the kanji dictionary payload.
type KanjiDetail struct {
	Kanji        string   `json:"kanji"`
	Meanings     []string `json:"meanings"`
	KunReadings  []string `json:"kun_readings"`
	OnReadings   []string `json:"on_readings"`
	NameReadings []string `json:"name_readings"`
	JLPT         *int     `json:"jlpt"`
	Grade        *int     `json:"grade"`
	StrokeCount  int      `json:"stroke_count"`
}

// Readings returns kun, on and name readings in that order, skipping blanks.
func (d KanjiDetail) Readings() []string {
	out := make([]string, 0, len(d.KunReadings)+len(d.OnReadings)+len(d.NameReadings))
	for _, group := range [][]string{d.KunReadings, d.OnReadings, d.NameReadings} {
		for _, r := range group {
			if r != "" {
				out = append(out, r)
			}
		}
	}
	return out
}

// WordResult is one candidate from the word search source.
type WordResult struct {
	Word     string
	Reading  string
	IsCommon bool
	JLPT     []string
	Senses   []WordSense
}

// WordSense groups English definitions for one sense of a word.
type WordSense struct {
	English       []string
	PartsOfSpeech []string
}
