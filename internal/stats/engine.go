// Package stats contains the scoring engine and statistics reporting.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

// RecordItemAnswer applies one answer for itemID and returns the updated record.
func RecordItemAnswer(rec model.StatsRecord, itemID string, isCorrect bool, now time.Time) model.StatsRecord {
	out := rec.Clone()
	item, ok := out.ItemStats[itemID]
	if !ok {
		item = model.ItemStat{ID: itemID}
	}
	if isCorrect {
		item.Correct++
	} else {
		item.Incorrect++
	}
	item.Mastery = Mastery(item.Correct, item.Incorrect)
	item.LastSeen = model.FormatTimestamp(now)
	out.ItemStats[itemID] = item
	return out
}

// RecordStreak advances or resets the consecutive-correct counter.
func RecordStreak(rec model.StatsRecord, isCorrect bool) model.StatsRecord {
	out := rec.Clone()
	if !isCorrect {
		out.CurrentStreak = 0
		return out
	}
	out.CurrentStreak++
	if out.CurrentStreak > out.BestStreak {
		out.BestStreak = out.CurrentStreak
	}
	return out
}

// RecordSession appends a finished session and updates the session ledger.
func RecordSession(rec model.StatsRecord, session model.QuizSession, now time.Time) model.StatsRecord {
	out := rec.Clone()
	out.SessionHistory = append(out.SessionHistory, session)
	if len(out.SessionHistory) > model.MaxSessionHistory {
		out.SessionHistory = append([]model.QuizSession(nil), out.SessionHistory[len(out.SessionHistory)-model.MaxSessionHistory:]...)
	}
	out.TotalQuizzes++
	out.TotalQuestions += session.TotalQuestions
	out.CorrectAnswers += session.Score
	out.IncorrectAnswers += session.TotalQuestions - session.Score
	out.LastQuizDate = model.FormatTimestamp(now)
	return out
}

// NewSession builds the stored session for a finished quiz run.
func NewSession(input model.SessionInput, now time.Time) model.QuizSession {
	date := input.Date
	if date.IsZero() {
		date = now
	}
	accuracy := 0.0
	if input.TotalQuestions > 0 {
		accuracy = float64(input.Score) / float64(input.TotalQuestions) * 100
	}
	return model.QuizSession{
		Date:           model.FormatTimestamp(date),
		Mode:           input.Mode,
		Score:          input.Score,
		TotalQuestions: input.TotalQuestions,
		Accuracy:       accuracy,
		Duration:       input.Duration,
	}
}

// Mastery returns the rounded percentage of correct answers, 0 when nothing was answered.
func Mastery(correct, incorrect int) int {
	total := correct + incorrect
	if total <= 0 {
		return 0
	}
	m := int(math.Round(float64(correct) / float64(total) * 100))
	if m > 100 {
		return 100
	}
	return m
}

// Accuracy returns the raw correct ratio in [0, 1].
func Accuracy(correct, incorrect int) float64 {
	total := correct + incorrect
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Normalize recomputes derived fields and repairs collection invariants.
func Normalize(rec model.StatsRecord) model.StatsRecord {
	out := rec.Clone()
	for id, item := range out.ItemStats {
		if item.ID == "" {
			item.ID = id
		}
		item.Mastery = Mastery(item.Correct, item.Incorrect)
		out.ItemStats[id] = item
	}
	if len(out.SessionHistory) > model.MaxSessionHistory {
		out.SessionHistory = out.SessionHistory[len(out.SessionHistory)-model.MaxSessionHistory:]
	}
	if out.BestStreak < out.CurrentStreak {
		out.BestStreak = out.CurrentStreak
	}
	return out
}

// sortedItems returns item stats in id order so ties rank deterministically.
func sortedItems(rec model.StatsRecord) []model.ItemStat {
	items := make([]model.ItemStat, 0, len(rec.ItemStats))
	for _, item := range rec.ItemStats {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items
}

// WeakestItems ranks attempted items by ascending accuracy.
// Items never answered are not evidence of weakness and are left out.
func WeakestItems(rec model.StatsRecord, limit int) []string {
	candidates := make([]model.ItemStat, 0, len(rec.ItemStats))
	for _, item := range sortedItems(rec) {
		if item.Total() > 0 {
			candidates = append(candidates, item)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return Accuracy(candidates[i].Correct, candidates[i].Incorrect) < Accuracy(candidates[j].Correct, candidates[j].Incorrect)
	})
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}
	out := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, candidates[i].ID)
	}
	return out
}

// TopStudiedItems returns the most-answered items.
func TopStudiedItems(rec model.StatsRecord, limit int) []model.ItemStat {
	items := sortedItems(rec)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Total() > items[j].Total()
	})
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	return items[:limit]
}

// Breakdown holds overall answer percentages.
type Breakdown struct {
	Correct      int
	Incorrect    int
	Total        int
	CorrectPct   int
	IncorrectPct int
	Ratio        float64
}

// AccuracyBreakdown summarizes the session ledger.
func AccuracyBreakdown(rec model.StatsRecord) Breakdown {
	b := Breakdown{
		Correct:   rec.CorrectAnswers,
		Incorrect: rec.IncorrectAnswers,
		Total:     rec.TotalQuestions,
	}
	if b.Total <= 0 {
		return b
	}
	b.Ratio = float64(b.Correct) / float64(b.Total)
	b.CorrectPct = int(math.Round(b.Ratio * 100))
	b.IncorrectPct = int(math.Round(float64(b.Incorrect) / float64(b.Total) * 100))
	return b
}

// RecentSessions returns up to n sessions, newest first.
func RecentSessions(rec model.StatsRecord, n int) []model.QuizSession {
	history := rec.SessionHistory
	if n > 0 && len(history) > n {
		history = history[len(history)-n:]
	}
	out := make([]model.QuizSession, len(history))
	for i, s := range history {
		out[len(history)-1-i] = s
	}
	return out
}
