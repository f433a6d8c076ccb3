package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// SessionAccuracies returns session accuracies in chronological order.
func SessionAccuracies(rec model.StatsRecord) []float64 {
	out := make([]float64, len(rec.SessionHistory))
	for i, s := range rec.SessionHistory {
		out[i] = s.Accuracy
	}
	return out
}

// FormatDuration renders seconds as "Xm Ys".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// FormatSessionDate renders a stored session date in local time.
func FormatSessionDate(date string) string {
	t, err := model.ParseTimestamp(date)
	if err != nil {
		return date
	}
	return t.Local().Format(time.DateTime)
}

// RenderSummary prints totals, streaks and the overall breakdown.
func RenderSummary(w io.Writer, rec model.StatsRecord, curveWindow int) error {
	if rec.TotalQuizzes == 0 && len(rec.ItemStats) == 0 {
		_, err := fmt.Fprintln(w, "No study history yet.")
		return err
	}
	b := AccuracyBreakdown(rec)
	lines := []string{
		"Summary",
		fmt.Sprintf("Quizzes: %d", rec.TotalQuizzes),
		fmt.Sprintf("Questions: %d", rec.TotalQuestions),
		fmt.Sprintf("Accuracy: %d%% (%d correct, %d incorrect)", b.CorrectPct, b.Correct, b.Incorrect),
		fmt.Sprintf("Streak: %d (best %d)", rec.CurrentStreak, rec.BestStreak),
	}
	if rec.LastQuizDate != "" {
		lines = append(lines, fmt.Sprintf("Last quiz: %s", FormatSessionDate(rec.LastQuizDate)))
	}
	if accs := SessionAccuracies(rec); len(accs) > 1 {
		lines = append(lines, fmt.Sprintf("Accuracy trend: [%s]", Sparkline(MovingAverage(accs, curveWindow))))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderItemTable prints per-item stats for the given items.
func RenderItemTable(w io.Writer, title string, items []model.ItemStat) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No item stats found.")
		return err
	}
	headers := []string{"Item", "Mastery", "Correct", "Incorrect", "Total"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.ID,
			fmt.Sprintf("%d%%", item.Mastery),
			fmt.Sprintf("%d", item.Correct),
			fmt.Sprintf("%d", item.Incorrect),
			fmt.Sprintf("%d", item.Total()),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true}))
}

// RenderHistory prints sessions in the order given.
func RenderHistory(w io.Writer, sessions []model.QuizSession) error {
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers := []string{"Date", "Mode", "Score", "Accuracy", "Duration"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			FormatSessionDate(s.Date),
			s.Mode,
			fmt.Sprintf("%d/%d", s.Score, s.TotalQuestions),
			fmt.Sprintf("%.0f%%", s.Accuracy),
			FormatDuration(s.Duration),
		})
	}
	return writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true}))
}

// RenderReport prints the full plain-text dashboard.
func RenderReport(w io.Writer, rec model.StatsRecord, limit, curveWindow int) error {
	if err := RenderSummary(w, rec, curveWindow); err != nil {
		return err
	}
	if err := RenderItemTable(w, "Most Studied", TopStudiedItems(rec, limit)); err != nil {
		return err
	}
	weak := make([]model.ItemStat, 0, limit)
	for _, id := range WeakestItems(rec, limit) {
		weak = append(weak, rec.ItemStats[id])
	}
	if err := RenderItemTable(w, "Needs Review", weak); err != nil {
		return err
	}
	return RenderHistory(w, RecentSessions(rec, limit))
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
