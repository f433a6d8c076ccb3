package stats

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func answer(rec model.StatsRecord, id string, correct bool) model.StatsRecord {
	rec = RecordItemAnswer(rec, id, correct, testNow)
	return RecordStreak(rec, correct)
}

func TestRecordAnswerFreshRecord(t *testing.T) {
	rec := answer(model.NewStatsRecord(), "水", true)
	item := rec.ItemStats["水"]
	if item.Correct != 1 || item.Incorrect != 0 || item.Mastery != 100 {
		t.Fatalf("unexpected item stat: %+v", item)
	}
	if item.LastSeen != "2026-03-01T09:30:00.000Z" {
		t.Fatalf("unexpected lastSeen: %q", item.LastSeen)
	}
	if rec.CurrentStreak != 1 || rec.BestStreak != 1 {
		t.Fatalf("unexpected streaks: current=%d best=%d", rec.CurrentStreak, rec.BestStreak)
	}

	rec = answer(rec, "水", false)
	item = rec.ItemStats["水"]
	if item.Correct != 1 || item.Incorrect != 1 || item.Mastery != 50 {
		t.Fatalf("unexpected item stat after miss: %+v", item)
	}
	if rec.CurrentStreak != 0 || rec.BestStreak != 1 {
		t.Fatalf("unexpected streaks after miss: current=%d best=%d", rec.CurrentStreak, rec.BestStreak)
	}
}

func TestMasteryAndStreakSequence(t *testing.T) {
	rec := model.NewStatsRecord()
	for i := 1; i <= 5; i++ {
		rec = answer(rec, "か", true)
		if rec.ItemStats["か"].Mastery != 100 {
			t.Fatalf("expected mastery 100 after %d correct, got %d", i, rec.ItemStats["か"].Mastery)
		}
		if rec.CurrentStreak != i {
			t.Fatalf("expected streak %d, got %d", i, rec.CurrentStreak)
		}
	}
	rec = answer(rec, "か", false)
	if got := rec.ItemStats["か"].Mastery; got != 83 {
		t.Fatalf("expected mastery 83, got %d", got)
	}
	if rec.CurrentStreak != 0 || rec.BestStreak != 5 {
		t.Fatalf("unexpected streaks: current=%d best=%d", rec.CurrentStreak, rec.BestStreak)
	}
}

func TestRecordItemAnswerDoesNotMutateInput(t *testing.T) {
	rec := model.NewStatsRecord()
	_ = RecordItemAnswer(rec, "あ", true, testNow)
	if len(rec.ItemStats) != 0 {
		t.Fatalf("input record was mutated: %+v", rec.ItemStats)
	}
}

func TestBestStreakNeverBelowCurrent(t *testing.T) {
	rec := model.NewStatsRecord()
	pattern := []bool{true, true, false, true, true, true, false, false, true}
	best := 0
	for _, ok := range pattern {
		rec = RecordStreak(rec, ok)
		if rec.BestStreak < rec.CurrentStreak {
			t.Fatalf("best %d below current %d", rec.BestStreak, rec.CurrentStreak)
		}
		if rec.BestStreak < best {
			t.Fatalf("best streak decreased from %d to %d", best, rec.BestStreak)
		}
		best = rec.BestStreak
	}
	if best != 3 {
		t.Fatalf("expected best streak 3, got %d", best)
	}
}

func TestItemCountsMatchAnswers(t *testing.T) {
	rec := model.NewStatsRecord()
	calls := map[string]int{}
	items := []string{"あ", "い", "う"}
	for i := 0; i < 30; i++ {
		id := items[i%len(items)]
		rec = answer(rec, id, i%4 != 0)
		calls[id]++
	}
	for id, n := range calls {
		if got := rec.ItemStats[id].Total(); got != n {
			t.Fatalf("item %s: expected %d answers, got %d", id, n, got)
		}
	}
}

func TestRecordSession(t *testing.T) {
	input := model.SessionInput{Mode: "kana-hiragana", Score: 7, TotalQuestions: 10, Duration: 120, Date: testNow}
	rec := RecordSession(model.NewStatsRecord(), NewSession(input, testNow), testNow)
	if rec.TotalQuizzes != 1 || rec.TotalQuestions != 10 || rec.CorrectAnswers != 7 || rec.IncorrectAnswers != 3 {
		t.Fatalf("unexpected ledger: %+v", rec)
	}
	if len(rec.SessionHistory) != 1 {
		t.Fatalf("expected 1 session, got %d", len(rec.SessionHistory))
	}
	s := rec.SessionHistory[0]
	if s.Mode != "kana-hiragana" || s.Score != 7 || s.TotalQuestions != 10 || s.Duration != 120 || s.Accuracy != 70 {
		t.Fatalf("unexpected session: %+v", s)
	}
	if rec.LastQuizDate != model.FormatTimestamp(testNow) {
		t.Fatalf("unexpected lastQuizDate: %q", rec.LastQuizDate)
	}
	if rec.CorrectAnswers+rec.IncorrectAnswers != rec.TotalQuestions {
		t.Fatalf("ledger invariant broken: %+v", rec)
	}
}

func TestRecordSessionWithoutAnswers(t *testing.T) {
	session := NewSession(model.SessionInput{Mode: "typing-meaning"}, testNow)
	if session.Accuracy != 0 {
		t.Fatalf("expected accuracy 0, got %v", session.Accuracy)
	}
	rec := RecordSession(model.NewStatsRecord(), session, testNow)
	if rec.TotalQuizzes != 1 || rec.TotalQuestions != 0 {
		t.Fatalf("unexpected ledger: %+v", rec)
	}
}

func TestRecordSessionTruncatesHistory(t *testing.T) {
	rec := model.NewStatsRecord()
	for i := 0; i < 51; i++ {
		session := NewSession(model.SessionInput{Mode: fmt.Sprintf("m%d", i), Score: 1, TotalQuestions: 1}, testNow)
		rec = RecordSession(rec, session, testNow)
	}
	if len(rec.SessionHistory) != model.MaxSessionHistory {
		t.Fatalf("expected %d sessions, got %d", model.MaxSessionHistory, len(rec.SessionHistory))
	}
	for i, s := range rec.SessionHistory {
		if want := fmt.Sprintf("m%d", i+1); s.Mode != want {
			t.Fatalf("session %d: expected %s, got %s", i, want, s.Mode)
		}
	}
	if rec.TotalQuizzes != 51 {
		t.Fatalf("expected 51 quizzes, got %d", rec.TotalQuizzes)
	}
}

func TestWeakestItems(t *testing.T) {
	rec := model.NewStatsRecord()
	rec.ItemStats["a"] = model.ItemStat{ID: "a", Correct: 9, Incorrect: 1}
	rec.ItemStats["b"] = model.ItemStat{ID: "b", Correct: 1, Incorrect: 3}
	rec.ItemStats["c"] = model.ItemStat{ID: "c"}
	rec.ItemStats["d"] = model.ItemStat{ID: "d", Correct: 2, Incorrect: 2}
	rec.ItemStats["e"] = model.ItemStat{ID: "e", Correct: 1, Incorrect: 1}

	weak := WeakestItems(rec, 10)
	want := []string{"b", "d", "e", "a"}
	if strings.Join(weak, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, weak)
	}
	if got := WeakestItems(rec, 2); len(got) != 2 || got[0] != "b" {
		t.Fatalf("unexpected limited result: %v", got)
	}
}

func TestWeakestItemsRankingUsesRawRatio(t *testing.T) {
	rec := model.NewStatsRecord()
	// 2/3 and 667/1000 both round to 67 but are not equal.
	rec.ItemStats["x"] = model.ItemStat{ID: "x", Correct: 667, Incorrect: 333}
	rec.ItemStats["y"] = model.ItemStat{ID: "y", Correct: 2, Incorrect: 1}
	weak := WeakestItems(rec, 0)
	if len(weak) != 2 || weak[0] != "y" {
		t.Fatalf("expected y ranked first, got %v", weak)
	}
}

func TestTopStudiedItems(t *testing.T) {
	rec := model.NewStatsRecord()
	rec.ItemStats["b"] = model.ItemStat{ID: "b", Correct: 3, Incorrect: 1}
	rec.ItemStats["a"] = model.ItemStat{ID: "a", Correct: 2, Incorrect: 2}
	rec.ItemStats["c"] = model.ItemStat{ID: "c", Correct: 1}
	top := TopStudiedItems(rec, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 items, got %d", len(top))
	}
	if top[0].ID != "a" || top[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", top)
	}
}

func TestAccuracyBreakdown(t *testing.T) {
	if b := AccuracyBreakdown(model.NewStatsRecord()); b.CorrectPct != 0 || b.IncorrectPct != 0 {
		t.Fatalf("expected zero breakdown, got %+v", b)
	}
	rec := model.NewStatsRecord()
	rec.TotalQuestions, rec.CorrectAnswers, rec.IncorrectAnswers = 3, 2, 1
	b := AccuracyBreakdown(rec)
	if b.CorrectPct != 67 || b.IncorrectPct != 33 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
}

func TestRecentSessionsNewestFirst(t *testing.T) {
	rec := model.NewStatsRecord()
	for i := 0; i < 12; i++ {
		rec.SessionHistory = append(rec.SessionHistory, model.QuizSession{Mode: fmt.Sprintf("m%d", i)})
	}
	recent := RecentSessions(rec, 10)
	if len(recent) != 10 || recent[0].Mode != "m11" || recent[9].Mode != "m2" {
		t.Fatalf("unexpected recent sessions: %+v", recent)
	}
}

func TestNormalizeRecomputesMastery(t *testing.T) {
	rec := model.NewStatsRecord()
	rec.ItemStats["木"] = model.ItemStat{Correct: 1, Incorrect: 3, Mastery: 99}
	rec.CurrentStreak = 4
	out := Normalize(rec)
	if out.ItemStats["木"].Mastery != 25 || out.ItemStats["木"].ID != "木" {
		t.Fatalf("unexpected normalized item: %+v", out.ItemStats["木"])
	}
	if out.BestStreak != 4 {
		t.Fatalf("expected best streak raised to 4, got %d", out.BestStreak)
	}
}

func TestRenderReport(t *testing.T) {
	rec := answer(model.NewStatsRecord(), "水", true)
	rec = answer(rec, "火", false)
	rec = RecordSession(rec, NewSession(model.SessionInput{Mode: "typing-meaning", Score: 1, TotalQuestions: 2, Duration: 65}, testNow), testNow)

	var buf bytes.Buffer
	if err := RenderReport(&buf, rec, 10, 5); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Quizzes: 1", "Accuracy: 50%", "Most Studied", "Needs Review", "typing-meaning", "1m 5s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestSparklineFlat(t *testing.T) {
	if got := Sparkline([]float64{50, 50, 50}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
}
