package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
)

var testWater = model.KanjiDetail{Kanji: "水", Meanings: []string{"water"}, KunReadings: []string{"みず"}, OnReadings: []string{"スイ"}, StrokeCount: 4}

func newTestKanjiModel(t *testing.T, cfg model.QuizConfig) (*KanjiModel, *memStore) {
	t.Helper()
	rec, st := newTestRecorder(t)
	src := fakeSource{"水": testWater}
	m := NewKanjiModel(cfg, []string{"水"}, src, rec, quiz.NewSeededPicker(1), nil)
	m.Init()
	m.Update(questionMsg{seq: m.seq, detail: testWater})
	if m.state != stateAsking {
		t.Fatalf("expected asking state, got %v", m.state)
	}
	return m, st
}

func typingConfig(timer string) model.QuizConfig {
	return model.QuizConfig{
		Mode:            model.ModeTyping,
		QuestionType:    model.QuestionMeaning,
		TimerMode:       timer,
		QuestionSeconds: 2,
	}
}

func TestKanjiStaleQuestionIgnored(t *testing.T) {
	m, _ := newTestKanjiModel(t, typingConfig(model.TimerNone))
	m.Update(questionMsg{seq: m.seq - 1, detail: model.KanjiDetail{Kanji: "火"}})
	if m.detail.Kanji != "水" {
		t.Fatalf("stale question replaced the current one")
	}
}

func TestKanjiCountdownExpiryRecordsIncorrect(t *testing.T) {
	m, st := newTestKanjiModel(t, typingConfig(model.TimerPerQuestion))
	if m.timeLeft != 2 {
		t.Fatalf("expected countdown of 2, got %d", m.timeLeft)
	}
	m.Update(countdownMsg{seq: m.seq - 1})
	if m.timeLeft != 2 {
		t.Fatalf("stale tick must be ignored")
	}
	m.Update(countdownMsg{seq: m.seq})
	m.Update(countdownMsg{seq: m.seq})
	if m.state != stateRevealed || m.correct {
		t.Fatalf("expected incorrect reveal after expiry, state=%v", m.state)
	}
	item := st.snapshot().ItemStats["水"]
	if item.Incorrect != 1 || item.Correct != 0 {
		t.Fatalf("unexpected item after expiry: %+v", item)
	}

	m.state = stateAsking
	m.input.SetValue("water")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := st.snapshot().ItemStats["水"].Total(); got != 1 {
		t.Fatalf("late submit recorded a second answer: %d", got)
	}
}

func TestKanjiAnswerBeatsTimer(t *testing.T) {
	m, st := newTestKanjiModel(t, typingConfig(model.TimerPerQuestion))
	m.input.SetValue(" Water ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != stateRevealed || !m.correct {
		t.Fatalf("expected correct reveal")
	}
	m.Update(countdownMsg{seq: m.seq})
	m.Update(countdownMsg{seq: m.seq})
	item := st.snapshot().ItemStats["水"]
	if item.Correct != 1 || item.Incorrect != 0 {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestKanjiMultipleChoice(t *testing.T) {
	cfg := typingConfig(model.TimerNone)
	cfg.Mode = model.ModeMultipleChoice
	m, st := newTestKanjiModel(t, cfg)
	if len(m.choices) != quiz.ChoiceCount {
		t.Fatalf("expected %d choices, got %v", quiz.ChoiceCount, m.choices)
	}
	idx := -1
	for i, c := range m.choices {
		if c == "water" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("correct option missing: %v", m.choices)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{rune('1' + idx)}})
	if !m.correct || st.snapshot().ItemStats["水"].Correct != 1 {
		t.Fatalf("expected correct choice to be recorded")
	}
}

func TestKanjiEndQuizAndReview(t *testing.T) {
	m, st := newTestKanjiModel(t, typingConfig(model.TimerNone))
	m.input.SetValue("fire")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != stateOver {
		t.Fatalf("expected quiz over")
	}
	rec := st.snapshot()
	if rec.TotalQuizzes != 1 || rec.SessionHistory[0].Mode != "typing-meaning" || rec.SessionHistory[0].Score != 0 {
		t.Fatalf("unexpected session: %+v", rec.SessionHistory)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.state != stateLoading || m.round.Answered() != 0 {
		t.Fatalf("expected review to start loading with a fresh score")
	}
}

func TestKanjiEndWithoutAnswersSkipsSession(t *testing.T) {
	m, st := newTestKanjiModel(t, typingConfig(model.TimerNone))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if st.snapshot().TotalQuizzes != 0 {
		t.Fatalf("empty kanji run must not be recorded")
	}
}

func TestKanjiFooterShowsTimer(t *testing.T) {
	m, _ := newTestKanjiModel(t, typingConfig(model.TimerPerQuestion))
	if out := m.renderFooter(); !containsAll(out, []string{"Score 0/0", "Streak 0", "Time 2s"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}
