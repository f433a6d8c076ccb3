package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/kana"
	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
	"github.com/verte-zerg/nihongo/internal/recorder"
)

type kanaFeedback struct {
	kana    kana.Kana
	typed   string
	correct bool
}

// KanaModel is the kana typing quiz.
type KanaModel struct {
	game     *quiz.KanaGame
	recorder *recorder.Recorder
	logger   *zap.Logger
	input    textinput.Model

	width  int
	height int

	startedAt   time.Time
	sessionOpen bool
	stats       model.StatsRecord
	last        *kanaFeedback
}

// NewKanaModel constructs the kana quiz screen.
func NewKanaModel(game *quiz.KanaGame, rec *recorder.Recorder, log *zap.Logger) *KanaModel {
	input := textinput.New()
	input.Placeholder = "romaji"
	input.CharLimit = 8
	input.Width = 12
	input.Focus()

	m := &KanaModel{
		game:     game,
		recorder: rec,
		logger:   logger.OrNop(log),
		input:    input,
	}
	m.stats = rec.Snapshot(context.Background())
	m.startSession()
	return m
}

// Init implements tea.Model.
func (m *KanaModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *KanaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.endSession()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.game.Over() {
				m.game.Restart()
				m.last = nil
				m.startSession()
				return m, nil
			}
			m.submit()
			return m, nil
		}
		if m.game.Over() {
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *KanaModel) startSession() {
	m.startedAt = time.Now()
	m.sessionOpen = true
	m.input.SetValue("")
}

func (m *KanaModel) submit() {
	typed := strings.TrimSpace(m.input.Value())
	if typed == "" {
		return
	}
	asked := m.game.Current()
	correct := m.game.Submit(typed)
	m.input.SetValue("")
	m.last = &kanaFeedback{kana: asked, typed: typed, correct: correct}

	rec, err := m.recorder.RecordAnswer(context.Background(), asked.Char, correct)
	if err != nil {
		m.logger.Warn("failed to record answer", zap.String("kana", asked.Char), zap.Error(err))
	} else {
		m.stats = rec
	}
	if m.game.Over() {
		m.endSession()
	}
}

// endSession reports the run once; a run with no answers is still a session.
func (m *KanaModel) endSession() {
	if !m.sessionOpen {
		return
	}
	m.sessionOpen = false
	rec, err := m.recorder.EndSession(context.Background(), model.SessionInput{
		Mode:           m.game.Mode(),
		Score:          m.game.Score(),
		TotalQuestions: m.game.Answered(),
		Duration:       int(time.Since(m.startedAt).Seconds()),
	})
	if err != nil {
		m.logger.Warn("failed to record session", zap.Error(err))
		return
	}
	m.stats = rec
}

// View implements tea.Model.
func (m *KanaModel) View() string {
	var b strings.Builder
	if m.game.Over() {
		b.WriteString(titleStyle.Render("Game over"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Score %d of %d", m.game.Score(), m.game.Answered()))
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("enter: play again  q/esc: quit"))
		return place(m.width, m.height, b.String(), m.renderFooter())
	}

	b.WriteString(glyphStyle.Render(m.game.Current().Char))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	if m.last != nil {
		b.WriteString("\n\n")
		b.WriteString(m.renderFeedback())
	}
	return place(m.width, m.height, b.String(), m.renderFooter())
}

func (m *KanaModel) renderFeedback() string {
	fb := m.last
	if fb.correct {
		return goodStyle.Render(fmt.Sprintf("%s = %s", fb.kana.Char, fb.kana.Romaji))
	}
	expected := renderStyledRunes(diffRunes([]rune(fb.kana.Romaji), []rune(strings.ToLower(fb.typed))))
	return fmt.Sprintf("%s = %s  %s", fb.kana.Char, expected, pendingStyle.Render("(you typed "+fb.typed+")"))
}

func (m *KanaModel) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Score %d", m.game.Score()),
		fmt.Sprintf("Lives %s", livesBar(m.game.Lives())),
		fmt.Sprintf("Streak %d", m.stats.CurrentStreak),
		fmt.Sprintf("Best %d", m.stats.BestStreak),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func livesBar(lives int) string {
	if lives <= 0 {
		return "-"
	}
	return strings.Repeat("♥", lives)
}
