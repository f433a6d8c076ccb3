package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
	"github.com/verte-zerg/nihongo/internal/recorder"
)

const revealDelay = 2 * time.Second

// KanjiSource provides kanji details.
type KanjiSource interface {
	Kanji(ctx context.Context, char string) (model.KanjiDetail, error)
}

type kanjiState int

const (
	stateLoading kanjiState = iota
	stateAsking
	stateRevealed
	stateFailed
	stateOver
)

// Messages carry the question sequence number so that replies for a
// question that is no longer on screen are dropped.
type questionMsg struct {
	seq         int
	detail      model.KanjiDetail
	distractors []model.KanjiDetail
	err         error
}

type countdownMsg struct{ seq int }

type advanceMsg struct{ seq int }

type clockMsg struct{}

// KanjiModel is the kanji quiz in typing or multiple-choice mode.
type KanjiModel struct {
	cfg      model.QuizConfig
	source   KanjiSource
	recorder *recorder.Recorder
	picker   *quiz.Picker
	list     []string
	logger   *zap.Logger
	input    textinput.Model

	width  int
	height int

	state     kanjiState
	seq       int
	detail    model.KanjiDetail
	choices   []string
	selected  int
	question  *recorder.Question
	timeLeft  int
	correct   bool
	typed     string
	err       error
	notice    string
	round     *quiz.KanjiRound
	startedAt time.Time
	stats     model.StatsRecord
}

// NewKanjiModel constructs the kanji quiz screen over list.
func NewKanjiModel(cfg model.QuizConfig, list []string, source KanjiSource, rec *recorder.Recorder, picker *quiz.Picker, log *zap.Logger) *KanjiModel {
	if cfg.QuestionSeconds <= 0 {
		cfg.QuestionSeconds = quiz.DefaultQuestionSeconds
	}
	if picker == nil {
		picker = quiz.NewPicker()
	}
	input := textinput.New()
	input.Placeholder = cfg.QuestionType
	input.CharLimit = 40
	input.Width = 24
	input.Focus()

	m := &KanjiModel{
		cfg:       cfg,
		source:    source,
		recorder:  rec,
		picker:    picker,
		list:      list,
		logger:    logger.OrNop(log),
		input:     input,
		round:     quiz.NewKanjiRound(cfg.Mode, cfg.QuestionType),
		startedAt: time.Now(),
		selected:  -1,
	}
	m.stats = rec.Snapshot(context.Background())
	return m
}

// Init implements tea.Model.
func (m *KanjiModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.nextQuestion()}
	if m.cfg.TimerMode == model.TimerTotal {
		cmds = append(cmds, clockTick())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *KanjiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case questionMsg:
		return m, m.handleQuestion(msg)
	case countdownMsg:
		return m, m.handleCountdown(msg)
	case advanceMsg:
		if msg.seq != m.seq || m.state != stateRevealed {
			return m, nil
		}
		return m, m.nextQuestion()
	case clockMsg:
		if m.state == stateOver {
			return m, nil
		}
		return m, clockTick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.typing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *KanjiModel) typing() bool {
	return m.cfg.Mode == model.ModeTyping && m.state == stateAsking
}

func (m *KanjiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.endQuiz()
		return m, tea.Quit
	case tea.KeyEsc:
		if m.state == stateOver {
			return m, tea.Quit
		}
		m.endQuiz()
		return m, nil
	}

	switch m.state {
	case stateAsking:
		if m.typing() {
			if msg.Type == tea.KeyEnter {
				return m, m.submitTyped()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch key := msg.String(); key {
		case "1", "2", "3", "4":
			return m, m.submitChoice(int(key[0] - '1'))
		case "e":
			m.endQuiz()
		}
	case stateRevealed:
		switch msg.String() {
		case "enter", " ", "n":
			return m, m.nextQuestion()
		case "e":
			m.endQuiz()
		}
	case stateFailed:
		switch msg.String() {
		case "enter", "n":
			return m, m.nextQuestion()
		case "e":
			m.endQuiz()
		}
	case stateOver:
		switch msg.String() {
		case "r":
			if !m.round.StartReview() {
				m.notice = "No incorrect answers to review"
				return m, nil
			}
			return m, m.restart()
		case "n", "enter":
			m.round.Reset()
			return m, m.restart()
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *KanjiModel) restart() tea.Cmd {
	m.startedAt = time.Now()
	m.notice = ""
	cmds := []tea.Cmd{m.nextQuestion()}
	if m.cfg.TimerMode == model.TimerTotal {
		cmds = append(cmds, clockTick())
	}
	return tea.Batch(cmds...)
}

// nextQuestion invalidates everything tied to the current question and
// starts loading the next one.
func (m *KanjiModel) nextQuestion() tea.Cmd {
	m.cancelQuestion()
	m.seq++
	m.state = stateLoading
	m.err = nil
	m.typed = ""
	m.selected = -1
	m.input.SetValue("")
	seq := m.seq

	if detail, ok := m.round.NextReview(); ok {
		return m.buildQuestion(seq, detail.Kanji, &detail)
	}
	pool := m.pool()
	idx := m.picker.Next(pool)
	if idx < 0 {
		return func() tea.Msg {
			return questionMsg{seq: seq, err: fmt.Errorf("no kanji found matching your criteria")}
		}
	}
	return m.buildQuestion(seq, pool[idx], nil)
}

func (m *KanjiModel) pool() []string {
	if !m.cfg.ReviewWeak {
		return m.list
	}
	weak := m.recorder.WeakItems(context.Background(), quiz.ReviewWeakLimit)
	if len(weak) == 0 {
		m.notice = "No weak kanji yet; drawing from the full list"
		return m.list
	}
	return weak
}

func (m *KanjiModel) buildQuestion(seq int, char string, known *model.KanjiDetail) tea.Cmd {
	source := m.source
	var distractors []string
	if m.cfg.Mode == model.ModeMultipleChoice {
		distractors = m.picker.Sample(m.list, quiz.DistractorCount, char)
	}
	return func() tea.Msg {
		ctx := context.Background()
		var detail model.KanjiDetail
		if known != nil {
			detail = *known
		} else {
			d, err := source.Kanji(ctx, char)
			if err != nil {
				return questionMsg{seq: seq, err: fmt.Errorf("failed to fetch %s: %w", char, err)}
			}
			detail = d
		}
		msg := questionMsg{seq: seq, detail: detail}
		for _, c := range distractors {
			if d, err := source.Kanji(ctx, c); err == nil {
				msg.distractors = append(msg.distractors, d)
			}
		}
		return msg
	}
}

func (m *KanjiModel) handleQuestion(msg questionMsg) tea.Cmd {
	if msg.seq != m.seq || m.state != stateLoading {
		return nil
	}
	if msg.err != nil {
		m.logger.Warn("failed to load question", zap.Error(msg.err))
		m.err = msg.err
		m.state = stateFailed
		return nil
	}
	m.detail = msg.detail
	m.choices = nil
	if m.cfg.Mode == model.ModeMultipleChoice {
		m.choices = quiz.Choices(msg.detail, msg.distractors, m.cfg.QuestionType, m.picker)
	}
	m.state = stateAsking
	m.question = m.recorder.BeginQuestion(msg.detail.Kanji, 0, nil)
	if m.cfg.TimerMode != model.TimerPerQuestion {
		return nil
	}
	m.timeLeft = m.cfg.QuestionSeconds
	return countdownTick(m.seq)
}

func (m *KanjiModel) handleCountdown(msg countdownMsg) tea.Cmd {
	if msg.seq != m.seq || m.state != stateAsking {
		return nil
	}
	m.timeLeft--
	if m.timeLeft > 0 {
		return countdownTick(m.seq)
	}
	m.timeLeft = 0
	rec, ok, err := m.question.Expire(context.Background())
	return m.resolve(false, rec, ok, err)
}

func (m *KanjiModel) submitTyped() tea.Cmd {
	answer := strings.TrimSpace(m.input.Value())
	if answer == "" {
		return nil
	}
	m.typed = answer
	correct := quiz.CheckAnswer(m.detail, m.cfg.QuestionType, answer)
	rec, ok, err := m.question.Submit(context.Background(), correct)
	return m.resolve(correct, rec, ok, err)
}

func (m *KanjiModel) submitChoice(idx int) tea.Cmd {
	if idx < 0 || idx >= len(m.choices) {
		return nil
	}
	m.selected = idx
	m.typed = m.choices[idx]
	correct := quiz.CheckAnswer(m.detail, m.cfg.QuestionType, m.choices[idx])
	rec, ok, err := m.question.Submit(context.Background(), correct)
	return m.resolve(correct, rec, ok, err)
}

// resolve applies the outcome of whichever of answer or expiry won.
func (m *KanjiModel) resolve(correct bool, rec model.StatsRecord, accepted bool, err error) tea.Cmd {
	if !accepted {
		if err != nil {
			m.logger.Warn("failed to record answer", zap.String("kanji", m.detail.Kanji), zap.Error(err))
		}
		return nil
	}
	m.stats = rec
	m.correct = correct
	m.round.Record(m.detail, correct)
	m.state = stateRevealed
	seq := m.seq
	return tea.Tick(revealDelay, func(time.Time) tea.Msg {
		return advanceMsg{seq: seq}
	})
}

func (m *KanjiModel) cancelQuestion() {
	if m.question != nil {
		m.question.Cancel()
		m.question = nil
	}
}

// endQuiz closes the run. Runs without answers are not recorded.
func (m *KanjiModel) endQuiz() {
	if m.state == stateOver {
		return
	}
	m.cancelQuestion()
	m.seq++
	m.state = stateOver
	if m.round.Answered() == 0 {
		return
	}
	rec, err := m.recorder.EndSession(context.Background(), model.SessionInput{
		Mode:           m.round.Label(),
		Score:          m.round.Score(),
		TotalQuestions: m.round.Answered(),
		Duration:       int(time.Since(m.startedAt).Seconds()),
	})
	if err != nil {
		m.logger.Warn("failed to record session", zap.Error(err))
		return
	}
	m.stats = rec
}

func countdownTick(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownMsg{seq: seq}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return clockMsg{}
	})
}

// View implements tea.Model.
func (m *KanjiModel) View() string {
	var b strings.Builder
	switch m.state {
	case stateLoading:
		b.WriteString(pendingStyle.Render("Loading..."))
	case stateFailed:
		b.WriteString(incorrectStyle.Render(m.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render("enter: try another  e: end quiz"))
	case stateOver:
		b.WriteString(m.renderSummary())
	default:
		b.WriteString(m.renderQuestion())
	}
	if m.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(accentStyle.Render(m.notice))
	}
	return place(m.width, m.height, b.String(), m.renderFooter())
}

func (m *KanjiModel) renderQuestion() string {
	var b strings.Builder
	prompt := "Meaning?"
	if m.cfg.QuestionType == model.QuestionReading {
		prompt = "Reading?"
	}
	if m.round.Reviewing() {
		prompt = "Review: " + prompt
	}
	b.WriteString(titleStyle.Render(prompt))
	b.WriteString("\n")
	b.WriteString(glyphStyle.Render(m.detail.Kanji))
	b.WriteString("\n\n")

	if m.cfg.Mode == model.ModeMultipleChoice {
		for i, c := range m.choices {
			line := fmt.Sprintf("%d. %s", i+1, c)
			switch {
			case m.state == stateRevealed && quiz.CheckAnswer(m.detail, m.cfg.QuestionType, c):
				line = goodStyle.Render(line)
			case i == m.selected:
				line = selectedStyle.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else if m.state == stateAsking {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.state == stateRevealed {
		b.WriteString("\n")
		if m.correct {
			b.WriteString(goodStyle.Render("Correct!"))
		} else if m.typed == "" {
			b.WriteString(incorrectStyle.Render("Time's up."))
		} else {
			b.WriteString(incorrectStyle.Render("Incorrect. Keep practicing!"))
		}
		b.WriteString("\n")
		b.WriteString(m.renderAnswer())
	}
	return b.String()
}

func (m *KanjiModel) renderAnswer() string {
	d := m.detail
	lines := []string{
		"Meanings: " + joinOrDash(d.Meanings),
		"Kun: " + joinOrDash(d.KunReadings),
		"On: " + joinOrDash(d.OnReadings),
	}
	if d.StrokeCount > 0 {
		lines = append(lines, fmt.Sprintf("Strokes: %d", d.StrokeCount))
	}
	width := contentWidth(m.width)
	for i, line := range lines {
		lines[i] = wrapText(line, pendingStyle, width)
	}
	return strings.Join(lines, "\n")
}

func (m *KanjiModel) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Quiz finished"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score %d of %d (%.0f%%)", m.round.Score(), m.round.Answered(), m.round.Accuracy()))
	if missed := m.round.Missed(); len(missed) > 0 {
		chars := make([]string, 0, len(missed))
		for _, d := range missed {
			chars = append(chars, d.Kanji)
		}
		b.WriteString("\n\nMissed: ")
		b.WriteString(incorrectStyle.Render(strings.Join(chars, " ")))
	}
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("r: review incorrect  n: new quiz  q: quit"))
	return b.String()
}

func (m *KanjiModel) renderFooter() string {
	segments := []string{
		fmt.Sprintf("Score %d/%d", m.round.Score(), m.round.Answered()),
		fmt.Sprintf("Streak %d", m.stats.CurrentStreak),
		fmt.Sprintf("Best %d", m.stats.BestStreak),
	}
	switch m.cfg.TimerMode {
	case model.TimerPerQuestion:
		if m.state == stateAsking {
			segments = append(segments, fmt.Sprintf("Time %ds", m.timeLeft))
		}
	case model.TimerTotal:
		if m.state != stateOver {
			segments = append(segments, "Elapsed "+formatClock(int(time.Since(m.startedAt).Seconds())))
		}
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func formatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
