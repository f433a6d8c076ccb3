package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/nihongo/internal/kana"
)

const (
	studyColumns = 5
	cellWidth    = 14
)

// StudyModel shows the kana chart as flashcards.
type StudyModel struct {
	chart        []kana.Pair
	showHiragana bool
	showKatakana bool
	viewport     viewport.Model
	ready        bool
}

// NewStudyModel constructs the kana chart screen.
func NewStudyModel() *StudyModel {
	return &StudyModel{
		chart:        kana.Chart(),
		showHiragana: true,
		showKatakana: true,
	}
}

// Init implements tea.Model.
func (m *StudyModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *StudyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 2
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.viewport.SetContent(m.renderChart())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "h":
			m.showHiragana = !m.showHiragana
			m.refresh()
			return m, nil
		case "k":
			m.showKatakana = !m.showKatakana
			m.refresh()
			return m, nil
		}
	}
	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *StudyModel) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderChart())
	}
}

// View implements tea.Model.
func (m *StudyModel) View() string {
	help := footerStyle.Render("h: hiragana  k: katakana  ↑/↓: scroll  q: quit")
	if !m.ready {
		return m.renderChart() + "\n" + help
	}
	return titleStyle.Render("Kana chart") + "\n" + m.viewport.View() + "\n" + help
}

func (m *StudyModel) renderChart() string {
	if !m.showHiragana && !m.showKatakana {
		return pendingStyle.Render("Both scripts hidden. Press h or k.")
	}
	var b strings.Builder
	var group kana.Group
	col := 0
	for _, p := range m.chart {
		if p.Group != group {
			if group != "" {
				b.WriteString("\n\n")
			}
			group = p.Group
			b.WriteString(accentStyle.Render(groupTitle(group)))
			b.WriteString("\n")
			col = 0
		}
		if col == studyColumns {
			b.WriteString("\n")
			col = 0
		}
		b.WriteString(m.renderCell(p))
		col++
	}
	return b.String()
}

func (m *StudyModel) renderCell(p kana.Pair) string {
	parts := make([]string, 0, 3)
	if m.showHiragana {
		parts = append(parts, p.Hiragana)
	}
	if m.showKatakana {
		parts = append(parts, p.Katakana)
	}
	text := strings.Join(parts, " ")
	cell := correctStyle.Render(text) + " " + pendingStyle.Render(p.Romaji)
	pad := cellWidth - runewidth.StringWidth(text) - 1 - len(p.Romaji)
	if pad < 1 {
		pad = 1
	}
	return cell + strings.Repeat(" ", pad)
}

func groupTitle(g kana.Group) string {
	switch g {
	case kana.GroupDakuten:
		return "Dakuten"
	case kana.GroupCombo:
		return "Combinations"
	default:
		return "Basic"
	}
}
