// Package statsui provides the Bubble Tea stats dashboard.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/stats"
	"github.com/verte-zerg/nihongo/internal/store"
)

const (
	tabOverview = iota
	tabItems
	tabHistory
)

const (
	// DefaultRefresh is the poll interval used when change events are missed.
	DefaultRefresh = 2 * time.Second
	// DefaultCurveWindow smooths the accuracy sparkline.
	DefaultCurveWindow = 5

	itemLimit    = 10
	historyLimit = 10
	barWidth     = 30
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	correctBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	missBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	weakStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// Source supplies the record and announces when it changes.
type Source interface {
	Load(ctx context.Context) model.StatsRecord
	Changes() *store.Broker
}

// Config holds dashboard settings.
type Config struct {
	CurveWindow int
	Refresh     time.Duration
}

type changeMsg struct {
	remote bool
}

type tickMsg struct{}

// Model implements the Bubble Tea stats dashboard.
type Model struct {
	source Source
	cfg    Config
	logger *zap.Logger

	changes <-chan store.Change
	cancel  func()

	rec       model.StatsRecord
	updatedAt time.Time
	now       func() time.Time

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	itemTable   table.Model
	tableLayout tableLayout

	width  int
	height int
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

// NewModel constructs the dashboard and subscribes to record changes.
func NewModel(source Source, cfg Config, log *zap.Logger) *Model {
	if cfg.CurveWindow <= 0 {
		cfg.CurveWindow = DefaultCurveWindow
	}
	if cfg.Refresh <= 0 {
		cfg.Refresh = DefaultRefresh
	}
	m := &Model{
		source: source,
		cfg:    cfg,
		logger: logger.OrNop(log),
		now:    time.Now,
		tabs:   []string{"Overview", "Items", "History"},
	}
	m.changes, m.cancel = source.Changes().Subscribe()
	m.itemTable = table.New(
		table.WithColumns(itemColumns()),
		table.WithStyles(itemTableStyles()),
	)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refresh()
	return m
}

// Close stops listening for record changes.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.tick())
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{remote: c.Remote}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.Refresh, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case changeMsg:
		m.logger.Debug("stats changed", zap.Bool("remote", msg.remote))
		m.refresh()
		return m, m.waitForChange()
	case tickMsg:
		m.refresh()
		return m, m.tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.Close()
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.refresh()
			return m, nil
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "g", "home":
			if m.activeTab == tabItems {
				m.itemTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabItems {
				m.itemTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabItems {
				var cmd tea.Cmd
				m.itemTable, cmd = m.itemTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// refresh re-reads the record; the source already degrades to an empty
// record on failure so there is no error state to show.
func (m *Model) refresh() {
	m.rec = m.source.Load(context.Background())
	m.updatedAt = m.now()
	m.applyItemTable()
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setItemTableSize(m.width, vpHeight)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabItems {
		m.itemTable.Focus()
	} else {
		m.itemTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	status := fmt.Sprintf("Updated %s  window=%d  refresh=%s",
		m.updatedAt.Format(time.TimeOnly), m.cfg.CurveWindow, m.cfg.Refresh)
	return tabs + "\n" + headerStyle.Render(truncateLine(status, m.width))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render(truncateLine("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Refresh: r  Quit: q", m.width))
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabItems {
		if len(m.rec.ItemStats) == 0 {
			return fitLines("No item stats found.", m.width, height)
		}
		view := tableMutedStyle.Render(m.itemTable.View())
		weak := weakStyle.Render(truncateLine(renderWeakLine(m.rec), m.width))
		return fitLines(view+"\n\n"+weak, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.rec, m.cfg.CurveWindow, width))
	m.viewports[tabHistory].SetContent(renderHistory(m.rec))
}

func renderOverview(rec model.StatsRecord, window, width int) string {
	if rec.TotalQuizzes == 0 && len(rec.ItemStats) == 0 {
		return "No study history yet."
	}
	parts := []string{
		renderSummaryCards(rec, width),
		renderBreakdown(stats.AccuracyBreakdown(rec)),
	}
	if curve := renderCurve(rec, window, width); curve != "" {
		parts = append(parts, curve)
	}
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(rec model.StatsRecord, width int) string {
	b := stats.AccuracyBreakdown(rec)
	cards := []string{
		metricCard("Quizzes", fmt.Sprintf("%d", rec.TotalQuizzes)),
		metricCard("Questions", fmt.Sprintf("%d", rec.TotalQuestions)),
		metricCard("Accuracy", fmt.Sprintf("%d%%", b.CorrectPct)),
		metricCard("Streak", fmt.Sprintf("%d", rec.CurrentStreak)),
		metricCard("Best Streak", fmt.Sprintf("%d", rec.BestStreak)),
		metricCard("Items", fmt.Sprintf("%d", len(rec.ItemStats))),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderBreakdown(b stats.Breakdown) string {
	correct := bar(b.Correct, b.Total)
	miss := bar(b.Incorrect, b.Total)
	return strings.Join([]string{
		fmt.Sprintf("Correct   %s %3d%% (%d)", correctBarStyle.Render(correct), b.CorrectPct, b.Correct),
		fmt.Sprintf("Incorrect %s %3d%% (%d)", missBarStyle.Render(miss), b.IncorrectPct, b.Incorrect),
	}, "\n")
}

func bar(n, total int) string {
	filled := 0
	if total > 0 {
		filled = n * barWidth / total
	}
	filled = minInt(maxInt(filled, 0), barWidth)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func renderCurve(rec model.StatsRecord, window, width int) string {
	accs := stats.SessionAccuracies(rec)
	if len(accs) < 2 {
		return ""
	}
	line := stats.Sparkline(stats.MovingAverage(accs, window))
	limit := maxInt(1, width-4)
	if len(line) > limit {
		line = line[len(line)-limit:]
	}
	return headerStyle.Render(fmt.Sprintf("Accuracy trend (window %d)", window)) + "\n[" + line + "]"
}

func renderHistory(rec model.StatsRecord) string {
	var buf bytes.Buffer
	if err := stats.RenderHistory(&buf, stats.RecentSessions(rec, historyLimit)); err != nil {
		return fmt.Sprintf("Failed to render history: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderWeakLine(rec model.StatsRecord) string {
	weak := stats.WeakestItems(rec, itemLimit)
	if len(weak) == 0 {
		return "Needs review: none"
	}
	parts := make([]string, 0, len(weak))
	for _, id := range weak {
		parts = append(parts, fmt.Sprintf("%s %d%%", id, rec.ItemStats[id].Mastery))
	}
	return "Needs review: " + strings.Join(parts, "  ")
}

func itemColumns() []table.Column {
	return []table.Column{
		{Title: "Item", Width: 6},
		{Title: "Mastery", Width: 8},
		{Title: "Correct", Width: 7},
		{Title: "Incorrect", Width: 9},
		{Title: "Total", Width: 6},
		{Title: "Last Seen", Width: 19},
	}
}

func buildItemRows(rec model.StatsRecord) []table.Row {
	items := stats.TopStudiedItems(rec, itemLimit)
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		lastSeen := ""
		if item.LastSeen != "" {
			lastSeen = stats.FormatSessionDate(item.LastSeen)
		}
		rows = append(rows, table.Row{
			item.ID,
			fmt.Sprintf("%d%%", item.Mastery),
			fmt.Sprintf("%d", item.Correct),
			fmt.Sprintf("%d", item.Incorrect),
			fmt.Sprintf("%d", item.Total()),
			lastSeen,
		})
	}
	return rows
}

func (m *Model) applyItemTable() {
	rows := buildItemRows(m.rec)
	m.itemTable.SetRows(rows)
	if m.tableLayout.rowCount != len(rows) {
		m.tableLayout.rowCount = len(rows)
		m.itemTable.GotoTop()
	}
}

func (m *Model) setItemTableSize(width, height int) {
	// Two lines below the table hold the weak item summary.
	tableHeight := maxInt(1, height-2)
	if m.tableLayout.width == width && m.tableLayout.height == tableHeight {
		return
	}
	m.tableLayout.width = width
	m.tableLayout.height = tableHeight
	m.itemTable.SetWidth(width)
	m.itemTable.SetHeight(tableHeight)
	if viewHeight := lipgloss.Height(m.itemTable.View()); viewHeight > tableHeight {
		m.itemTable.SetHeight(maxInt(1, tableHeight-(viewHeight-tableHeight)))
	}
}

func itemTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
