package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/nihongo/internal/dictionary"
	"github.com/verte-zerg/nihongo/internal/kana"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/stats"
	"github.com/verte-zerg/nihongo/internal/statsui"
	"github.com/verte-zerg/nihongo/internal/tui"
)

const (
	defaultStatsLast      = 10
	defaultCurveWindow    = statsui.DefaultCurveWindow
	defaultRefreshSeconds = 2
	defaultTermWidth      = 80
	maxLookupSenses       = 3
)

var (
	statsPlain          bool
	statsLast           int
	statsCurveWindow    int
	statsRefreshSeconds int

	resetYes bool
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <query>",
		Short: "Search the dictionary for a word or kanji",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLookupCmd,
	}
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	dict, _, err := newDictionary(a.log)
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	res, err := dict.Lookup(contextOf(cmd), query)
	if errors.Is(err, dictionary.ErrNoResults) {
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "No results for %q\n", query)
		return err
	}
	if err != nil {
		return err
	}
	return printLookup(cmd.OutOrStdout(), res)
}

func printLookup(w io.Writer, res dictionary.Result) error {
	var lines []string
	if len(res.Words) > 0 {
		lines = append(lines, "Words")
		for _, word := range res.Words {
			lines = append(lines, "  "+formatWordHeading(word))
			for i, sense := range word.Senses {
				if i >= maxLookupSenses {
					break
				}
				line := fmt.Sprintf("    %d. %s", i+1, strings.Join(sense.English, "; "))
				if len(sense.PartsOfSpeech) > 0 {
					line += fmt.Sprintf(" (%s)", strings.Join(sense.PartsOfSpeech, ", "))
				}
				lines = append(lines, line)
			}
		}
		lines = append(lines, "")
	}
	if len(res.Kanji) > 0 {
		title := "Kanji"
		if res.Fallback {
			title = "Kanji (offline suggestions)"
		}
		lines = append(lines, title)
		for _, detail := range res.Kanji {
			lines = append(lines, formatKanjiDetail(detail)...)
		}
		lines = append(lines, "")
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatWordHeading(word model.WordResult) string {
	heading := word.Word
	if word.Reading != "" && word.Reading != word.Word {
		if heading == "" {
			heading = word.Reading
		} else {
			heading += " (" + word.Reading + ")"
		}
	}
	var tags []string
	if word.IsCommon {
		tags = append(tags, "common")
	}
	tags = append(tags, word.JLPT...)
	if len(tags) > 0 {
		heading += "  [" + strings.Join(tags, ", ") + "]"
	}
	return heading
}

func formatKanjiDetail(d model.KanjiDetail) []string {
	lines := []string{fmt.Sprintf("  %s  %s", d.Kanji, joinOrDash(d.Meanings))}
	lines = append(lines,
		"    kun: "+joinOrDash(d.KunReadings),
		"    on:  "+joinOrDash(d.OnReadings),
	)
	var facts []string
	if d.StrokeCount > 0 {
		facts = append(facts, fmt.Sprintf("strokes %d", d.StrokeCount))
	}
	if d.JLPT != nil {
		facts = append(facts, fmt.Sprintf("JLPT N%d", *d.JLPT))
	}
	if d.Grade != nil {
		facts = append(facts, fmt.Sprintf("grade %d", *d.Grade))
	}
	if len(facts) > 0 {
		lines = append(lines, "    "+strings.Join(facts, ", "))
	}
	return lines
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func newStudyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Browse the hiragana and katakana chart",
		Args:  cobra.NoArgs,
		RunE:  runStudyCmd,
	}
}

func runStudyCmd(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return printChart(cmd.OutOrStdout(), defaultTermWidth)
	}
	program := tea.NewProgram(tui.NewStudyModel(), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run study TUI: %w", err)
	}
	return nil
}

// printChart lays the kana chart out in as many columns as fit in width.
func printChart(w io.Writer, width int) error {
	const cellWidth = 14
	cols := max(1, width/cellWidth)
	var group kana.Group
	var row []string
	flush := func() error {
		if len(row) == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(row, ""), " "))
		row = row[:0]
		return err
	}
	for _, p := range kana.Chart() {
		if p.Group != group {
			if err := flush(); err != nil {
				return err
			}
			if group != "" {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			group = p.Group
		}
		cell := fmt.Sprintf("%s %s %s", p.Hiragana, p.Katakana, p.Romaji)
		row = append(row, runewidth.FillRight(cell, cellWidth))
		if len(row) == cols {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text report instead of the dashboard")
	cmd.Flags().IntVar(&statsLast, "last", defaultStatsLast, "rows per table in the plain report")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window for the accuracy trend")
	cmd.Flags().IntVar(&statsRefreshSeconds, "refresh", defaultRefreshSeconds, "dashboard poll interval in seconds")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "last", &statsLast, fileCfg.Stats.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)
	applyIntConfig(cmd, "refresh", &statsRefreshSeconds, fileCfg.Stats.RefreshSeconds)
	if err := validateStatsConfig(statsLast, statsCurveWindow, statsRefreshSeconds); err != nil {
		return err
	}

	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if statsPlain || !isTerminal(os.Stdout) {
		rec := a.store.Load(contextOf(cmd))
		return stats.RenderReport(cmd.OutOrStdout(), rec, statsLast, statsCurveWindow)
	}

	m := statsui.NewModel(a.store, statsui.Config{
		CurveWindow: statsCurveWindow,
		Refresh:     time.Duration(statsRefreshSeconds) * time.Second,
	}, a.log)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write statistics as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExportCmd,
	}
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		return a.store.Export(contextOf(cmd), cmd.OutOrStdout())
	}
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := a.store.Export(contextOf(cmd), f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	logErrf("Wrote %s\n", args[0])
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace statistics with a previously exported file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.store.Import(contextOf(cmd), f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d quizzes and %d items\n", rec.TotalQuizzes, len(rec.ItemStats))
	return err
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all statistics",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Delete all statistics? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return err
		}
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.Reset(contextOf(cmd)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "Statistics reset.")
	return err
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, err
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
