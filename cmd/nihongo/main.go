// Package main provides the CLI entrypoint for nihongo.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/config"
	"github.com/verte-zerg/nihongo/internal/dictionary"
	"github.com/verte-zerg/nihongo/internal/itemlist"
	"github.com/verte-zerg/nihongo/internal/kana"
	"github.com/verte-zerg/nihongo/internal/logger"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/notify"
	"github.com/verte-zerg/nihongo/internal/quiz"
	"github.com/verte-zerg/nihongo/internal/recorder"
	"github.com/verte-zerg/nihongo/internal/store"
	"github.com/verte-zerg/nihongo/internal/tui"
)

const (
	defaultKanaSet      = kana.SetAll
	defaultMode         = model.ModeTyping
	defaultQuestionType = model.QuestionMeaning
	defaultDifficulty   = kana.DifficultyEasy
	defaultTimer        = model.TimerNone
	defaultWeakTop      = 8
	defaultPrefetch     = 5
)

var (
	debugMode bool

	kanaSet        string
	kanaLives      int
	kanaFocusWeak  bool
	kanaWeakTop    int
	kanaWeakFactor float64

	kanjiMode         string
	kanjiQuestionType string
	kanjiDifficulty   string
	kanjiTimer        string
	kanjiSeconds      int
	kanjiReviewWeak   bool
	kanjiListPath     string
	kanjiSearch       string
	kanjiFocusWeak    bool
	kanjiWeakTop      int
	kanjiWeakFactor   float64
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nihongo",
		Short:         "Terminal Japanese trainer (kana, kanji, dictionary, stats)",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runKanaCmd,
	}
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "write debug entries to the log file")
	addKanaFlags(rootCmd)

	rootCmd.AddCommand(newKanaCmd())
	rootCmd.AddCommand(newKanjiCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newStudyCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// app holds what every stats-touching command opens.
type app struct {
	cfg   config.FileConfig
	log   *zap.Logger
	store *store.Store
	relay *notify.Relay

	stopRelay context.CancelFunc
	relayDone chan struct{}
}

func loadFileConfig() (config.FileConfig, error) {
	if err := config.LoadEnv(config.DefaultEnvPath()); err != nil {
		return config.FileConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func openApp(cmd *cobra.Command, fileCfg config.FileConfig) (*app, error) {
	applyBoolConfig(cmd, "debug", &debugMode, fileCfg.Log.Debug)
	logPath := config.DefaultLogPath()
	if fileCfg.Log.Path != nil && *fileCfg.Log.Path != "" {
		logPath = *fileCfg.Log.Path
	}
	log, err := logger.New(logPath, debugMode)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		log = zap.NewNop()
	}

	st, err := store.Open(config.DefaultDBPath(), log)
	if err != nil {
		_ = logger.Sync(log)
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	a := &app{cfg: fileCfg, log: log, store: st}
	a.startRelay(contextOf(cmd))
	return a, nil
}

// startRelay shares change events with other processes when a Redis URL is
// configured. Failing to connect only disables the relay.
func (a *app) startRelay(parent context.Context) {
	url := config.RedisURL(a.cfg)
	if url == "" {
		return
	}
	relay, err := notify.Dial(parent, url, a.store.Changes(), a.log)
	if err != nil {
		a.log.Warn("change relay disabled", zap.Error(err))
		logErrf("change relay disabled: %v\n", err)
		return
	}
	ctx, cancel := context.WithCancel(parent)
	a.relay = relay
	a.stopRelay = cancel
	a.relayDone = make(chan struct{})
	go func() {
		defer close(a.relayDone)
		if err := relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("change relay stopped", zap.Error(err))
		}
	}()
	a.log.Info("change relay started", zap.String("origin", relay.Origin()))
}

func (a *app) Close() {
	if a.relay != nil {
		a.stopRelay()
		<-a.relayDone
		if err := a.relay.Close(); err != nil {
			a.log.Warn("failed to close relay", zap.Error(err))
		}
	}
	if err := a.store.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
	_ = logger.Sync(a.log)
}

func addKanaFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&kanaSet, "set", defaultKanaSet, "kana set: hiragana, katakana or all")
	cmd.Flags().IntVar(&kanaLives, "lives", quiz.DefaultLives, "misses allowed before game over")
	cmd.Flags().BoolVar(&kanaFocusWeak, "focus-weak", false, "bias questions toward weak kana")
	cmd.Flags().IntVar(&kanaWeakTop, "weak-top", defaultWeakTop, "number of weak items to focus on")
	cmd.Flags().Float64Var(&kanaWeakFactor, "weak-factor", quiz.DefaultWeakFactor, "extra weight for weak items")
}

func newKanaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kana",
		Short: "Kana typing game (default command)",
		Args:  cobra.NoArgs,
		RunE:  runKanaCmd,
	}
	addKanaFlags(cmd)
	return cmd
}

func runKanaCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "set", &kanaSet, fileCfg.Quiz.KanaSet)
	applyIntConfig(cmd, "lives", &kanaLives, fileCfg.Quiz.Lives)
	applyBoolConfig(cmd, "focus-weak", &kanaFocusWeak, fileCfg.Quiz.FocusWeak)
	applyIntConfig(cmd, "weak-top", &kanaWeakTop, fileCfg.Quiz.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &kanaWeakFactor, fileCfg.Quiz.WeakFactor)

	cfg := model.QuizConfig{
		KanaSet:    kanaSet,
		Lives:      kanaLives,
		FocusWeak:  kanaFocusWeak,
		WeakTop:    kanaWeakTop,
		WeakFactor: kanaWeakFactor,
	}
	if err := validateKanaConfig(cfg); err != nil {
		return err
	}

	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	rec := recorder.New(a.store, a.log)
	picker := newWeakPicker(contextOf(cmd), rec, cfg)
	game, err := quiz.NewKanaGame(cfg.KanaSet, cfg.Lives, picker)
	if err != nil {
		return err
	}

	m := tui.NewKanaModel(game, rec, a.log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newKanjiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kanji",
		Short: "Kanji quiz (typing or multiple choice)",
		Args:  cobra.NoArgs,
		RunE:  runKanjiCmd,
	}
	cmd.Flags().StringVar(&kanjiMode, "mode", defaultMode, "typing or multiple-choice")
	cmd.Flags().StringVar(&kanjiQuestionType, "question-type", defaultQuestionType, "meaning or reading")
	cmd.Flags().StringVar(&kanjiDifficulty, "difficulty", defaultDifficulty, "easy, medium, hard or all")
	cmd.Flags().StringVar(&kanjiTimer, "timer", defaultTimer, "none, per-question or total")
	cmd.Flags().IntVar(&kanjiSeconds, "seconds", quiz.DefaultQuestionSeconds, "seconds per question with --timer per-question")
	cmd.Flags().BoolVar(&kanjiReviewWeak, "review-weak", false, "draw questions from your weakest items")
	cmd.Flags().StringVar(&kanjiListPath, "kanji-list", "", "custom kanji list file (one per line)")
	cmd.Flags().StringVar(&kanjiSearch, "search", "", "only quiz kanji matching this text")
	cmd.Flags().BoolVar(&kanjiFocusWeak, "focus-weak", false, "bias questions toward weak kanji")
	cmd.Flags().IntVar(&kanjiWeakTop, "weak-top", defaultWeakTop, "number of weak items to focus on")
	cmd.Flags().Float64Var(&kanjiWeakFactor, "weak-factor", quiz.DefaultWeakFactor, "extra weight for weak items")
	return cmd
}

func runKanjiCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &kanjiMode, fileCfg.Quiz.Mode)
	applyStringConfig(cmd, "question-type", &kanjiQuestionType, fileCfg.Quiz.QuestionType)
	applyStringConfig(cmd, "difficulty", &kanjiDifficulty, fileCfg.Quiz.Difficulty)
	applyStringConfig(cmd, "timer", &kanjiTimer, fileCfg.Quiz.Timer)
	applyIntConfig(cmd, "seconds", &kanjiSeconds, fileCfg.Quiz.QuestionSeconds)
	applyStringConfig(cmd, "kanji-list", &kanjiListPath, fileCfg.Quiz.KanjiList)
	applyBoolConfig(cmd, "focus-weak", &kanjiFocusWeak, fileCfg.Quiz.FocusWeak)
	applyIntConfig(cmd, "weak-top", &kanjiWeakTop, fileCfg.Quiz.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &kanjiWeakFactor, fileCfg.Quiz.WeakFactor)

	cfg := model.QuizConfig{
		Mode:            kanjiMode,
		QuestionType:    kanjiQuestionType,
		Difficulty:      kanjiDifficulty,
		TimerMode:       kanjiTimer,
		QuestionSeconds: kanjiSeconds,
		ReviewWeak:      kanjiReviewWeak,
		KanjiListPath:   kanjiListPath,
		FocusWeak:       kanjiFocusWeak,
		WeakTop:         kanjiWeakTop,
		WeakFactor:      kanjiWeakFactor,
	}
	if err := validateKanjiConfig(cfg); err != nil {
		return err
	}
	list, err := resolveKanjiList(cfg, kanjiSearch)
	if err != nil {
		return err
	}

	a, err := openApp(cmd, fileCfg)
	if err != nil {
		return err
	}
	defer a.Close()

	dict, kanjiClient, err := newDictionary(a.log)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(contextOf(cmd))
	defer cancel()
	go kanjiClient.Prefetch(ctx, list[:min(len(list), defaultPrefetch)])

	rec := recorder.New(a.store, a.log)
	picker := newWeakPicker(ctx, rec, cfg)
	m := tui.NewKanjiModel(cfg, list, dict, rec, picker, a.log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveKanjiList(cfg model.QuizConfig, search string) ([]string, error) {
	var (
		list []string
		err  error
	)
	if cfg.KanjiListPath != "" {
		list, err = itemlist.LoadKanji(cfg.KanjiListPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load kanji list: %w", err)
		}
	} else {
		list, err = kana.Kanji(cfg.Difficulty)
		if err != nil {
			return nil, err
		}
	}
	list = kana.Search(list, search)
	if len(list) == 0 {
		return nil, fmt.Errorf("no kanji match %q", search)
	}
	return list, nil
}

func newDictionary(log *zap.Logger) (*dictionary.Dictionary, *dictionary.KanjiClient, error) {
	opts := dictionary.Options{Logger: log}
	kanjiClient, err := dictionary.NewKanjiClient(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kanji client: %w", err)
	}
	return dictionary.New(kanjiClient, dictionary.NewWordClient(opts), log), kanjiClient, nil
}

func newWeakPicker(ctx context.Context, rec *recorder.Recorder, cfg model.QuizConfig) *quiz.Picker {
	picker := quiz.NewPicker()
	if !cfg.FocusWeak {
		return picker
	}
	weak := rec.WeakItems(ctx, cfg.WeakTop)
	if len(weak) == 0 {
		logErrln("no stats available for weak-item focus yet; using uniform selection")
		return picker
	}
	picker.SetWeak(weak, cfg.WeakFactor)
	return picker
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
