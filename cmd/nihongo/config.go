package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/nihongo/internal/config"
	"github.com/verte-zerg/nihongo/internal/kana"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# nihongo configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# kana-set = %q           # hiragana, katakana or all
# lives = %d                  # Misses allowed in the kana game
# mode = %q           # Kanji quiz: typing or multiple-choice
# question-type = %q   # meaning or reading
# difficulty = %q        # easy, medium, hard or all
# timer = %q             # none, per-question or total
# question-seconds = %d      # Seconds per question with the per-question timer
# focus-weak = false         # Bias questions toward weak items
# weak-top = %d               # Number of weak items to focus on
# weak-factor = %.1f          # Extra weight for weak items
# kanji-list = ""            # Custom kanji list file, one per line

[stats]
# last = %d                  # Rows per table in the plain report
# curve-window = %d           # Moving average window for the accuracy trend
# refresh-seconds = %d        # Dashboard poll interval

[notify]
# redis-url = "redis://localhost:6379/0"  # Share live updates between terminals (%s wins)

[log]
# path = %q
# debug = false
`,
		defaultKanaSet,
		quiz.DefaultLives,
		defaultMode,
		defaultQuestionType,
		defaultDifficulty,
		defaultTimer,
		quiz.DefaultQuestionSeconds,
		defaultWeakTop,
		quiz.DefaultWeakFactor,
		defaultStatsLast,
		defaultCurveWindow,
		defaultRefreshSeconds,
		config.RedisURLEnv,
		config.DefaultLogPath(),
	)
}

func validateWeak(cfg model.QuizConfig) error {
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	return nil
}

func validateKanaConfig(cfg model.QuizConfig) error {
	if _, err := kana.Set(cfg.KanaSet); err != nil {
		return fmt.Errorf("--set: %w", err)
	}
	if cfg.Lives <= 0 {
		return fmt.Errorf("--lives must be > 0")
	}
	return validateWeak(cfg)
}

func validateKanjiConfig(cfg model.QuizConfig) error {
	switch cfg.Mode {
	case model.ModeTyping, model.ModeMultipleChoice:
	default:
		return fmt.Errorf("--mode must be %s or %s", model.ModeTyping, model.ModeMultipleChoice)
	}
	switch cfg.QuestionType {
	case model.QuestionMeaning, model.QuestionReading:
	default:
		return fmt.Errorf("--question-type must be %s or %s", model.QuestionMeaning, model.QuestionReading)
	}
	switch cfg.TimerMode {
	case model.TimerNone, model.TimerPerQuestion, model.TimerTotal:
	default:
		return fmt.Errorf("--timer must be %s, %s or %s", model.TimerNone, model.TimerPerQuestion, model.TimerTotal)
	}
	if cfg.QuestionSeconds <= 0 {
		return fmt.Errorf("--seconds must be > 0")
	}
	if cfg.KanjiListPath == "" {
		if _, err := kana.Kanji(cfg.Difficulty); err != nil {
			return fmt.Errorf("--difficulty: %w", err)
		}
	}
	return validateWeak(cfg)
}

func validateStatsConfig(last, curveWindow, refreshSeconds int) error {
	if last <= 0 {
		return fmt.Errorf("--last must be > 0")
	}
	if curveWindow <= 0 {
		return fmt.Errorf("--curve-window must be > 0")
	}
	if refreshSeconds <= 0 {
		return fmt.Errorf("--refresh must be > 0")
	}
	return nil
}
