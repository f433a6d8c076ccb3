package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/nihongo/internal/config"
	"github.com/verte-zerg/nihongo/internal/dictionary"
	"github.com/verte-zerg/nihongo/internal/model"
)

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Quiz.KanaSet != nil || cfg.Notify.RedisURL != nil {
		t.Fatalf("expected commented template to leave values unset, got %+v", cfg)
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	var set string
	var lives int
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&set, "set", "all", "")
	cmd.Flags().IntVar(&lives, "lives", 5, "")
	if err := cmd.Flags().Parse([]string{"--lives", "3"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	fileSet, fileLives := "hiragana", 9
	applyStringConfig(cmd, "set", &set, &fileSet)
	applyIntConfig(cmd, "lives", &lives, &fileLives)
	if set != "hiragana" {
		t.Fatalf("expected config to fill unset flag, got %q", set)
	}
	if lives != 3 {
		t.Fatalf("expected explicit flag to win, got %d", lives)
	}
	applyStringConfig(cmd, "set", &set, nil)
	if set != "hiragana" {
		t.Fatalf("nil config value must not change target, got %q", set)
	}
}

func TestValidateKanjiConfig(t *testing.T) {
	valid := model.QuizConfig{
		Mode:            model.ModeMultipleChoice,
		QuestionType:    model.QuestionReading,
		Difficulty:      "hard",
		TimerMode:       model.TimerPerQuestion,
		QuestionSeconds: 30,
	}
	if err := validateKanjiConfig(valid); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	cases := map[string]func(*model.QuizConfig){
		"mode":       func(c *model.QuizConfig) { c.Mode = "quiz" },
		"type":       func(c *model.QuizConfig) { c.QuestionType = "stroke" },
		"timer":      func(c *model.QuizConfig) { c.TimerMode = "slow" },
		"seconds":    func(c *model.QuizConfig) { c.QuestionSeconds = 0 },
		"difficulty": func(c *model.QuizConfig) { c.Difficulty = "extreme" },
		"factor":     func(c *model.QuizConfig) { c.WeakFactor = -1 },
	}
	for name, mutate := range cases {
		cfg := valid
		mutate(&cfg)
		if err := validateKanjiConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestValidateKanaConfig(t *testing.T) {
	if err := validateKanaConfig(model.QuizConfig{KanaSet: "katakana", Lives: 5}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validateKanaConfig(model.QuizConfig{KanaSet: "romaji", Lives: 5}); err == nil {
		t.Fatalf("expected error for unknown set")
	}
	if err := validateKanaConfig(model.QuizConfig{KanaSet: "all"}); err == nil {
		t.Fatalf("expected error for zero lives")
	}
}

func TestResolveKanjiList(t *testing.T) {
	list, err := resolveKanjiList(model.QuizConfig{Difficulty: "easy"}, "水")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(list) != 1 || list[0] != "水" {
		t.Fatalf("unexpected list: %v", list)
	}
	if _, err := resolveKanjiList(model.QuizConfig{Difficulty: "easy"}, "猫"); err == nil {
		t.Fatalf("expected error when nothing matches")
	}

	path := filepath.Join(t.TempDir(), "list.txt")
	if err := os.WriteFile(path, []byte("# mine\n猫\nねこ\n犬\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	list, err = resolveKanjiList(model.QuizConfig{KanjiListPath: path}, "")
	if err != nil {
		t.Fatalf("resolve custom list: %v", err)
	}
	if strings.Join(list, "") != "猫犬" {
		t.Fatalf("unexpected custom list: %v", list)
	}
}

func TestPrintLookup(t *testing.T) {
	jlpt := 5
	res := dictionary.Result{
		Words: []model.WordResult{{
			Word:     "水",
			Reading:  "みず",
			IsCommon: true,
			JLPT:     []string{"jlpt-n5"},
			Senses:   []model.WordSense{{English: []string{"water", "fluid"}, PartsOfSpeech: []string{"Noun"}}},
		}},
		Kanji: []model.KanjiDetail{{Kanji: "水", Meanings: []string{"water"}, KunReadings: []string{"みず"}, OnReadings: []string{"スイ"}, StrokeCount: 4, JLPT: &jlpt}},
	}
	var buf bytes.Buffer
	if err := printLookup(&buf, res); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"水 (みず)  [common, jlpt-n5]", "1. water; fluid (Noun)", "kun: みず", "on:  スイ", "strokes 4, JLPT N5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("lookup output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintLookupFallbackTitle(t *testing.T) {
	var buf bytes.Buffer
	res := dictionary.Result{Kanji: []model.KanjiDetail{{Kanji: "猫", Meanings: []string{"cat"}}}, Fallback: true}
	if err := printLookup(&buf, res); err != nil {
		t.Fatalf("print: %v", err)
	}
	if !strings.Contains(buf.String(), "offline suggestions") || !strings.Contains(buf.String(), "kun: -") {
		t.Fatalf("unexpected fallback output:\n%s", buf.String())
	}
}

func TestPrintChart(t *testing.T) {
	var buf bytes.Buffer
	if err := printChart(&buf, 80); err != nil {
		t.Fatalf("print chart: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"あ ア a", "が ガ ga", "きゃ キャ kya"} {
		if !strings.Contains(out, want) {
			t.Fatalf("chart missing %q:\n%s", want, out)
		}
	}
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	ok, err := confirm(strings.NewReader("Yes\n"), &out, "sure? ")
	if err != nil || !ok {
		t.Fatalf("expected confirmation, got ok=%v err=%v", ok, err)
	}
	if out.String() != "sure? " {
		t.Fatalf("unexpected prompt: %q", out.String())
	}
	ok, err = confirm(strings.NewReader(""), &out, "sure? ")
	if err != nil || ok {
		t.Fatalf("expected refusal on empty input, got ok=%v err=%v", ok, err)
	}
}
