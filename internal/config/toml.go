// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Quiz   QuizConfig   `toml:"quiz"`
	Stats  StatsConfig  `toml:"stats"`
	Notify NotifyConfig `toml:"notify"`
	Log    LogConfig    `toml:"log"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	KanaSet         *string  `toml:"kana-set"`
	Lives           *int     `toml:"lives"`
	Mode            *string  `toml:"mode"`
	QuestionType    *string  `toml:"question-type"`
	Difficulty      *string  `toml:"difficulty"`
	Timer           *string  `toml:"timer"`
	QuestionSeconds *int     `toml:"question-seconds"`
	FocusWeak       *bool    `toml:"focus-weak"`
	WeakTop         *int     `toml:"weak-top"`
	WeakFactor      *float64 `toml:"weak-factor"`
	KanjiList       *string  `toml:"kanji-list"`
}

// StatsConfig maps dashboard settings.
type StatsConfig struct {
	Last           *int `toml:"last"`
	CurveWindow    *int `toml:"curve-window"`
	RefreshSeconds *int `toml:"refresh-seconds"`
}

// NotifyConfig maps the cross-process relay settings.
type NotifyConfig struct {
	RedisURL *string `toml:"redis-url"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Path  *string `toml:"path"`
	Debug *bool   `toml:"debug"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
