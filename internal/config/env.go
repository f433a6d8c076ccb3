package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// RedisURLEnv overrides notify.redis-url when set.
const RedisURLEnv = "NIHONGO_REDIS_URL"

// LoadEnv loads variables from an optional .env file. Variables already set
// in the environment win. A missing file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat env file: %w", err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// RedisURL returns the relay URL from the environment or the config file;
// empty means the relay is disabled.
func RedisURL(cfg FileConfig) string {
	if v := strings.TrimSpace(os.Getenv(RedisURLEnv)); v != "" {
		return v
	}
	if cfg.Notify.RedisURL != nil {
		return strings.TrimSpace(*cfg.Notify.RedisURL)
	}
	return ""
}
