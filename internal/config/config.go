package config

import (
	"errors"
	"log"
	"os"
	"strconv"
)

// Default values
const (
	DefaultCookiesFile    = "cookies.txt"
	DefaultMaxFileSizeMB  = 45
	DefaultMaxConcurrency = 3
)

// Config holds all bot settings in correct types.
type Config struct {
	BotToken string

	// CookiesFile is probed at job time; a missing file just disables
	// authenticated fetches.
	CookiesFile string

	// MaxFileSizeMB is the delivery ceiling. Telegram bot uploads beyond
	// roughly 50 MB are rejected by the platform, so the gate stays under it.
	MaxFileSizeMB int64

	// MaxConcurrentJobs bounds the download worker pool across all chats.
	MaxConcurrentJobs int

	// TempRoot is where per-job scratch directories are created. Empty means
	// the system temp directory.
	TempRoot string
}

// Load reads configuration from the environment. It is the only way the app
// obtains config.
func Load() (*Config, error) {
	cfg := &Config{
		BotToken:          os.Getenv("TELEGRAM_BOT_TOKEN"),
		CookiesFile:       getEnv("COOKIES_FILE", DefaultCookiesFile),
		MaxFileSizeMB:     int64(getEnvAsInt("MAX_FILESIZE_MB", DefaultMaxFileSizeMB)),
		MaxConcurrentJobs: getEnvAsInt("MAX_CONCURRENT_JOBS", DefaultMaxConcurrency),
		TempRoot:          os.Getenv("TEMP_DIR"),
	}

	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}
	validate(cfg)
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if val, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return val
	}
	return fallback
}

// validate clamps values the bot cannot run with rather than failing startup.
func validate(cfg *Config) {
	if cfg.MaxConcurrentJobs < 1 {
		log.Printf("MAX_CONCURRENT_JOBS must be at least 1, resetting to %d", DefaultMaxConcurrency)
		cfg.MaxConcurrentJobs = DefaultMaxConcurrency
	}
	if cfg.MaxFileSizeMB < 1 {
		log.Printf("MAX_FILESIZE_MB must be at least 1, resetting to %d", DefaultMaxFileSizeMB)
		cfg.MaxFileSizeMB = DefaultMaxFileSizeMB
	}
}
