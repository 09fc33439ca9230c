package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	LogLevel        slog.Level

	// Data acquisition
	CachePath   string // SQLite cache of the scraped dataset
	FlagsDir    string // one PNG per country
	CapitalsURL string // page listing every capital
	WikiBaseURL string // country articles, e.g. "https://sv.wikipedia.org/wiki/"
	HTTPTimeout time.Duration
	FlagWorkers int

	// Presentation timing
	ResultDelay     time.Duration // free-text result view delay
	InputFocusDelay time.Duration // delay before the answer field is re-enabled
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		LogLevel:        getLevelDefault("LOG_LEVEL", slog.LevelInfo),
		CachePath:       getenvDefault("CACHE_PATH", "data.db"),
		FlagsDir:        getenvDefault("FLAGS_DIR", "flags"),
		CapitalsURL:     getenvDefault("CAPITALS_URL", "https://sv.wikipedia.org/wiki/Lista_%C3%B6ver_huvudst%C3%A4der"),
		WikiBaseURL:     getenvDefault("WIKI_BASE_URL", "https://sv.wikipedia.org/wiki/"),
		HTTPTimeout:     getDurationDefault("HTTP_TIMEOUT", 30*time.Second),
		FlagWorkers:     getIntDefault("FLAG_WORKERS", 1),
		ResultDelay:     getDurationDefault("RESULT_DELAY", time.Second),
		InputFocusDelay: getDurationDefault("INPUT_FOCUS_DELAY", 100*time.Millisecond),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Fatalf("config: %s=%q is not a positive integer", k, v)
	}
	return n
}

func getLevelDefault(k string, fallback slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
		log.Fatalf("config: %s=%q is not a valid log level: %v", k, v, err)
	}
	return level
}
