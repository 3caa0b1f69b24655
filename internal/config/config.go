// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for optional settings.
const (
	DefaultPollInterval = 10 * time.Minute
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultLogLevel     = "debug"
)

// Required environment variables.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// Config holds the application configuration.
type Config struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64

	// Endpoint overrides the API endpoint when non-empty.
	Endpoint     string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	LogLevel     string
	LogFile      string
}

// MissingEnvError lists every required variable that is absent or empty.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Names, ", ")
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	practicumToken := env(EnvPracticumToken)
	telegramToken := env(EnvTelegramToken)
	rawChatID := env(EnvTelegramChatID)

	var missing []string
	if practicumToken == "" {
		missing = append(missing, EnvPracticumToken)
	}
	if telegramToken == "" {
		missing = append(missing, EnvTelegramToken)
	}
	if rawChatID == "" {
		missing = append(missing, EnvTelegramChatID)
	}
	if len(missing) > 0 {
		return nil, &MissingEnvError{Names: missing}
	}

	chatID, err := strconv.ParseInt(rawChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvTelegramChatID, rawChatID, err)
	}

	pollInterval, err := durationOrDefault("POLL_INTERVAL", DefaultPollInterval)
	if err != nil {
		return nil, err
	}
	httpTimeout, err := durationOrDefault("HTTP_TIMEOUT", DefaultHTTPTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		PracticumToken: practicumToken,
		TelegramToken:  telegramToken,
		TelegramChatID: chatID,
		Endpoint:       env("PRACTICUM_ENDPOINT"),
		PollInterval:   pollInterval,
		HTTPTimeout:    httpTimeout,
		LogLevel:       envOrDefault("LOG_LEVEL", DefaultLogLevel),
		LogFile:        env("LOG_FILE"),
	}, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, def string) string {
	if v := env(key); v != "" {
		return v
	}
	return def
}

func durationOrDefault(key string, def time.Duration) (time.Duration, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, d)
	}
	return d, nil
}
