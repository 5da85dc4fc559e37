// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"content_plan_bot/internal/dates"
)

// Config holds the application configuration.
type Config struct {
	TelegramBotToken string
	SheetURL         string
	ChatID           int64
	MessageThreadID  int
	DatabasePath     string
	LogLevel         string
	AllowedUsers     []int64
	Timezone         string
	RemindAt         string
	MetricsAddr      string
	Plan             Plan
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	sheetURL := os.Getenv("SHEET_URL")
	if sheetURL == "" {
		return nil, fmt.Errorf("SHEET_URL is required")
	}

	rawChat := strings.TrimSpace(os.Getenv("CHAT_ID"))
	if rawChat == "" {
		return nil, fmt.Errorf("CHAT_ID is required")
	}
	chatID, err := strconv.ParseInt(rawChat, 10, 64)
	if err != nil || chatID == 0 {
		return nil, fmt.Errorf("invalid CHAT_ID %q", rawChat)
	}

	var threadID int
	if raw := strings.TrimSpace(os.Getenv("MESSAGE_THREAD_ID")); raw != "" {
		threadID, err = strconv.Atoi(raw)
		if err != nil || threadID < 0 {
			return nil, fmt.Errorf("invalid MESSAGE_THREAD_ID %q", raw)
		}
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var allowedUsers []int64
	if raw := os.Getenv("ALLOWED_USERS"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			uid, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID %q in ALLOWED_USERS: %w", s, err)
			}
			allowedUsers = append(allowedUsers, uid)
		}
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Europe/Kyiv"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	remindAt := os.Getenv("REMIND_AT")
	if remindAt == "" {
		remindAt = "09:00"
	}
	if dates.TimeToMinutes(remindAt) == dates.NoTime {
		return nil, fmt.Errorf("invalid REMIND_AT %q, use HH:MM", remindAt)
	}

	plan := DefaultPlan()
	if path := os.Getenv("PLAN_CONFIG"); path != "" {
		plan, err = LoadPlan(path)
		if err != nil {
			return nil, err
		}
	}

	return &Config{
		TelegramBotToken: token,
		SheetURL:         sheetURL,
		ChatID:           chatID,
		MessageThreadID:  threadID,
		DatabasePath:     dbPath,
		LogLevel:         logLevel,
		AllowedUsers:     allowedUsers,
		Timezone:         tz,
		RemindAt:         remindAt,
		MetricsAddr:      os.Getenv("METRICS_ADDR"),
		Plan:             plan,
	}, nil
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RemindAtMinutes returns REMIND_AT as minutes since midnight.
func (c *Config) RemindAtMinutes() int {
	return dates.TimeToMinutes(c.RemindAt)
}

// IsUserAllowed checks whether a user ID is in the allow list.
// Returns true if the allow list is empty (all users permitted).
func (c *Config) IsUserAllowed(userID int64) bool {
	if len(c.AllowedUsers) == 0 {
		return true
	}
	for _, id := range c.AllowedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
