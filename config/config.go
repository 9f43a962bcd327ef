package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port int
	Host string
	Env  string // "development" or "production"

	// Data directory
	DataDir string

	// Database
	DatabasePath string

	// Spotify
	SpotifyClientID     string
	SpotifyClientSecret string
	SpotifyRedirectURL  string

	// Tidal
	TidalClientID     string
	TidalClientSecret string

	// Telegram
	TelegramBotToken     string
	TelegramChatID       int64
	TelegramAllowedUsers []int64

	// Sync settings
	PlaylistPrefix string
	TidalFolder    string
	SyncSchedule   string // cron expression
	SyncDisabled   bool

	// RSS
	RSSFeedURL      string
	RSSPollInterval time.Duration

	// Debug settings
	LogLevel     string
	DBLogQueries bool
}

var (
	cfg  *Config
	once sync.Once
)

// Get returns the global configuration (singleton)
func Get() *Config {
	once.Do(func() {
		cfg = load()
	})
	return cfg
}

// load reads configuration from environment variables
func load() *Config {
	dataDir := getEnv("TIDALBOT_DATA_DIR", "./data")

	return &Config{
		// Server
		Port: getEnvInt("PORT", 8800),
		Host: getEnv("HOST", "127.0.0.1"),
		Env:  getEnv("ENV", "development"),

		// Data
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "tidalbot.sqlite"),

		// Spotify
		SpotifyClientID:     getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyClientSecret: getEnv("SPOTIFY_CLIENT_SECRET", ""),
		SpotifyRedirectURL:  getEnv("SPOTIFY_REDIRECT_URL", "http://127.0.0.1:8800/auth/spotify/callback"),

		// Tidal
		TidalClientID:     getEnv("TIDAL_CLIENT_ID", ""),
		TidalClientSecret: getEnv("TIDAL_CLIENT_SECRET", ""),

		// Telegram
		TelegramBotToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:       getEnvInt64("TELEGRAM_CHAT_ID", 0),
		TelegramAllowedUsers: getEnvInt64List("TELEGRAM_ALLOWED_USERS"),

		// Sync
		PlaylistPrefix: getEnv("PLAYLIST_PREFIX", "EUROVISION"),
		TidalFolder:    getEnv("TIDAL_FOLDER", "Eurovision"),
		SyncSchedule:   getEnv("SYNC_SCHEDULE", "0 6 * * *"),
		SyncDisabled:   getEnv("SYNC_DISABLED", "") == "1",

		// RSS
		RSSFeedURL:      getEnv("RSS_FEED_URL", "https://eurovisionworld.com/feed"),
		RSSPollInterval: getEnvDuration("RSS_POLL_INTERVAL", 30*time.Minute),

		// Debug
		LogLevel:     getEnv("LOG_LEVEL", ""),
		DBLogQueries: getEnv("DB_LOG_QUERIES", "") == "1",
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvInt64List parses a comma-separated list of integers
func getEnvInt64List(key string) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i, err := strconv.ParseInt(part, 10, 64); err == nil {
			out = append(out, i)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
