package config

import (
	"os"
	"strings"
)

// Default configuration values
const (
	DefaultPostingFrequency = "daily"
	DefaultPostingTime      = "09:00"
	DefaultContentTone      = "professional"
	DefaultDataDir          = "./scheduled_posts"
	DefaultImagesDir        = "./images_generated"
)

// Config holds all process configuration. It is built once at process entry
// and passed by parameter to component constructors; nothing reads the
// environment after FromEnv returns.
type Config struct {
	// OpenAI API configuration
	OpenAIAPIKey string

	// Instagram API configuration
	InstagramUsername string
	InstagramPassword string

	// RSS feed sources
	RSSFeeds []string

	// Scheduling configuration
	PostingFrequency string // daily, weekly, etc.
	PostingTime      string // HH:MM format

	// Content preferences
	ContentTopics []string
	ContentTone   string // professional, casual, humorous, etc.

	// Local storage directories
	DataDir   string
	ImagesDir string

	// Optional Redis-backed post store (REDIS_ADDR selects it)
	RedisAddr     string
	RedisPassword string

	// Optional S3-backed post store (S3_BUCKET selects it)
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
}

// FromEnv loads configuration from environment variables.
func FromEnv() Config {
	return Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		InstagramUsername: os.Getenv("INSTAGRAM_USERNAME"),
		InstagramPassword: os.Getenv("INSTAGRAM_PASSWORD"),
		RSSFeeds:          splitList(os.Getenv("RSS_FEEDS")),
		PostingFrequency:  getEnvOrDefault("POSTING_FREQUENCY", DefaultPostingFrequency),
		PostingTime:       getEnvOrDefault("POSTING_TIME", DefaultPostingTime),
		ContentTopics:     splitList(getEnvOrDefault("CONTENT_TOPICS", "technology,business")),
		ContentTone:       getEnvOrDefault("CONTENT_TONE", DefaultContentTone),
		DataDir:           getEnvOrDefault("DATA_DIR", DefaultDataDir),
		ImagesDir:         getEnvOrDefault("IMAGES_DIR", DefaultImagesDir),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASS"),
		S3Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:          strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:         strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:          strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3UsePathStyle:    strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
