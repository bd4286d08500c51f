package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	RedactAPIKey string

	// Claude classification. Empty API key runs pattern-only classification.
	AnthropicAPIKey string
	AnthropicModel  string

	// Text recognition
	OCRLanguages []string

	// Worker pool
	WorkerCount           int
	MaxQueueSize          int
	MaxConcurrentClassify int

	// Upload limits
	MaxUploadBytes int64

	// Classification segmenting
	SegmentChars   int
	SegmentOverlap int

	// Job state
	JobTTL time.Duration

	// Completion callback
	CallbackURL   string
	CallbackToken string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		RedactAPIKey: os.Getenv("REDACT_API_KEY"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		OCRLanguages: envList("OCR_LANGUAGES", []string{"eng"}),

		WorkerCount:           envInt("WORKER_COUNT", 4),
		MaxQueueSize:          envInt("MAX_QUEUE_SIZE", 100),
		MaxConcurrentClassify: envInt("MAX_CONCURRENT_CLASSIFY", 5),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		SegmentChars:   envInt("SEGMENT_CHARS", 1500),
		SegmentOverlap: envInt("SEGMENT_OVERLAP", 200),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		CallbackURL:   os.Getenv("CALLBACK_URL"),
		CallbackToken: os.Getenv("CALLBACK_TOKEN"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxConcurrentClassify <= 0 {
		cfg.MaxConcurrentClassify = 5
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.SegmentChars <= 0 {
		cfg.SegmentChars = 1500
	}
	if cfg.SegmentOverlap < 0 {
		cfg.SegmentOverlap = 200
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.RedactAPIKey == "" {
		return fmt.Errorf("REDACT_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
