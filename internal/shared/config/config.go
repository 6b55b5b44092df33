package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string

	// Embedding gateway.
	GeminiAPIKey   string
	EmbeddingModel string

	// Decision policy.
	ScoreThreshold float64
	ScoreMargin    float64

	// Interview lifecycle.
	ProposalTTL    time.Duration
	ReaperInterval time.Duration

	// Action executor.
	InterviewDuration time.Duration
	MinNotice         time.Duration
	SearchWindow      time.Duration
	WorkDayStartHour  int
	WorkDayEndHour    int
	SlotRetryMax      int
	BookingRetryMax   int
	NotifyRetryMax    int
	RetryBaseDelay    time.Duration

	// Google Calendar / Gmail.
	GoogleCalendarID string
	GoogleTokenFile  string
	HRNotifyEmail    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-004"),

		ScoreThreshold: getEnvFloat("SCORE_THRESHOLD", 0.75),
		ScoreMargin:    getEnvFloat("SCORE_MARGIN", 0.05),

		ProposalTTL:    getEnvDuration("PROPOSAL_TTL", 72*time.Hour),
		ReaperInterval: getEnvDuration("REAPER_INTERVAL", 10*time.Minute),

		InterviewDuration: getEnvDuration("INTERVIEW_DURATION", 60*time.Minute),
		MinNotice:         getEnvDuration("MIN_NOTICE", 24*time.Hour),
		SearchWindow:      getEnvDuration("SEARCH_WINDOW", 7*24*time.Hour),
		WorkDayStartHour:  getEnvInt("WORK_DAY_START_HOUR", 9),
		WorkDayEndHour:    getEnvInt("WORK_DAY_END_HOUR", 17),
		SlotRetryMax:      getEnvInt("SLOT_RETRY_MAX", 3),
		BookingRetryMax:   getEnvInt("BOOKING_RETRY_MAX", 3),
		NotifyRetryMax:    getEnvInt("NOTIFY_RETRY_MAX", 3),
		RetryBaseDelay:    getEnvDuration("RETRY_BASE_DELAY", 300*time.Millisecond),

		GoogleCalendarID: getEnv("GOOGLE_CALENDAR_ID", "primary"),
		GoogleTokenFile:  getEnv("GOOGLE_TOKEN_FILE", ""),
		HRNotifyEmail:    getEnv("HR_NOTIFY_EMAIL", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid float %q, using default", key, raw)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("config %s invalid duration %q, using default", key, raw)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
