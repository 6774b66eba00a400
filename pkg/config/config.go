package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	GeminiApiKey  string
	AIProvider    string // "gemini", "ollama" or "auto"
	OllamaBaseURL string
	OllamaModel   string

	// Delay between items when processing an email batch. Keeps the
	// external AI backend from being hammered with back-to-back calls.
	ProcessDelay time.Duration

	MockInboxPath string

	// IMAP import is optional; an empty address disables the endpoint.
	IMAPAddress    string
	IMAPUsername   string
	IMAPPassword   string
	IMAPMailbox    string
	IMAPFetchLimit int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	processDelay := 500 * time.Millisecond
	if d := os.Getenv("PROCESS_DELAY"); d != "" {
		if parsed, err := time.ParseDuration(d); err == nil {
			processDelay = parsed
		}
	}

	fetchLimit := 20
	if v := os.Getenv("IMAP_FETCH_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			fetchLimit = parsed
		}
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=email_agent port=5432 sslmode=disable"),
		GeminiApiKey:   getEnv("GEMINI_API_KEY", ""),
		AIProvider:     getEnv("AI_PROVIDER", "auto"),
		OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", ""),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama3"),
		ProcessDelay:   processDelay,
		MockInboxPath:  getEnv("MOCK_INBOX_PATH", "data/mock_inbox.json"),
		IMAPAddress:    getEnv("IMAP_ADDRESS", ""),
		IMAPUsername:   getEnv("IMAP_USERNAME", ""),
		IMAPPassword:   getEnv("IMAP_PASSWORD", ""),
		IMAPMailbox:    getEnv("IMAP_MAILBOX", "INBOX"),
		IMAPFetchLimit: fetchLimit,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
