package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	Env         string
	MaxUploadMB int64

	// Security
	EncryptionKey string
	JWTSecret     string
	ShareLinkTTL  time.Duration
	APIKey        string

	// Narrative
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Risk
	RiskThresholdsFile string

	// External verifications
	BankingAPIURL   string
	GSTAPIURL       string
	ExternalAPIKey  string
	ExternalTimeout time.Duration
}

var appConfig *Config

const devJWTSecret = "fallback-secret-key-for-dev-only"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("ENV", "development"),

		EncryptionKey: os.Getenv("ENCRYPTION_KEY"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		APIKey:        os.Getenv("API_KEY"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RiskThresholdsFile: os.Getenv("RISK_THRESHOLDS_FILE"),

		BankingAPIURL:  os.Getenv("BANKING_API_URL"),
		GSTAPIURL:      os.Getenv("GST_API_URL"),
		ExternalAPIKey: os.Getenv("EXTERNAL_API_KEY"),
	}

	if config.EncryptionKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required")
	}
	// Share tokens are the only credential on shared links.
	if config.JWTSecret == "" {
		if config.IsProduction() {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		log.Println("Warning: JWT_SECRET not set, using the development share-link secret")
		config.JWTSecret = devJWTSecret
	}

	config.ShareLinkTTL = getDuration("SHARE_LINK_TTL", 72*time.Hour)
	config.LLMTimeout = getDuration("LLM_TIMEOUT", 30*time.Second)
	config.ExternalTimeout = getDuration("EXTERNAL_TIMEOUT", 10*time.Second)

	mb, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil || mb <= 0 {
		log.Printf("Warning: invalid MAX_UPLOAD_MB value, falling back to 10\n")
		mb = 10
	}
	config.MaxUploadMB = mb

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, defaultValue.String())
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}
