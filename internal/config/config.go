// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "marketflow-dev-session-secret-change-me"

type Config struct {
	Environment string
	Server      ServerConfig
	OpenAI      OpenAIConfig
	Session     SessionConfig
	RateLimit   RateLimitConfig
	CORS        CORSConfig
	Static      StaticConfig
	Frontend    FrontendConfig
	I18n        I18nConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	MaxBodyBytes int64
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout int // in seconds, 0 disables the upstream deadline
}

type SessionConfig struct {
	Secret     string
	CookieName string
	IdleTTL    int // in minutes
}

type RateLimitConfig struct {
	ChatPerMinute   int
	ChatBurst       int
	UploadPerMinute int
	UploadBurst     int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type StaticConfig struct {
	DistPath string
}

type FrontendConfig struct {
	BaseURL string
}

type I18nConfig struct {
	DefaultLocale string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			Host:         getEnv("SERVER_HOST", ""),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 90),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			MaxBodyBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Timeout: getEnvAsInt("OPENAI_TIMEOUT", 60),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", defaultSessionSecret),
			CookieName: getEnv("SESSION_COOKIE_NAME", "marketflow_session"),
			IdleTTL:    getEnvAsInt("SESSION_IDLE_TTL", 120),
		},
		RateLimit: RateLimitConfig{
			ChatPerMinute:   getEnvAsInt("CHAT_RATE_PER_MINUTE", 20),
			ChatBurst:       getEnvAsInt("CHAT_RATE_BURST", 5),
			UploadPerMinute: getEnvAsInt("UPLOAD_RATE_PER_MINUTE", 10),
			UploadBurst:     getEnvAsInt("UPLOAD_RATE_BURST", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:3000"}),
		},
		Static: StaticConfig{
			DistPath: getEnv("STATIC_DIST_PATH", "./dist"),
		},
		Frontend: FrontendConfig{
			BaseURL: strings.TrimRight(getEnv("FRONTEND_BASE_URL", "http://localhost:3000"), "/"),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Session.Secret == defaultSessionSecret && c.IsProduction() {
		return fmt.Errorf("session secret must be changed in production")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("listen port must not be empty")
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ChatEnabled reports whether the upstream language-model key is configured.
func (c *Config) ChatEnabled() bool {
	return c.OpenAI.APIKey != ""
}

func (o OpenAIConfig) RequestTimeout() time.Duration {
	return time.Duration(o.Timeout) * time.Second
}

func (s SessionConfig) IdleDuration() time.Duration {
	return time.Duration(s.IdleTTL) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
