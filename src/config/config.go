package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port        string `env:"PORT,default=8080"`
	StagePrefix string `env:"STAGE_PREFIX"`

	Store              string `env:"STORE,default=postgres"`
	DatabaseURL        string `env:"DATABASE_URL"`
	DBReuseConnections bool   `env:"DB_REUSE_CONNECTIONS,default=false"`
	DBMigrateOnStart   bool   `env:"DB_MIGRATE_ON_START,default=false"`

	AuthJWKSURL      string        `env:"AUTH_JWKS_URL"`
	AuthIssuer       string        `env:"AUTH_ISSUER"`
	AuthAudience     string        `env:"AUTH_AUDIENCE"`
	AuthHMACSecret   string        `env:"AUTH_HMAC_SECRET"`
	AuthJWKSCacheTTL time.Duration `env:"AUTH_JWKS_CACHE_TTL,default=1h"`

	LLMProvider   string `env:"LLM_PROVIDER,default=gemini"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL,default=gemini-1.5-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL,default=https://generativelanguage.googleapis.com"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL,default=gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`

	SoftFailListSpending bool `env:"SOFT_FAIL_LIST_SPENDING,default=true"`
	SoftFailSaveGoal     bool `env:"SOFT_FAIL_SAVE_GOAL,default=true"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=5"`
	ReadOnly       bool    `env:"READ_ONLY,default=false"`

	LogLevel       string `env:"LOG_LEVEL,default=info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT,default=false"`
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	cfg.StagePrefix = strings.Trim(cfg.StagePrefix, "/")
	cfg.LLMProvider = strings.ToLower(cfg.LLMProvider)
	cfg.Store = strings.ToLower(cfg.Store)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}

	if c.AuthJWKSURL == "" && c.AuthHMACSecret == "" {
		return errors.New("one of AUTH_JWKS_URL or AUTH_HMAC_SECRET is required")
	}

	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.RateLimitRPS < 0 {
		return errors.New("RATE_LIMIT_RPS must not be negative")
	}
	return nil
}
