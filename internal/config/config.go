package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pbaille/trip/internal/advisor"
)

// Config holds the environment configuration
type Config struct {
	DBPath        string `env:"TRIP_DB_PATH"`
	RedisAddr     string `env:"TRIP_REDIS_ADDR"`
	RedisPassword string `env:"TRIP_REDIS_PASSWORD"`
	RedisPrefix   string `env:"TRIP_REDIS_PREFIX" envDefault:"trip:"`
	Addr          string `env:"TRIP_ADDR" envDefault:":8080"`
	City          string `env:"TRIP_CITY" envDefault:"日本福岡"`
	Title         string `env:"TRIP_TITLE" envDefault:"福岡之旅"`

	TipProvider      string        `env:"TIP_PROVIDER" envDefault:"gemini"`
	TipTimeout       time.Duration `env:"TIP_TIMEOUT" envDefault:"15s"`
	TipRatePerMinute int           `env:"TIP_RATE_PER_MINUTE" envDefault:"30"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
}

// Load reads an optional .env file, then the environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	return cfg, nil
}

// DefaultDBPath is ~/.trip/trip.db
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".trip", "trip.db")
}

// Advisor returns the tip provider settings
func (c Config) Advisor() advisor.ProviderConfig {
	return advisor.ProviderConfig{
		Provider:       c.TipProvider,
		GeminiKey:      c.GeminiAPIKey,
		GeminiModel:    c.GeminiModel,
		AnthropicKey:   c.AnthropicAPIKey,
		AnthropicModel: c.AnthropicModel,
		OpenAIKey:      c.OpenAIAPIKey,
		OpenAIModel:    c.OpenAIModel,
		OpenAIBaseURL:  c.OpenAIBaseURL,
	}
}
