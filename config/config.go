package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ArticleSourceMock      = "mock"
	ArticleSourceWikipedia = "wikipedia"

	GeneratorTemplate  = "template"
	GeneratorOpenAI    = "openai"
	GeneratorAnthropic = "anthropic"
)

type Config struct {
	Port              string
	Env               string
	DatabaseURL       string
	RedisURL          string
	ArticleSource     string
	QuestionGenerator string
	OpenAIAPIKey      string
	OpenAIModel       string
	AnthropicAPIKey   string
	GenerationDelay   time.Duration
	GenerationTimeout time.Duration
	SessionTTL        time.Duration
	CacheTTL          time.Duration
}

// Load reads an optional .env file and then the process environment.
// Malformed durations fall back to their defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("APP_ENV", "development"),
		DatabaseURL:       os.Getenv("DB_URL"),
		RedisURL:          os.Getenv("REDIS_URL"),
		ArticleSource:     strings.ToLower(getEnv("ARTICLE_SOURCE", ArticleSourceMock)),
		QuestionGenerator: strings.ToLower(getEnv("QUESTION_GENERATOR", GeneratorTemplate)),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		GenerationDelay:   getDuration("GENERATION_DELAY", 2*time.Second),
		GenerationTimeout: getDuration("GENERATION_TIMEOUT", 30*time.Second),
		SessionTTL:        getDuration("SESSION_TTL", 30*time.Minute),
		CacheTTL:          getDuration("CACHE_TTL", 24*time.Hour),
	}
}

func (c *Config) Validate() error {
	var errs []error

	switch c.ArticleSource {
	case ArticleSourceMock, ArticleSourceWikipedia:
	default:
		errs = append(errs, fmt.Errorf("unknown ARTICLE_SOURCE %q", c.ArticleSource))
	}

	switch c.QuestionGenerator {
	case GeneratorTemplate:
	case GeneratorOpenAI:
		if c.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY environment variable is required for the openai generator"))
		}
	case GeneratorAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY environment variable is required for the anthropic generator"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown QUESTION_GENERATOR %q", c.QuestionGenerator))
	}

	if c.GenerationTimeout <= 0 {
		errs = append(errs, errors.New("GENERATION_TIMEOUT must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
