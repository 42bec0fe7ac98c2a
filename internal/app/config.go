package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	IdentityProviderLocal  = "local"
	IdentityProviderHosted = "hosted"

	ScorerProviderOpenAI = "openai"
	ScorerProviderGemini = "gemini"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	DB DBConfig

	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"interviewlab:session"`

	IdentityProvider string        `env:"IDENTITY_PROVIDER" envDefault:"local"`
	IdentityURL      string        `env:"IDENTITY_URL"`
	IdentityAPIKey   string        `env:"IDENTITY_API_KEY"`
	IdentityTimeout  time.Duration `env:"IDENTITY_TIMEOUT" envDefault:"15s"`
	JWTSecretKey     string        `env:"JWT_SECRET_KEY"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`
	SessionSweep     time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"10m"`

	ScorerProvider string `env:"SCORER_PROVIDER" envDefault:"openai"`
	RubricPath     string `env:"RUBRIC_YAML"`
	OpenAI         OpenAIConfig
	Gemini         GeminiConfig

	WebhookSecret    string        `env:"WEBHOOK_SECRET"`
	WebhookTolerance time.Duration `env:"WEBHOOK_TOLERANCE" envDefault:"30m"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	Otel           OtelConfig
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"true"`
	DBStatsEvery   time.Duration `env:"METRICS_DB_STATS_INTERVAL" envDefault:"15s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type DBConfig struct {
	Driver          string        `env:"DB_DRIVER" envDefault:"postgres"`
	DSN             string        `env:"DATABASE_DSN"`
	Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port            string        `env:"POSTGRES_PORT" envDefault:"5432"`
	User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
	Password        string        `env:"POSTGRES_PASSWORD"`
	Name            string        `env:"POSTGRES_NAME" envDefault:"interviewlab"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
}

type OpenAIConfig struct {
	APIKey     string        `env:"OPENAI_API_KEY"`
	BaseURL    string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model      string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Timeout    time.Duration `env:"OPENAI_TIMEOUT" envDefault:"60s"`
	MaxRetries int           `env:"OPENAI_MAX_RETRIES" envDefault:"0"`
}

type GeminiConfig struct {
	ProjectID       string `env:"GEMINI_PROJECT_ID"`
	Location        string `env:"GEMINI_LOCATION" envDefault:"us-central1"`
	Model           string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	CredentialsFile string `env:"GEMINI_CREDENTIALS_FILE"`
}

type OtelConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"interviewlab-backend"`
	Environment string  `env:"OTEL_ENVIRONMENT" envDefault:"development"`
	Version     string  `env:"OTEL_SERVICE_VERSION"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Headers     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(log *logger.Logger) (Config, error) {
	if err := godotenv.Load(); err != nil && log != nil {
		log.Debug("No .env file loaded", "error", err)
	}
	return parseConfig()
}

func parseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.IdentityProvider = strings.ToLower(strings.TrimSpace(cfg.IdentityProvider))
	cfg.ScorerProvider = strings.ToLower(strings.TrimSpace(cfg.ScorerProvider))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.IdentityProvider {
	case IdentityProviderLocal:
		if strings.TrimSpace(c.JWTSecretKey) == "" {
			return fmt.Errorf("JWT_SECRET_KEY is required when IDENTITY_PROVIDER=local")
		}
	case IdentityProviderHosted:
		if strings.TrimSpace(c.IdentityURL) == "" || strings.TrimSpace(c.IdentityAPIKey) == "" {
			return fmt.Errorf("IDENTITY_URL and IDENTITY_API_KEY are required when IDENTITY_PROVIDER=hosted")
		}
	default:
		return fmt.Errorf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider)
	}
	switch c.ScorerProvider {
	case ScorerProviderOpenAI:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when SCORER_PROVIDER=openai")
		}
	case ScorerProviderGemini:
		if strings.TrimSpace(c.Gemini.ProjectID) == "" {
			return fmt.Errorf("GEMINI_PROJECT_ID is required when SCORER_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown SCORER_PROVIDER %q", c.ScorerProvider)
	}
	return nil
}

func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}
