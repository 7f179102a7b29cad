package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the summarizer service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"summarizer-api"`
	ServiceVersion  string        `env:"SERVICE_VERSION" envDefault:"1.0.0"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"5000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:3000,http://127.0.0.1"`

	// Model runtime
	ModelDir          string        `env:"MODEL_DIR" envDefault:"t5_summarizer/"`
	ModelDevice       string        `env:"MODEL_DEVICE" envDefault:"auto"`
	ModelLoadOnStart  bool          `env:"MODEL_LOAD_ON_START" envDefault:"true"`
	InferenceBaseURL  string        `env:"INFERENCE_BASE_URL" envDefault:"http://localhost:8500"`
	InferenceTimeout  time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"120s"`
	InferenceAPIKey   string        `env:"INFERENCE_API_KEY"`
	InferenceRetries  int           `env:"INFERENCE_RETRIES" envDefault:"2"`
	MaxConcurrentJobs int           `env:"MAX_CONCURRENT_GENERATIONS" envDefault:"4"`

	// Generation
	DefaultMaxLength   int     `env:"SUMMARY_DEFAULT_MAX_LENGTH" envDefault:"130"`
	DefaultNumBeams    int     `env:"SUMMARY_DEFAULT_NUM_BEAMS" envDefault:"4"`
	InputPrefix        string  `env:"SUMMARY_INPUT_PREFIX" envDefault:"summarize: "`
	InputMaxTokens     int     `env:"SUMMARY_INPUT_MAX_TOKENS" envDefault:"512"`
	NoRepeatNgramSize  int     `env:"GENERATION_NO_REPEAT_NGRAM_SIZE" envDefault:"2"`
	RepetitionPenalty  float64 `env:"GENERATION_REPETITION_PENALTY" envDefault:"1.3"`
	LengthPenalty      float64 `env:"GENERATION_LENGTH_PENALTY" envDefault:"0.8"`
	EarlyStopping      bool    `env:"GENERATION_EARLY_STOPPING" envDefault:"false"`
	MaxInputCharacters int     `env:"SUMMARY_MAX_INPUT_CHARACTERS" envDefault:"100000"`

	// Result cache
	CacheEnabled  bool          `env:"SUMMARY_CACHE_ENABLED" envDefault:"true"`
	CacheSize     int           `env:"SUMMARY_CACHE_SIZE" envDefault:"512"`
	CacheTTL      time.Duration `env:"SUMMARY_CACHE_TTL" envDefault:"15m"`
	// Shared tier; an empty URL keeps the cache process-local.
	CacheRedisURL string        `env:"SUMMARY_CACHE_REDIS_URL"`
	CacheRedisOp  time.Duration `env:"SUMMARY_CACHE_REDIS_TIMEOUT" envDefault:"500ms"`

	// History storage; an empty DSN keeps history in memory.
	DatabaseURL     string        `env:"DB_POSTGRESQL_WRITE_DSN"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	HistoryCapacity int           `env:"HISTORY_MEMORY_CAPACITY" envDefault:"1000"`

	// Observability
	EnableTracing bool          `env:"ENABLE_TRACING" envDefault:"false"`
	EnableMetrics bool          `env:"ENABLE_OTEL_METRICS" envDefault:"false"`
	OTLPEndpoint  string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	SamplingRate  float64       `env:"OTEL_SAMPLING_RATE" envDefault:"1.0"`
	PIILevel      string        `env:"TELEMETRY_PII_LEVEL" envDefault:"hashed"`
	MetricPeriod  time.Duration `env:"OTEL_METRIC_INTERVAL" envDefault:"15s"`

	// Auth
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE" envDefault:"account"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
//
// Environment variables win over values loaded from .env files, which win over
// the struct tag defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ModelDir) == "" {
		return fmt.Errorf("MODEL_DIR must not be empty")
	}
	if c.MaxConcurrentJobs < 1 {
		return fmt.Errorf("MAX_CONCURRENT_GENERATIONS must be at least 1, got %d", c.MaxConcurrentJobs)
	}
	if c.DefaultMaxLength < 20 || c.DefaultMaxLength > 200 {
		return fmt.Errorf("SUMMARY_DEFAULT_MAX_LENGTH must be within [20, 200], got %d", c.DefaultMaxLength)
	}
	if c.DefaultNumBeams < 1 || c.DefaultNumBeams > 6 {
		return fmt.Errorf("SUMMARY_DEFAULT_NUM_BEAMS must be within [1, 6], got %d", c.DefaultNumBeams)
	}
	if c.InputMaxTokens < 1 {
		return fmt.Errorf("SUMMARY_INPUT_MAX_TOKENS must be positive, got %d", c.InputMaxTokens)
	}
	if c.SamplingRate < 0 || c.SamplingRate > 1 {
		return fmt.Errorf("OTEL_SAMPLING_RATE must be within [0, 1], got %v", c.SamplingRate)
	}
	if c.CacheEnabled && c.CacheSize < 1 {
		return fmt.Errorf("SUMMARY_CACHE_SIZE must be positive when the cache is enabled")
	}

	if c.AuthEnabled {
		if strings.TrimSpace(c.AuthIssuer) == "" {
			return fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(c.AuthJWKSURL) == "" {
			return fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// UseRedisCache reports whether the shared summary cache tier is configured.
func (c *Config) UseRedisCache() bool {
	return c.CacheEnabled && strings.TrimSpace(c.CacheRedisURL) != ""
}

// UsePostgres reports whether summary history is persisted in PostgreSQL.
func (c *Config) UsePostgres() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}
