package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP         HTTPConfig        `yaml:"http"`
	Calculator   CalculatorConfig  `yaml:"calculator"`
	Content      ContentConfig     `yaml:"content"`
	Enrichment   EnrichmentConfig  `yaml:"enrichment"`
	LLM          LLMConfig         `yaml:"llm"`
	Gemini       GeminiConfig      `yaml:"gemini"`
	Cache        CacheConfig       `yaml:"cache"`
	ClientErrors ClientErrorConfig `yaml:"clientErrors"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	MaxBodyBytes    int64           `yaml:"maxBodyBytes"`
	StaticDir       string          `yaml:"staticDir"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware. Routes overrides
// RequestsPerMinute for individual paths.
type RateLimitConfig struct {
	Enabled           bool           `yaml:"enabled"`
	RequestsPerMinute int            `yaml:"requestsPerMinute"`
	Burst             int            `yaml:"burst"`
	Routes            map[string]int `yaml:"routes"`
}

// CalculatorConfig tunes the age engine.
type CalculatorConfig struct {
	LifeExpectancy int `yaml:"lifeExpectancy"`
	MaxCompare     int `yaml:"maxCompare"`
}

// ContentConfig locates the quote and fact collections.
type ContentConfig struct {
	DataDir        string              `yaml:"dataDir"`
	ReloadInterval time.Duration       `yaml:"reloadInterval"`
	ObjectStorage  ObjectStorageConfig `yaml:"objectStorage"`
}

// ObjectStorageConfig points at an S3-compatible bucket holding the collections.
type ObjectStorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	QuotesKey string `yaml:"quotesKey"`
	FactsKey  string `yaml:"factsKey"`
}

// EnrichmentConfig controls AI quote generation and its throttle.
type EnrichmentConfig struct {
	Provider             string        `yaml:"provider"`
	AIProbability        float64       `yaml:"aiProbability"`
	MinInterval          time.Duration `yaml:"minInterval"`
	QuotaCooldown        time.Duration `yaml:"quotaCooldown"`
	ErrorCooldown        time.Duration `yaml:"errorCooldown"`
	MaxConsecutiveErrors int           `yaml:"maxConsecutiveErrors"`
	Timeout              time.Duration `yaml:"timeout"`
	CacheTTL             time.Duration `yaml:"cacheTtl"`
	Prompt               string        `yaml:"prompt"`
}

// Providers accepted by enrichment.provider.
const (
	ProviderNone    = "none"
	ProviderChatGPT = "chatgpt"
	ProviderGemini  = "gemini"
)

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string  `yaml:"apiKey"`
	BaseURL     string  `yaml:"baseUrl"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"maxTokens"`
}

// GeminiConfig contains Google Gemini settings.
type GeminiConfig struct {
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// CacheConfig selects the AI quote cache backend.
type CacheConfig struct {
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ClientErrorConfig controls persistence of client error reports.
type ClientErrorConfig struct {
	MemoryCapacity int            `yaml:"memoryCapacity"`
	Postgres       PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// Load reads configuration from a YAML file, an optional .env file and
// environment variables, in that order of precedence (lowest first).
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already present in the environment.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := os.Getenv("PORT"); v != "" && os.Getenv("HTTP_ADDRESS") == "" {
		cfg.HTTP.Address = ":" + v
	}
	setDuration(&cfg.HTTP.ReadTimeout, "HTTP_READ_TIMEOUT")
	setDuration(&cfg.HTTP.WriteTimeout, "HTTP_WRITE_TIMEOUT")
	setInt64(&cfg.HTTP.MaxBodyBytes, "HTTP_MAX_BODY_BYTES")
	setString(&cfg.HTTP.StaticDir, "HTTP_STATIC_DIR")
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	setBool(&cfg.HTTP.RateLimit.Enabled, "HTTP_RATE_LIMIT_ENABLED")
	setInt(&cfg.HTTP.RateLimit.RequestsPerMinute, "HTTP_RATE_LIMIT_RPM")
	setInt(&cfg.HTTP.RateLimit.Burst, "HTTP_RATE_LIMIT_BURST")

	setInt(&cfg.Calculator.LifeExpectancy, "CALCULATOR_LIFE_EXPECTANCY")
	setInt(&cfg.Calculator.MaxCompare, "CALCULATOR_MAX_COMPARE")

	setString(&cfg.Content.DataDir, "CONTENT_DATA_DIR")
	setDuration(&cfg.Content.ReloadInterval, "CONTENT_RELOAD_INTERVAL")
	setBool(&cfg.Content.ObjectStorage.Enabled, "CONTENT_S3_ENABLED")
	setString(&cfg.Content.ObjectStorage.Endpoint, "CONTENT_S3_ENDPOINT")
	setString(&cfg.Content.ObjectStorage.AccessKey, "CONTENT_S3_ACCESS_KEY")
	setString(&cfg.Content.ObjectStorage.SecretKey, "CONTENT_S3_SECRET_KEY")
	setString(&cfg.Content.ObjectStorage.Bucket, "CONTENT_S3_BUCKET")
	setString(&cfg.Content.ObjectStorage.Region, "CONTENT_S3_REGION")

	setString(&cfg.Enrichment.Provider, "ENRICHMENT_PROVIDER")
	setFloat(&cfg.Enrichment.AIProbability, "ENRICHMENT_AI_PROBABILITY")
	setDuration(&cfg.Enrichment.MinInterval, "ENRICHMENT_MIN_INTERVAL")
	setDuration(&cfg.Enrichment.QuotaCooldown, "ENRICHMENT_QUOTA_COOLDOWN")
	setDuration(&cfg.Enrichment.ErrorCooldown, "ENRICHMENT_ERROR_COOLDOWN")
	setInt(&cfg.Enrichment.MaxConsecutiveErrors, "ENRICHMENT_MAX_CONSECUTIVE_ERRORS")
	setDuration(&cfg.Enrichment.Timeout, "ENRICHMENT_TIMEOUT")
	setDuration(&cfg.Enrichment.CacheTTL, "ENRICHMENT_CACHE_TTL")
	setString(&cfg.Enrichment.Prompt, "ENRICHMENT_PROMPT")

	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	setString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "GEMINI_MODEL")

	setBool(&cfg.Cache.Redis.Enabled, "CACHE_REDIS_ENABLED")
	setString(&cfg.Cache.Redis.Addr, "CACHE_REDIS_ADDR")

	setString(&cfg.ClientErrors.Postgres.DSN, "CLIENT_ERRORS_POSTGRES_DSN")
	if v := os.Getenv("CLIENT_ERRORS_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.ClientErrors.Postgres.MaxConns = int32(parsed)
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v == "1" || strings.EqualFold(v, "true")
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*dst = parsed
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = parsed
		}
	}
}

func setFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = parsed
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			*dst = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
			AllowedOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             10,
				Routes: map[string]int{
					"/calculate":         15,
					"/api/quotes/random": 30,
					"/api/quotes/ai":     5,
					"/api/facts/random":  30,
					"/compare":           10,
					"/milestones":        10,
				},
			},
		},
		Calculator: CalculatorConfig{
			LifeExpectancy: 80,
			MaxCompare:     10,
		},
		Content: ContentConfig{
			DataDir:        "data",
			ReloadInterval: 5 * time.Minute,
			ObjectStorage: ObjectStorageConfig{
				QuotesKey: "quotes.json",
				FactsKey:  "fun_facts.json",
			},
		},
		Enrichment: EnrichmentConfig{
			Provider:             ProviderNone,
			AIProbability:        0.3,
			MinInterval:          30 * time.Second,
			QuotaCooldown:        24 * time.Hour,
			ErrorCooldown:        time.Hour,
			MaxConsecutiveErrors: 5,
			Timeout:              8 * time.Second,
			CacheTTL:             6 * time.Hour,
			Prompt:               "Create a short, meaningful quote about time or aging.",
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.8,
			MaxTokens:   100,
		},
		Gemini: GeminiConfig{
			Model:       "gemini-1.5-flash",
			Temperature: 0.8,
		},
		Cache: CacheConfig{
			Redis: RedisConfig{Prefix: "agemaster"},
		},
		ClientErrors: ClientErrorConfig{
			MemoryCapacity: 1000,
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return errors.New("http.maxBodyBytes must be positive")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
		for route, rpm := range c.HTTP.RateLimit.Routes {
			if rpm <= 0 {
				return fmt.Errorf("http.rateLimit.routes[%s] must be positive", route)
			}
		}
	}
	if c.Calculator.LifeExpectancy <= 0 {
		return errors.New("calculator.lifeExpectancy must be positive")
	}
	if c.Calculator.MaxCompare <= 0 {
		return errors.New("calculator.maxCompare must be positive")
	}
	if c.Content.ObjectStorage.Enabled {
		if strings.TrimSpace(c.Content.ObjectStorage.Endpoint) == "" {
			return errors.New("content.objectStorage.endpoint cannot be empty when object storage is enabled")
		}
		if strings.TrimSpace(c.Content.ObjectStorage.Bucket) == "" {
			return errors.New("content.objectStorage.bucket cannot be empty when object storage is enabled")
		}
	}
	if c.Enrichment.AIProbability < 0 || c.Enrichment.AIProbability > 1 {
		return errors.New("enrichment.aiProbability must be within [0, 1]")
	}
	if c.Enrichment.MinInterval < 0 || c.Enrichment.QuotaCooldown < 0 || c.Enrichment.ErrorCooldown < 0 {
		return errors.New("enrichment intervals cannot be negative")
	}
	if c.Enrichment.Timeout <= 0 {
		return errors.New("enrichment.timeout must be positive")
	}
	if c.Enrichment.MaxConsecutiveErrors <= 0 {
		return errors.New("enrichment.maxConsecutiveErrors must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.Enrichment.Provider)) {
	case "", ProviderNone:
	case ProviderChatGPT:
		if strings.TrimSpace(c.LLM.Model) == "" {
			return errors.New("llm.model cannot be empty when provider is chatgpt")
		}
	case ProviderGemini:
		if strings.TrimSpace(c.Gemini.Model) == "" {
			return errors.New("gemini.model cannot be empty when provider is gemini")
		}
	default:
		return fmt.Errorf("enrichment.provider %q is not supported", c.Enrichment.Provider)
	}
	if c.Cache.Redis.Enabled && strings.TrimSpace(c.Cache.Redis.Addr) == "" {
		return errors.New("cache.redis.addr cannot be empty when redis cache is enabled")
	}
	return nil
}
