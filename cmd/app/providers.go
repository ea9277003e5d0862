package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/clienterror"
	"github.com/yanqian/agemaster/internal/domain/enrichment"
	"github.com/yanqian/agemaster/internal/infra/config"
	"github.com/yanqian/agemaster/internal/infra/content"
	"github.com/yanqian/agemaster/internal/infra/errorrepo"
	"github.com/yanqian/agemaster/internal/infra/llm/chatgpt"
	"github.com/yanqian/agemaster/internal/infra/quotecache"
	"github.com/yanqian/agemaster/internal/infra/quotegen"
	"github.com/yanqian/agemaster/pkg/metrics"
	"github.com/yanqian/agemaster/pkg/util"
)

func provideClock() util.Clock {
	return util.SystemClock{}
}

func provideTokenCounter() metrics.TokenCounter {
	return metrics.NewTiktokenCounter()
}

func provideCalculatorConfig(cfg *config.Config) agecalc.Config {
	return agecalc.Config{
		LifeExpectancy: cfg.Calculator.LifeExpectancy,
		MaxCompare:     cfg.Calculator.MaxCompare,
	}
}

func provideClientErrorConfig() clienterror.Config {
	return clienterror.Config{}
}

func provideEnrichmentConfig(cfg *config.Config) enrichment.Config {
	return enrichment.Config{
		AIProbability: cfg.Enrichment.AIProbability,
		Timeout:       cfg.Enrichment.Timeout,
		CacheTTL:      cfg.Enrichment.CacheTTL,
		Prompt:        cfg.Enrichment.Prompt,
		Throttle:      provideThrottleConfig(cfg),
	}
}

func provideThrottleConfig(cfg *config.Config) enrichment.ThrottleConfig {
	return enrichment.ThrottleConfig{
		MinInterval:          cfg.Enrichment.MinInterval,
		QuotaCooldown:        cfg.Enrichment.QuotaCooldown,
		ErrorCooldown:        cfg.Enrichment.ErrorCooldown,
		MaxConsecutiveErrors: cfg.Enrichment.MaxConsecutiveErrors,
	}
}

func provideThrottle(cfg *config.Config) *enrichment.Throttle {
	return enrichment.NewThrottle(provideThrottleConfig(cfg), nil)
}

func provideContentSource(cfg *config.Config, logger *slog.Logger) (enrichment.ContentSource, error) {
	var source enrichment.ContentSource = content.NewFileSource(cfg.Content.DataDir)
	store := cfg.Content.ObjectStorage
	if store.Enabled {
		reader, err := content.NewBucketReader(content.BucketOptions{
			Endpoint:  store.Endpoint,
			AccessKey: store.AccessKey,
			SecretKey: store.SecretKey,
			Bucket:    store.Bucket,
			Region:    store.Region,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("content object storage enabled", "bucket", store.Bucket)
		source = content.NewObjectSource(reader, store.QuotesKey, store.FactsKey, logger)
	}
	return content.NewCachedSource(source, cfg.Content.ReloadInterval), nil
}

// provideGenerator returns a nil generator when no provider is configured or
// its credentials are missing; the gateway then serves local content only.
func provideGenerator(cfg *config.Config, logger *slog.Logger) (enrichment.Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Enrichment.Provider)) {
	case config.ProviderChatGPT:
		if strings.TrimSpace(cfg.LLM.APIKey) == "" {
			logger.Warn("chatgpt provider selected without api key, ai quotes disabled")
			return nil, nil
		}
		client, err := chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("ai quotes enabled", "provider", config.ProviderChatGPT, "model", cfg.LLM.Model)
		return quotegen.NewChatGPT(client, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens), nil
	case config.ProviderGemini:
		if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
			logger.Warn("gemini provider selected without api key, ai quotes disabled")
			return nil, nil
		}
		client, err := quotegen.NewGeminiClient(context.Background(), cfg.Gemini.APIKey)
		if err != nil {
			return nil, err
		}
		logger.Info("ai quotes enabled", "provider", config.ProviderGemini, "model", cfg.Gemini.Model)
		return quotegen.NewGemini(client.Models, cfg.Gemini.Model, cfg.Gemini.Temperature), nil
	default:
		logger.Info("ai quotes disabled, serving local content")
		return nil, nil
	}
}

func provideQuoteCache(cfg *config.Config, logger *slog.Logger) (enrichment.QuoteCache, func()) {
	fallback := quotecache.NewMemoryStore(cfg.Enrichment.CacheTTL)
	if !cfg.Cache.Redis.Enabled {
		return fallback, func() {}
	}
	opt, err := buildValkeyOptions(cfg.Cache.Redis.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return fallback, func() {}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return fallback, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return fallback, func() {}
	}
	logger.Info("quote valkey cache enabled", "addr", cfg.Cache.Redis.Addr)
	return quotecache.NewValkeyStore(client, cfg.Cache.Redis.Prefix), client.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideReportRepository(cfg *config.Config, logger *slog.Logger) (clienterror.Repository, func()) {
	fallback := errorrepo.NewMemoryRepository(cfg.ClientErrors.MemoryCapacity)
	pgCfg := cfg.ClientErrors.Postgres
	dsn := strings.TrimSpace(pgCfg.DSN)
	if dsn == "" {
		logger.Info("client error postgres dsn not set, using memory repository")
		return fallback, func() {}
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback, func() {}
	}
	if pgCfg.MaxConns > 0 {
		poolConfig.MaxConns = pgCfg.MaxConns
	}
	if pgCfg.MinConns > 0 {
		poolConfig.MinConns = pgCfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback, func() {}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback, func() {}
	}
	repo := errorrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("client error schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback, func() {}
	}
	logger.Info("client error postgres repository enabled")
	return repo, pool.Close
}
