package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/interviewlab/interviewlab-backend/internal/clients/redis"
	"github.com/interviewlab/interviewlab-backend/internal/observability"
	"github.com/interviewlab/interviewlab-backend/internal/platform/gemini"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/platform/openai"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type Clients struct {
	Sessions *redis.SessionStore
	Scorer   services.JSONGenerator
	Gemini   *gemini.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Redis
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		store, err := redis.NewSessionStore(log, redis.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis session store: %w", err)
		}
		out.Sessions = store
	}

	// LLM
	switch cfg.ScorerProvider {
	case ScorerProviderGemini:
		gc, err := gemini.NewClient(ctx, log, gemini.Config{
			ProjectID:       cfg.Gemini.ProjectID,
			Location:        cfg.Gemini.Location,
			Model:           cfg.Gemini.Model,
			CredentialsFile: cfg.Gemini.CredentialsFile,
		}, metrics)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init gemini client: %w", err)
		}
		out.Gemini = gc
		out.Scorer = gc
	default:
		oc, err := openai.NewClient(log, openai.Config{
			APIKey:     cfg.OpenAI.APIKey,
			BaseURL:    cfg.OpenAI.BaseURL,
			Model:      cfg.OpenAI.Model,
			Timeout:    cfg.OpenAI.Timeout,
			MaxRetries: cfg.OpenAI.MaxRetries,
		}, metrics)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init openai client: %w", err)
		}
		out.Scorer = oc
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Sessions != nil {
		_ = c.Sessions.Close()
	}
	if c.Gemini != nil {
		_ = c.Gemini.Close()
	}
}
