package app

import (
	"fmt"

	"github.com/interviewlab/interviewlab-backend/internal/evaluation"
	"github.com/interviewlab/interviewlab-backend/internal/observability"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type Services struct {
	Identity     services.IdentityGateway
	Directory    services.AccountDirectory
	Subscription services.SubscriptionGate
	Login        services.LoginService
	Registration services.RegistrationService
	Catalog      services.CatalogService
	Profile      services.ProfileService
	Interview    services.InterviewService
	Evaluation   services.EvaluationService
	Admin        services.AdminService
}

func wireServices(log *logger.Logger, cfg Config, r Repos, c Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	identity, err := wireIdentity(log, cfg, r, c)
	if err != nil {
		return Services{}, err
	}

	rubric, err := evaluation.LoadRubric(cfg.RubricPath)
	if err != nil {
		return Services{}, fmt.Errorf("load rubric: %w", err)
	}
	scorer := services.NewLLMScorer(log, c.Scorer, rubric)

	directory := services.NewAccountDirectory(log, r.Institution, r.Account)
	gate := services.NewSubscriptionGate(log, r.Institution)

	return Services{
		Identity:     identity,
		Directory:    directory,
		Subscription: gate,
		Login:        services.NewLoginService(log, identity, directory, gate, metrics),
		Registration: services.NewRegistrationService(log, identity, r.Institution, r.Career, r.EmailDomain, r.Account),
		Catalog:      services.NewCatalogService(log, r.Institution, r.Career),
		Profile:      services.NewProfileService(log, directory, gate, r.Account),
		Interview:    services.NewInterviewService(log, r.Account, r.Interview, r.Conversation),
		Evaluation:   services.NewEvaluationService(log, r.Account, r.Interview, r.Conversation, r.Result, scorer, metrics),
		Admin:        services.NewAdminService(log, directory, r.Account, r.EmailDomain, r.Result),
	}, nil
}

func wireIdentity(log *logger.Logger, cfg Config, r Repos, c Clients) (services.IdentityGateway, error) {
	if cfg.IdentityProvider == IdentityProviderHosted {
		gw, err := services.NewHostedIdentityGateway(log, services.HostedIdentityConfig{
			BaseURL: cfg.IdentityURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init hosted identity: %w", err)
		}
		return gw, nil
	}

	var store services.SessionStore = services.NewGormSessionStore(r.Session)
	if c.Sessions != nil {
		store = c.Sessions
	}
	gw, err := services.NewLocalIdentityGateway(log, r.Identity, store, services.LocalIdentityConfig{
		JWTSecretKey: cfg.JWTSecretKey,
		AccessTTL:    cfg.AccessTokenTTL,
		RefreshTTL:   cfg.RefreshTokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("init local identity: %w", err)
	}
	return gw, nil
}
