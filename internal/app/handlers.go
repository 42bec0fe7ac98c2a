package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http"
	httpH "github.com/interviewlab/interviewlab-backend/internal/http/handlers"
	httpMW "github.com/interviewlab/interviewlab-backend/internal/http/middleware"
	"github.com/interviewlab/interviewlab-backend/internal/observability"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Profile   *httpH.ProfileHandler
	Catalog   *httpH.CatalogHandler
	Interview *httpH.InterviewHandler
	Webhook   *httpH.WebhookHandler
	Admin     *httpH.AdminHandler
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireHandlers(log *logger.Logger, s Services, sqlDB *sql.DB, c Clients) Handlers {
	log.Info("Wiring handlers...")
	pingers := map[string]httpH.Pinger{}
	if sqlDB != nil {
		pingers["database"] = sqlDB
	}
	if c.Sessions != nil {
		pingers["redis"] = c.Sessions
	}
	return Handlers{
		Health:    httpH.NewHealthHandler(pingers),
		Auth:      httpH.NewAuthHandler(log, s.Login, s.Registration, s.Identity),
		Profile:   httpH.NewProfileHandler(log, s.Profile),
		Catalog:   httpH.NewCatalogHandler(log, s.Catalog),
		Interview: httpH.NewInterviewHandler(log, s.Interview, s.Evaluation),
		Webhook:   httpH.NewWebhookHandler(log, s.Evaluation),
		Admin:     httpH.NewAdminHandler(log, s.Admin),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Identity, s.Admin),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, h Handlers, mw Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.Otel.ServiceName,
		TracingEnabled:   cfg.Otel.Enabled,
		CORSOrigins:      cfg.CORSAllowOrigins,
		WebhookSecret:    cfg.WebhookSecret,
		WebhookTolerance: cfg.WebhookTolerance,
		AuthMiddleware:   mw.Auth,
		AuthHandler:      h.Auth,
		ProfileHandler:   h.Profile,
		CatalogHandler:   h.Catalog,
		InterviewHandler: h.Interview,
		WebhookHandler:   h.Webhook,
		AdminHandler:     h.Admin,
		HealthHandler:    h.Health,
	})
}
