package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/interviewlab/interviewlab-backend/internal/http/handlers"
	httpMW "github.com/interviewlab/interviewlab-backend/internal/http/middleware"
	"github.com/interviewlab/interviewlab-backend/internal/observability"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	PathWebhook = "/conversation/webhook"
	PathMetrics = "/metrics"
	PathHealth  = "/healthcheck"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string
	WebhookSecret  string
	// WebhookTolerance bounds the signature timestamp age; 0 uses the default.
	WebhookTolerance time.Duration

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler      *httpH.AuthHandler
	ProfileHandler   *httpH.ProfileHandler
	CatalogHandler   *httpH.CatalogHandler
	InterviewHandler *httpH.InterviewHandler
	WebhookHandler   *httpH.WebhookHandler
	AdminHandler     *httpH.AdminHandler
	HealthHandler    *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log, PathHealth, PathMetrics))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins, PathWebhook))

	// Health & metrics
	if cfg.HealthHandler != nil {
		r.GET(PathHealth, cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET(PathMetrics, gin.WrapH(cfg.Metrics.Handler()))
	}

	// Public
	if cfg.AuthHandler != nil {
		r.POST("/auth/unified-login", cfg.AuthHandler.UnifiedLogin)
		r.POST("/auth/register", cfg.AuthHandler.Register)
	}
	if cfg.CatalogHandler != nil {
		r.GET("/institutions", cfg.CatalogHandler.ListInstitutions)
		r.GET("/institutions/:id/careers", cfg.CatalogHandler.ListCareers)
	}

	// Voice platform callback
	if cfg.WebhookHandler != nil {
		r.OPTIONS(PathWebhook, func(c *gin.Context) { c.Status(http.StatusNoContent) })
		r.POST(PathWebhook,
			httpMW.WebhookSignature(log, cfg.WebhookSecret, cfg.WebhookTolerance, nil),
			cfg.WebhookHandler.ConversationWebhook,
		)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}

	protected := r.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		if cfg.AuthHandler != nil {
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}
		if cfg.ProfileHandler != nil {
			protected.GET("/me", cfg.ProfileHandler.Me)
		}
		if cfg.InterviewHandler != nil {
			protected.POST("/interview", cfg.InterviewHandler.CreateInterview)
			protected.GET("/interviews", cfg.InterviewHandler.ListInterviews)
			protected.GET("/interviews/:id", cfg.InterviewHandler.GetInterview)
			protected.POST("/conversation", cfg.InterviewHandler.StartConversation)
			protected.GET("/interview-result/:interviewId", cfg.InterviewHandler.GetResult)
		}
	}

	if cfg.AdminHandler != nil {
		admin := protected.Group("/admin")
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
		{
			admin.GET("/validate", cfg.AdminHandler.Validate)
			admin.GET("/accounts", cfg.AdminHandler.ListAccounts)
			admin.GET("/domains", cfg.AdminHandler.ListDomains)
			admin.POST("/domains", cfg.AdminHandler.AddDomain)
			admin.DELETE("/domains/:id", cfg.AdminHandler.RemoveDomain)
			admin.GET("/results", cfg.AdminHandler.ListResults)
		}
	}

	return r
}
