package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/handlers"
	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/ctxutil"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type AuthMiddleware struct {
	log     *logger.Logger
	gateway services.IdentityGateway
	admin   services.AdminService
}

func NewAuthMiddleware(log *logger.Logger, gateway services.IdentityGateway, admin services.AdminService) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, gateway: gateway, admin: admin}
}

// RequireAuth resolves the bearer token into ctxutil.RequestData.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthenticated", "Se requiere iniciar sesión.")
			return
		}
		ident, err := am.gateway.ResolveSession(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, services.ErrInvalidSession) {
				response.AbortError(c, http.StatusUnauthorized, "unauthenticated", "La sesión no es válida o ha expirado.")
				return
			}
			am.log.Error("Session resolution failed", "error", err)
			response.AbortAPIError(c, handlers.Classify(err))
			return
		}
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{
			AccessToken: tokenString,
			IdentityID:  ident.ID,
			Email:       ident.Email,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAdmin runs the admin validation and exposes the institution id to
// the handlers. It must follow RequireAuth.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.IdentityID == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthenticated", "Se requiere iniciar sesión.")
			return
		}
		instID, err := am.admin.Validate(c.Request.Context(), services.Identity{ID: rd.IdentityID, Email: rd.Email})
		if err != nil {
			ae := handlers.Classify(err)
			if ae.Status >= http.StatusInternalServerError {
				am.log.Error("Admin validation failed", "error", err)
			}
			response.AbortAPIError(c, ae)
			return
		}
		c.Set(handlers.InstitutionIDKey, instID)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
