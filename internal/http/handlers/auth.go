package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/ctxutil"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type AuthHandler struct {
	log          *logger.Logger
	login        services.LoginService
	registration services.RegistrationService
	gateway      services.IdentityGateway
}

func NewAuthHandler(log *logger.Logger, login services.LoginService, registration services.RegistrationService, gateway services.IdentityGateway) *AuthHandler {
	return &AuthHandler{
		log:          log.With("handler", "AuthHandler"),
		login:        login,
		registration: registration,
		gateway:      gateway,
	}
}

// UnifiedLogin is the single login entry point for students and administrators.
func (h *AuthHandler) UnifiedLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgLoginFields)
		return
	}
	res, err := h.login.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			badRequest(c, msgLoginFields)
			return
		}
		fail(c, h.log, "unified_login", err)
		return
	}
	response.RespondOK(c, res)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email         string `json:"email"`
		Password      string `json:"password"`
		Name          string `json:"name"`
		Birthday      string `json:"birthday"`
		Gender        string `json:"gender"`
		InstitutionID uint   `json:"institutionId"`
		CareerID      *uint  `json:"careerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidInput)
		return
	}
	in := services.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Name:          req.Name,
		Gender:        req.Gender,
		InstitutionID: req.InstitutionID,
		CareerID:      req.CareerID,
	}
	if req.Birthday != "" {
		bd, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			badRequest(c, "La fecha de nacimiento debe tener el formato AAAA-MM-DD.")
			return
		}
		in.Birthday = &bd
	}
	acc, err := h.registration.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, h.log, "register", err)
		return
	}
	response.RespondStatus(c, http.StatusCreated, gin.H{"account": acc})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccessToken == "" {
		fail(c, h.log, "logout", services.ErrUnauthenticated)
		return
	}
	if err := h.gateway.InvalidateSession(c.Request.Context(), services.SessionTokens{AccessToken: rd.AccessToken}); err != nil {
		fail(c, h.log, "logout", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
