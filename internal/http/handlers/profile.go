package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type ProfileHandler struct {
	log     *logger.Logger
	profile services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profile services.ProfileService) *ProfileHandler {
	return &ProfileHandler{log: log.With("handler", "ProfileHandler"), profile: profile}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "me", services.ErrUnauthenticated)
		return
	}
	p, err := h.profile.Me(c.Request.Context(), ident)
	if err != nil {
		fail(c, h.log, "me", err)
		return
	}
	response.RespondOK(c, p)
}
