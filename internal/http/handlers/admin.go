package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

// InstitutionIDKey is where RequireAdmin leaves the validated institution id.
const InstitutionIDKey = "institution_id"

type AdminHandler struct {
	log   *logger.Logger
	admin services.AdminService
}

func NewAdminHandler(log *logger.Logger, admin services.AdminService) *AdminHandler {
	return &AdminHandler{log: log.With("handler", "AdminHandler"), admin: admin}
}

func institutionFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(InstitutionIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// Validate is also exposed on its own so the dashboard can check access on load.
func (h *AdminHandler) Validate(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_validate", services.ErrNotAdmin)
		return
	}
	response.RespondOK(c, gin.H{"institution_id": instID})
}

func (h *AdminHandler) ListAccounts(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_list_accounts", services.ErrNotAdmin)
		return
	}
	limit, offset := pageParams(c)
	items, total, err := h.admin.ListAccounts(c.Request.Context(), instID, limit, offset)
	if err != nil {
		fail(c, h.log, "admin_list_accounts", err)
		return
	}
	limit, offset = services.Page(limit, offset)
	response.RespondOK(c, response.Page[*types.Account]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (h *AdminHandler) ListDomains(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_list_domains", services.ErrNotAdmin)
		return
	}
	domains, err := h.admin.ListDomains(c.Request.Context(), instID)
	if err != nil {
		fail(c, h.log, "admin_list_domains", err)
		return
	}
	response.RespondOK(c, gin.H{"domains": domains})
}

func (h *AdminHandler) AddDomain(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_add_domain", services.ErrNotAdmin)
		return
	}
	var req struct {
		Domain string `json:"domain"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidInput)
		return
	}
	d, err := h.admin.AddDomain(c.Request.Context(), instID, req.Domain)
	if err != nil {
		fail(c, h.log, "admin_add_domain", err)
		return
	}
	response.RespondStatus(c, http.StatusCreated, gin.H{"domain": d})
}

func (h *AdminHandler) RemoveDomain(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_remove_domain", services.ErrNotAdmin)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "El identificador del dominio no es válido.")
		return
	}
	if err := h.admin.RemoveDomain(c.Request.Context(), instID, uint(id)); err != nil {
		fail(c, h.log, "admin_remove_domain", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (h *AdminHandler) ListResults(c *gin.Context) {
	instID, ok := institutionFrom(c)
	if !ok {
		fail(c, h.log, "admin_list_results", services.ErrNotAdmin)
		return
	}
	limit, offset := pageParams(c)
	items, total, err := h.admin.ListResults(c.Request.Context(), instID, limit, offset)
	if err != nil {
		fail(c, h.log, "admin_list_results", err)
		return
	}
	limit, offset = services.Page(limit, offset)
	response.RespondOK(c, response.Page[*repos.ResultSummary]{Items: items, Total: total, Limit: limit, Offset: offset})
}
