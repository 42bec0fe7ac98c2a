package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{log: log.With("handler", "CatalogHandler"), catalog: catalog}
}

func (h *CatalogHandler) ListInstitutions(c *gin.Context) {
	insts, err := h.catalog.ListInstitutions(c.Request.Context())
	if err != nil {
		fail(c, h.log, "list_institutions", err)
		return
	}
	out := make([]gin.H, 0, len(insts))
	for _, i := range insts {
		out = append(out, gin.H{"id": i.ID, "name": i.Name})
	}
	response.RespondOK(c, gin.H{"institutions": out})
}

func (h *CatalogHandler) ListCareers(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "El identificador de la institución no es válido.")
		return
	}
	careers, err := h.catalog.ListCareers(c.Request.Context(), uint(id))
	if err != nil {
		fail(c, h.log, "list_careers", err)
		return
	}
	response.RespondOK(c, gin.H{"careers": careers})
}
