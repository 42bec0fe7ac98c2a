package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/evaluation"
	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

type InterviewHandler struct {
	log        *logger.Logger
	interviews services.InterviewService
	evaluation services.EvaluationService
}

func NewInterviewHandler(log *logger.Logger, interviews services.InterviewService, evaluation services.EvaluationService) *InterviewHandler {
	return &InterviewHandler{
		log:        log.With("handler", "InterviewHandler"),
		interviews: interviews,
		evaluation: evaluation,
	}
}

func (h *InterviewHandler) CreateInterview(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "create_interview", services.ErrUnauthenticated)
		return
	}
	var req services.CreateInterviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidInput)
		return
	}
	iv, err := h.interviews.Create(c.Request.Context(), ident.ID, req)
	if err != nil {
		fail(c, h.log, "create_interview", err)
		return
	}
	response.RespondStatus(c, http.StatusCreated, gin.H{"interview": iv})
}

func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "list_interviews", services.ErrUnauthenticated)
		return
	}
	limit, offset := pageParams(c)
	items, total, err := h.interviews.List(c.Request.Context(), ident.ID, limit, offset)
	if err != nil {
		fail(c, h.log, "list_interviews", err)
		return
	}
	limit, offset = services.Page(limit, offset)
	response.RespondOK(c, response.Page[*types.Interview]{Items: items, Total: total, Limit: limit, Offset: offset})
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "get_interview", services.ErrUnauthenticated)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, msgInvalidInterview)
		return
	}
	iv, err := h.interviews.Get(c.Request.Context(), ident.ID, id)
	if err != nil {
		fail(c, h.log, "get_interview", err)
		return
	}
	response.RespondOK(c, gin.H{"interview": iv})
}

// StartConversation binds the voice session id to an interview before the
// call begins.
func (h *InterviewHandler) StartConversation(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "start_conversation", services.ErrUnauthenticated)
		return
	}
	var req struct {
		ConversationID string `json:"conversationId"`
		InterviewID    string `json:"interviewId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ConversationID == "" || req.InterviewID == "" {
		badRequest(c, "conversationId e interviewId son obligatorios.")
		return
	}
	interviewID, err := uuid.Parse(req.InterviewID)
	if err != nil {
		badRequest(c, msgInvalidInterview)
		return
	}
	conv, err := h.interviews.StartConversation(c.Request.Context(), ident.ID, req.ConversationID, interviewID)
	if err != nil {
		fail(c, h.log, "start_conversation", err)
		return
	}
	response.RespondOK(c, gin.H{"conversationId": conv.ID, "interviewId": conv.InterviewID})
}

// GetResult answers 202 until the evaluation webhook has stored a result.
func (h *InterviewHandler) GetResult(c *gin.Context) {
	ident, ok := identityFrom(c)
	if !ok {
		fail(c, h.log, "get_result", services.ErrUnauthenticated)
		return
	}
	id, err := uuid.Parse(c.Param("interviewId"))
	if err != nil {
		badRequest(c, msgInvalidInterview)
		return
	}
	res, err := h.evaluation.GetResult(c.Request.Context(), ident.ID, id)
	if err != nil {
		fail(c, h.log, "get_result", err)
		return
	}
	if res == nil {
		response.RespondStatus(c, http.StatusAccepted, gin.H{"status": "pending"})
		return
	}
	response.RespondOK(c, evaluation.ViewOf(res))
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return limit, offset
}
