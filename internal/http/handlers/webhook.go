package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

// MaxWebhookBody caps a single voice platform delivery.
const MaxWebhookBody = 8 << 20

const (
	codePayloadTooLarge = "payload_too_large"
	msgPayloadTooLarge  = "El contenido del evento supera el tamaño permitido."
)

type WebhookHandler struct {
	log        *logger.Logger
	evaluation services.EvaluationService
}

func NewWebhookHandler(log *logger.Logger, evaluation services.EvaluationService) *WebhookHandler {
	return &WebhookHandler{log: log.With("handler", "WebhookHandler"), evaluation: evaluation}
}

// ReadWebhookBody reads at most MaxWebhookBody bytes. A larger body yields an
// error wrapping *http.MaxBytesError instead of a truncated payload.
func ReadWebhookBody(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBody)
	return io.ReadAll(c.Request.Body)
}

// AbortBodyError answers 413 for oversized bodies and 400 for any other read failure.
func AbortBodyError(c *gin.Context, log *logger.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		log.Warn("Webhook body too large", "limit", tooLarge.Limit)
		response.AbortError(c, http.StatusRequestEntityTooLarge, codePayloadTooLarge, msgPayloadTooLarge)
		return
	}
	log.Warn("Webhook body unreadable", "error", err)
	response.AbortError(c, http.StatusBadRequest, "malformed_payload", "No se pudo leer el cuerpo de la solicitud.")
}

// ConversationWebhook receives post-call events from the voice platform.
// Non-2xx responses make the sender retry, so only unrecognized event types
// are acknowledged without processing.
func (h *WebhookHandler) ConversationWebhook(c *gin.Context) {
	raw, err := ReadWebhookBody(c)
	if err != nil {
		AbortBodyError(c, h.log, err)
		return
	}
	res, err := h.evaluation.HandleWebhook(c.Request.Context(), raw)
	if err != nil {
		fail(c, h.log, "conversation_webhook", err)
		return
	}
	response.RespondStatus(c, http.StatusOK, res)
}
