package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/http/response"
	"github.com/interviewlab/interviewlab-backend/internal/platform/apierr"
	"github.com/interviewlab/interviewlab-backend/internal/platform/ctxutil"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"github.com/interviewlab/interviewlab-backend/internal/services"
)

const (
	msgInvalidInput     = "Solicitud inválida."
	msgLoginFields      = "Correo y contraseña son obligatorios."
	msgInternal         = "Error interno del servidor."
	msgUnauthenticated  = "Se requiere iniciar sesión."
	msgSubscriptionOff  = "La institución no tiene una suscripción activa."
	msgInvalidInterview = "El identificador de la entrevista no es válido."
)

type errorRule struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters only where one sentinel wraps another.
var errorRules = []errorRule{
	{services.ErrInvalidInput, http.StatusBadRequest, "invalid_input", msgInvalidInput},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Credenciales inválidas."},
	{services.ErrInvalidSession, http.StatusUnauthorized, "unauthenticated", msgUnauthenticated},
	{services.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", msgUnauthenticated},
	{services.ErrSubscriptionInactive, http.StatusForbidden, "subscription_inactive", msgSubscriptionOff},
	{services.ErrAccountNotFound, http.StatusNotFound, "account_not_found", "No se encontró una cuenta asociada a este usuario."},
	{services.ErrNoInstitution, http.StatusNotFound, "no_institution", "La cuenta no está asociada a ninguna institución."},
	{services.ErrInstitutionNotFound, http.StatusNotFound, "institution_not_found", "La institución asociada no existe."},
	{services.ErrEmailTaken, http.StatusConflict, "email_taken", "El correo ya está registrado."},
	{services.ErrIdentityExists, http.StatusConflict, "email_taken", "El correo ya está registrado."},
	{services.ErrDomainNotAllowed, http.StatusForbidden, "domain_not_allowed", "El dominio del correo no está habilitado para esta institución."},
	{services.ErrCareerMismatch, http.StatusBadRequest, "career_mismatch", "La carrera no pertenece a la institución seleccionada."},
	{services.ErrInterviewNotFound, http.StatusNotFound, "interview_not_found", "Entrevista no encontrada."},
	{services.ErrNotOwner, http.StatusForbidden, "forbidden", "No tienes acceso a esta entrevista."},
	{services.ErrAccountRequired, http.StatusForbidden, "account_required", "Se requiere una cuenta de estudiante."},
	{services.ErrForbidden, http.StatusForbidden, "forbidden", "Acceso denegado."},
	{services.ErrConversationNotFound, http.StatusNotFound, "conversation_not_found", "Conversación no encontrada."},
	{services.ErrMalformedWebhook, http.StatusBadRequest, "malformed_payload", "El contenido del evento no es válido."},
	{services.ErrInvalidScorecard, http.StatusInternalServerError, "invalid_scorecard", "La evaluación generada no es válida."},
	{services.ErrScoring, http.StatusInternalServerError, "scoring_failed", "No se pudo evaluar la entrevista."},
	{services.ErrNotAdmin, http.StatusForbidden, "not_admin", "Se requiere una cuenta de administrador de la institución."},
	{services.ErrDomainNotFound, http.StatusNotFound, "domain_not_found", "Dominio no encontrado."},
	{services.ErrDomainExists, http.StatusConflict, "domain_exists", "El dominio ya está habilitado."},
}

// Classify maps a service error onto its HTTP status, code and message.
// Unknown errors become a 500 that keeps the cause for logging only.
func Classify(err error) *apierr.Error {
	if ae, ok := apierr.As(err); ok {
		return ae
	}
	for _, r := range errorRules {
		if errors.Is(err, r.target) {
			return apierr.New(r.status, r.code, r.message, err)
		}
	}
	return apierr.Internal(msgInternal, err)
}

// fail writes the classified error and logs it; only 5xx are logged as errors.
func fail(c *gin.Context, log *logger.Logger, op string, err error) {
	ae := Classify(err)
	fields := []interface{}{"op", op, "status", ae.Status, "code", ae.Code, "error", err}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		fields = append(fields, "request_id", td.RequestID)
	}
	if ae.Status >= http.StatusInternalServerError {
		log.Error("Request failed", fields...)
	} else {
		log.Debug("Request rejected", fields...)
	}
	response.RespondAPIError(c, ae)
}

func badRequest(c *gin.Context, message string) {
	response.RespondError(c, http.StatusBadRequest, "invalid_input", message)
}

// identityFrom returns the caller attached by the auth middleware.
func identityFrom(c *gin.Context) (services.Identity, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.IdentityID == "" {
		return services.Identity{}, false
	}
	return services.Identity{ID: rd.IdentityID, Email: rd.Email}, true
}
