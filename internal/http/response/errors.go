package response

import (
	"github.com/gin-gonic/gin"

	"github.com/interviewlab/interviewlab-backend/internal/platform/apierr"
)

func RespondAPIError(c *gin.Context, e *apierr.Error) {
	RespondError(c, e.Status, e.Code, e.Message)
}

func AbortAPIError(c *gin.Context, e *apierr.Error) {
	AbortError(c, e.Status, e.Code, e.Message)
}
