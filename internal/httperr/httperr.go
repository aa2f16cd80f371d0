package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPError is the failure envelope: success is always false.
type HTTPError struct {
	Success bool   `json:"success"`
	Code    string `json:"error_code,omitempty"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Success: false,
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func ForbiddenResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond writes err to the client. Business errors keep their status and
// message; anything else is logged and surfaced as a generic 500 carrying
// fallback as the message.
func Respond(c *gin.Context, log *zap.Logger, err error, fallback string) {
	if be, ok := AsBusiness(err); ok {
		Write(c, be.Status(), be.Code, be.Message)
		return
	}

	log.Error(fallback,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)
	Internal(c, "internal_error", fallback)
}
