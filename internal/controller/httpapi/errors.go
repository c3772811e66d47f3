package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/service"
)

// writeError выбирает код ответа по виду ошибки. Forbidden проверяется раньше Conflict:
// уже забронированный слот несёт оба вида и отвечает 403.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("request_id", requestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrMalformedAuth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
