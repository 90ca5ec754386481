package api

import (
	"errors"
	"net/http"

	"foolivery/internal/service"

	"github.com/gin-gonic/gin"
)

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a service failure as {"message", "errors"}. Causes of
// internal errors stay in the logs.
func respondError(c *gin.Context, err error) {
	var serr *service.Error
	if !errors.As(err, &serr) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	body := gin.H{"message": serr.Message}
	if len(serr.Fields) > 0 {
		body["errors"] = serr.Fields
	}
	c.JSON(statusFor(serr.Kind), body)
}
