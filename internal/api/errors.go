// Package api provides the HTTP handlers and route registration for the
// DatLe survey insights API.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datle/datle-api/internal/domain"
)

// respondError maps service errors to HTTP statuses. Unrecognized errors
// become 500 with a generic message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrStudyNotFound),
		errors.Is(err, domain.ErrRespondentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrResponseExists),
		errors.Is(err, domain.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrOTPNotFound),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrOTPInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrInvalidStudyDates):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
