package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/services"
)

// respondError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized is a storage/transport failure and becomes a 500
// without leaking internals.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrEmptyComment),
		errors.Is(err, services.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAuthorNotFound),
		errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSlugExhausted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
