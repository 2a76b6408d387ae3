package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/internal/logger"
	"inkpress/services"
	"inkpress/webhooks"
)

// IdentityWebhookHandler godoc
// @Summary      Identity-provider webhook
// @Description  Receives signed user lifecycle events; unknown kinds are acknowledged and ignored
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Success      201  {object}  dto.MessageResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /webhooks/identity [post]
func IdentityWebhookHandler(verifier *webhooks.Verifier, svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
			return
		}

		evt, err := verifier.Parse(payload, c.Request.Header)
		if err != nil {
			logger.Log.Warnf("webhook rejected: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook verification failed"})
			return
		}

		outcome, err := svc.ApplyIdentityEvent(c.Request.Context(), services.IdentityEventInput{
			Kind:           evt.Type,
			ExternalUserID: evt.Data.ID,
			Username:       evt.Data.Username,
			Email:          evt.Data.PrimaryEmail(),
			Img:            evt.Data.ProfileImageURL,
		})
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			logger.Log.Errorf("webhook %s failed: %v", evt.Type, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		switch outcome {
		case services.OutcomeCreated:
			c.JSON(http.StatusCreated, gin.H{"message": "user created"})
		case services.OutcomeDeleted:
			c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
		default:
			c.JSON(http.StatusOK, gin.H{"message": "event acknowledged"})
		}
	}
}
