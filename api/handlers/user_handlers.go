package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/api/middleware"
	"inkpress/services"
)

// SavedPostsHandler godoc
// @Summary      List the caller's saved posts
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.SavedPostsDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /users/saved [get]
func SavedPostsHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalUserID, role, ok := middleware.Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		saved, err := svc.SavedPosts(c.Request.Context(), externalUserID, role)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

type savePostRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

// SavePostHandler godoc
// @Summary      Toggle a post in the caller's saved set
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Param        body  body  savePostRequest  true  "Post to toggle"
// @Produce      json
// @Success      200  {object}  dto.SaveToggleDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /users/save [patch]
func SavePostHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalUserID, role, ok := middleware.Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		var req savePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		out, err := svc.ToggleSavedPost(c.Request.Context(), externalUserID, role, req.PostID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
