package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/api/middleware"
	"inkpress/services"
)

// ListCommentsHandler godoc
// @Summary      List comments of a post
// @Tags         comments
// @Param        postId  path  string  true  "Post ObjectID"
// @Produce      json
// @Success      200  {array}  dto.CommentDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /comments/{postId} [get]
func ListCommentsHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		comments, err := svc.ListByPost(c.Request.Context(), c.Param("postId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

type addCommentRequest struct {
	Desc string `json:"desc" binding:"required"`
}

// AddCommentHandler godoc
// @Summary      Comment on a post
// @Tags         comments
// @Security     BearerAuth
// @Accept       json
// @Param        postId  path  string             true  "Post ObjectID"
// @Param        body    body  addCommentRequest  true  "Comment text"
// @Produce      json
// @Success      201  {object}  dto.CommentDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /comments/{postId} [post]
func AddCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalUserID, _, ok := middleware.Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		var req addCommentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		comment, err := svc.Add(c.Request.Context(), externalUserID, c.Param("postId"), req.Desc)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// DeleteCommentHandler godoc
// @Summary      Delete a comment
// @Description  Authors delete their own comments, admins any comment
// @Tags         comments
// @Security     BearerAuth
// @Param        id  path  string  true  "Comment ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /comments/{id} [delete]
func DeleteCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalUserID, role, ok := middleware.Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		if err := svc.Delete(c.Request.Context(), externalUserID, role, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "comment has been deleted"})
	}
}
