package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"inkpress/api/middleware"
	"inkpress/services"
)

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List posts with filters, sorting, and pagination
// @Tags         posts
// @Param        cat       query  string  false  "Category (exact match)"
// @Param        author    query  string  false  "Author username"
// @Param        search    query  string  false  "Title substring (case-insensitive)"
// @Param        featured  query  bool    false  "Featured posts only"
// @Param        sort      query  string  false  "newest | oldest | popular | trending"
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        limit     query  int     false  "Page size (<=100)"
// @Produce      json
// @Success      200  {object}  dto.PostListDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListPostsInput
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
		in.Category = c.Query("cat")
		in.Author = c.Query("author")
		in.Search = c.Query("search")
		in.Sort = c.Query("sort")
		in.Featured, _ = strconv.ParseBool(c.DefaultQuery("featured", "false"))

		out, err := svc.List(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// GetPostHandler godoc
// @Summary      Get post by slug
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

type createPostRequest struct {
	Title    string `json:"title" binding:"required"`
	Desc     string `json:"desc"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Img      string `json:"img"`
}

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Creates a post with a unique slug derived from the title
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Param        post  body  createPostRequest  true  "Post content"
// @Produce      json
// @Success      201  {object}  dto.PostDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts [post]
func CreatePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalUserID, _, ok := middleware.Identity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			return
		}

		var req createPostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post, err := svc.Create(c.Request.Context(), services.CreatePostInput{
			ExternalUserID: externalUserID,
			Title:          req.Title,
			Desc:           req.Desc,
			Content:        req.Content,
			Category:       req.Category,
			Img:            req.Img,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// DeletePostHandler godoc
// @Summary      Delete a post
// @Description  Owners delete their own posts, admins any post
// @Tags         posts
// @Security     BearerAuth
// @Param        id  path  string  true  "Post ObjectID"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id} [delete]
func DeletePostHandler(svc *services.PostService) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"message": "post has been deleted"})
	}
}

type featurePostRequest struct {
	PostID string `json:"post_id" binding:"required"`
}

// FeaturePostHandler godoc
// @Summary      Toggle the featured flag of a post
// @Tags         posts
// @Security     BearerAuth
// @Accept       json
// @Param        body  body  featurePostRequest  true  "Post to toggle"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/feature [patch]
func FeaturePostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req featurePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post, err := svc.ToggleFeatured(c.Request.Context(), req.PostID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// UploadAuthHandler godoc
// @Summary      Get upload-auth parameters for the media CDN
// @Tags         posts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.UploadAuthDTO
// @Router       /posts/upload-auth [get]
func UploadAuthHandler(svc *services.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.AuthParams())
	}
}
