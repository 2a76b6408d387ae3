package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/bson"

	"inkpress/api/handlers"
	"inkpress/api/middleware"
	"inkpress/auth"
	"inkpress/db"
	_ "inkpress/docs"
	"inkpress/services"
	"inkpress/webhooks"
)

// Deps carries the wired services the router mounts.
type Deps struct {
	JWT      *auth.JWTManager
	Posts    *services.PostService
	Users    *services.UserService
	Comments *services.CommentService
	Upload   *services.UploadService
	Webhooks *webhooks.Verifier
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	crs := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})
	r.Use(func(c *gin.Context) {
		crs.HandlerFunc(c.Writer, c.Request)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		// Try ping MongoDB
		if err := db.Database().RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Identity provider callbacks (signature-verified, no bearer auth)
	r.POST("/webhooks/identity", handlers.IdentityWebhookHandler(d.Webhooks, d.Users))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/posts", handlers.ListPostsHandler(d.Posts))
		api.GET("/posts/upload-auth", middleware.Authenticate(d.JWT), handlers.UploadAuthHandler(d.Upload))
		api.GET("/posts/:slug", middleware.Identify(d.JWT), middleware.TrackVisit(d.Posts), handlers.GetPostHandler(d.Posts))
		api.POST("/posts", middleware.Authenticate(d.JWT), handlers.CreatePostHandler(d.Posts))
		api.DELETE("/posts/:id", middleware.Authenticate(d.JWT), handlers.DeletePostHandler(d.Posts))
		api.PATCH("/posts/feature", middleware.RequireAdmin(d.JWT), handlers.FeaturePostHandler(d.Posts))

		api.GET("/comments/:postId", handlers.ListCommentsHandler(d.Comments))
		api.POST("/comments/:postId", middleware.Authenticate(d.JWT), handlers.AddCommentHandler(d.Comments))
		api.DELETE("/comments/:id", middleware.Authenticate(d.JWT), handlers.DeleteCommentHandler(d.Comments))

		api.GET("/users/saved", middleware.Authenticate(d.JWT), handlers.SavedPostsHandler(d.Users))
		api.PATCH("/users/save", middleware.Authenticate(d.JWT), handlers.SavePostHandler(d.Users))
	}

	return r
}
