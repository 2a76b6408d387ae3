package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"inkpress/internal/logger"
)

// VisitRegistrar counts one visit per distinct visitor per post.
type VisitRegistrar interface {
	RegisterVisit(ctx context.Context, slug, visitorID string) (bool, error)
}

// TrackVisit increments the visit counter of the post being fetched, at most
// once per visitor. The visitor identity is the authenticated subject when
// present, otherwise the client IP. Counting failures are logged and never
// block the read.
func TrackVisit(svc VisitRegistrar) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug != "" {
			visitorID, _, ok := Identity(c)
			if !ok {
				visitorID = c.ClientIP()
			}
			if visitorID != "" {
				if _, err := svc.RegisterVisit(c.Request.Context(), slug, visitorID); err != nil {
					logger.Log.Errorf("failed to register visit for %s: %v", slug, err)
				}
			}
		}
		c.Next()
	}
}
