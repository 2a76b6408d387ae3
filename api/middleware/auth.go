package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkpress/auth"
)

// Context keys set by the identity middleware.
const (
	CtxExternalUserID = "external_user_id"
	CtxRole           = "role"
)

// Authenticate verifies the bearer token and stores the caller's identity in
// the request context. Requests without a valid token are rejected.
func Authenticate(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		externalUserID, role, err := manager.Parse(token)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}
		if role == "" {
			role = auth.RoleUser
		}

		c.Set(CtxExternalUserID, externalUserID)
		c.Set(CtxRole, role)

		c.Next()
	}
}

// Identify is the optional variant of Authenticate: a valid token sets the
// identity, anything else leaves the request anonymous. Used where identity
// only refines behavior (visit attribution).
func Identify(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err == nil {
			if externalUserID, role, perr := manager.Parse(token); perr == nil {
				if role == "" {
					role = auth.RoleUser
				}
				c.Set(CtxExternalUserID, externalUserID)
				c.Set(CtxRole, role)
			}
		}
		c.Next()
	}
}

// RequireAdmin verifies the bearer token and additionally requires the admin
// role.
func RequireAdmin(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		externalUserID, role, err := manager.Parse(token)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if role != auth.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden_insufficient_permissions"})
			return
		}

		c.Set(CtxExternalUserID, externalUserID)
		c.Set(CtxRole, role)

		c.Next()
	}
}

// Identity reads the identity placed by Authenticate/Identify. ok is false
// for anonymous requests.
func Identity(c *gin.Context) (externalUserID, role string, ok bool) {
	id, exists := c.Get(CtxExternalUserID)
	if !exists {
		return "", "", false
	}
	externalUserID, _ = id.(string)
	if r, exists := c.Get(CtxRole); exists {
		role, _ = r.(string)
	}
	return externalUserID, role, externalUserID != ""
}
