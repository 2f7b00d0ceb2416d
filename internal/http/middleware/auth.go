package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	userIDKey   = "user_id"
	userRoleKey = "userRole"
)

// RequireAuth validates the bearer token and stores user_id/userRole in the
// gin context for downstream handlers.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		uid, ok := claims["user_id"].(float64)
		if !ok || uid <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(userIDKey, int64(uid))
		c.Set(userRoleKey, role)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Assumes RequireAuth ran first.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := strings.ToLower(strings.TrimSpace(c.GetString(userRoleKey)))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized: role missing from context"})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: role not allowed"})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, 0 when unauthenticated.
func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// CurrentUserRole returns the authenticated role, "" when unauthenticated.
func CurrentUserRole(c *gin.Context) string {
	return c.GetString(userRoleKey)
}
