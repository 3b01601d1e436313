package middleware

import (
	"net/http"
	"strings"

	"inkwell/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 验证 token 是否有效，失败则拒绝请求
func AuthMiddleware(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 检查 token 是否在黑名单
		in, _ := session.InBlackList(token)
		if in {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token invalid"})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("device", claims.Device)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer identity when an Authorization
// header is present but lets anonymous requests through. Read endpoints use
// it so visibility and per-viewer flags can be computed for both cases.
func OptionalAuthMiddleware(session *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if in, _ := session.InBlackList(token); in {
			c.Next()
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			// A bad token on a public read degrades to anonymous.
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("device", claims.Device)
		c.Next()
	}
}
