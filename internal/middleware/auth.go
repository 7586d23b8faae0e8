package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shorturl-platform/internal/model"
	auth "shorturl-platform/pkg/jwt"
)

// 上下文中保存用户信息的键
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware(jwtManager *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "缺少认证令牌")
			return
		}

		// 提取Bearer token
		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || scheme != "Bearer" || tokenString == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "认证格式错误")
			return
		}

		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", "无效的认证令牌")
			return
		}

		// 将用户信息存入上下文
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != model.RoleAdmin {
			abort(c, http.StatusForbidden, "forbidden", "需要管理员权限")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": message})
}
