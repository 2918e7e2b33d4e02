package middleware

import (
	"context"
	"strings"

	"postflow/internal/pkg/redis"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxGuest  = "guest"
	CtxToken  = "token"
)

// AuthMiddleware 验证 JWT（含黑名单检查）并把用户身份注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		// 登出过的令牌在黑名单里
		value, err := redis.GetValue(c.Request.Context(), signature)
		if err != nil {
			response.Fail(c, response.InternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxGuest, claims.Guest)
		c.Set(CtxToken, tokenString)

		newCtx := context.WithValue(c.Request.Context(), CtxUserID, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// SessionUser 从 Context 取出当前会话身份
func SessionUser(c *gin.Context) (string, bool) {
	return c.GetString(CtxUserID), c.GetBool(CtxGuest)
}
