package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kyliee2004/sems-backend/pkg/jwt"
	"github.com/Kyliee2004/sems-backend/pkg/redis"
	"github.com/Kyliee2004/sems-backend/pkg/response"
)

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 已注销（黑名单）的 jti 一律拒绝
func JWTAuth(jwtMgr *jwt.Manager, cache *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "Token 类型无效")
			c.Abort()
			return
		}

		blacklisted, err := cache.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil || blacklisted {
			response.Unauthorized(c, 10002, "Token 已注销")
			c.Abort()
			return
		}

		// 将账户信息注入上下文
		c.Set("account_id", claims.AccountID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前账户是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "未认证")
			c.Abort()
			return
		}

		accountRole := role.(string)
		for _, r := range allowedRoles {
			if accountRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "无权限访问")
		c.Abort()
	}
}
