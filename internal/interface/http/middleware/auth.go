package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
	"github.com/xiebiao/dcare/pkg/jwt"
	"github.com/xiebiao/dcare/pkg/response"
)

// Context中保存当前员工信息的键
const (
	ctxUserID  = "user_id"
	ctxAccount = "account"
	ctxClaims  = "claims"
	ctxToken   = "token"
)

// TokenParser 解析Access Token，由jwt.Manager实现
type TokenParser interface {
	ParseAccessToken(tokenString string) (*jwt.Claims, error)
}

// TokenBlacklist Token黑名单，由redis.SessionStore实现
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性
// 4. 将当前员工注入Context
type AuthMiddleware struct {
	parser    TokenParser
	blacklist TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(parser TokenParser, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		parser:    parser,
		blacklist: blacklist,
	}
}

// RequireActor 要求已登录的员工
// 失败时不会访问数据库:
//   - 缺少或格式错误的Authorization → 400 请先登录
//   - 已登出(黑名单)、过期、无效 → 405
//
// 使用方式：
//
//	orders.POST("", auth.RequireActor(), orderHandler.CreateOrder)
func (m *AuthMiddleware) RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authorization: Bearer <token>
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, apperrors.ErrNotLoggedIn)
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(parts[1])

		revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if revoked {
			response.Error(c, apperrors.ErrTokenRevoked)
			c.Abort()
			return
		}

		claims, err := m.parser.ParseAccessToken(tokenString)
		if err != nil {
			response.Error(c, err) // ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxAccount, claims.Account)
		c.Set(ctxClaims, claims)
		c.Set(ctxToken, tokenString)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetUserID 当前员工ID，未登录时为0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetAccount 当前员工账号
func GetAccount(c *gin.Context) string {
	return c.GetString(ctxAccount)
}

// GetClaims 当前Token的Claims
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, exists := c.Get(ctxClaims); exists {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetToken 当前请求携带的Access Token
func GetToken(c *gin.Context) string {
	return c.GetString(ctxToken)
}

// MustGetUserID 用于已经通过RequireActor的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
