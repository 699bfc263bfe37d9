package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/pkg/jwt"
)

// SessionStore 会话存储端口，由redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 员工登录用例
// 设计说明：
// 1. 验证账号密码(同时更新最近登录时间)
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Login(ctx, req.Account, req.Password)
	if err != nil {
		return nil, err
	}

	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Account, u.Username)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"account":  u.Account,
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       req.IP,
	}

	// 会话有效期 = Refresh Token有效期
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.RefreshTokenExpire()); err != nil {
		// 会话保存失败不影响登录，只是之后无法刷新Token
		zap.L().Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         *newStaffInfo(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LoginRequest 登录请求
type LoginRequest struct {
	Account  string
	Password string
	IP       string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         StaffInfo `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
}

// LogoutUseCase 员工登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 删除会话并把当前Access Token加入黑名单(过期时间取Token剩余有效期)
func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims, token string) error {
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, token, uc.jwtManager.RemainingTTL(claims))
}
