package user

import (
	"context"

	"github.com/xiebiao/dcare/internal/domain/user"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
	"github.com/xiebiao/dcare/pkg/jwt"
)

// MeUseCase 当前登录员工
type MeUseCase struct {
	users user.Repository
}

// NewMeUseCase 创建查询当前员工用例
func NewMeUseCase(users user.Repository) *MeUseCase {
	return &MeUseCase{users: users}
}

// Execute 按Token中的员工ID查询
func (uc *MeUseCase) Execute(ctx context.Context, userID uint) (*StaffInfo, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return newStaffInfo(u), nil
}

// RefreshTokenUseCase 用Refresh Token换发Access Token
// 会话已删除(登出)时拒绝换发
type RefreshTokenUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建换发Token用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// RefreshTokenResponse 换发结果
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Execute 执行换发
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshTokenResponse, error) {
	claims, err := uc.jwtManager.ParseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, apperrors.ErrInvalidToken
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		return nil, err
	}

	accessToken, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshTokenResponse{AccessToken: accessToken}, nil
}
