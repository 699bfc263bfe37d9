package user

import (
	"errors"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// ErrNotFound 员工不存在(用errors.Is判断)
var ErrNotFound = errors.New("user not found")

var (
	// ErrUserNotFound 员工不存在
	ErrUserNotFound = &apperrors.AppError{Code: apperrors.ErrCodeNotFound, Message: "员工不存在", Err: ErrNotFound}

	// ErrAccountDuplicate 账号已存在
	ErrAccountDuplicate = apperrors.New(apperrors.ErrCodeBadRequest, "账号已存在")

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeBadRequest, "密码强度不足（需8-20位，包含字母和数字）")

	// ErrInvalidAccount 账号格式不正确
	ErrInvalidAccount = apperrors.New(apperrors.ErrCodeBadRequest, "账号格式不正确（3-50位字母、数字、._-）")
)
