package errors

import (
	"errors"
	"fmt"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code写入响应信封的code字段，取值与HTTP语义一致（200/400/404/405/500）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// NotFoundf 资源不存在，消息中需要带上缺失的键
func NotFoundf(format string, args ...interface{}) *AppError {
	return Newf(ErrCodeNotFound, format, args...)
}

// BadRequestf 调用方错误
func BadRequestf(format string, args ...interface{}) *AppError {
	return Newf(ErrCodeBadRequest, format, args...)
}

// =========================================
// 错误码定义
// =========================================
// 响应信封沿用旧版dcare接口的约定：code与HTTP状态码同义，
// 但传输层始终返回200。

const (
	ErrCodeBadRequest       = 400 // 调用方错误（参数、未登录、引用校验失败）
	ErrCodeNotFound         = 404 // 资源不存在
	ErrCodePermissionDenied = 405 // 无权限（Token失效、被吊销）
	ErrCodeInternal         = 500 // 服务端错误（数据库、外部服务）
)

var (
	ErrInternal = New(ErrCodeInternal, "系统内部错误")

	// 认证授权
	ErrNotLoggedIn     = New(ErrCodeBadRequest, "请先登录")
	ErrInvalidToken    = New(ErrCodePermissionDenied, "无效的Token")
	ErrTokenExpired    = New(ErrCodePermissionDenied, "Token已过期")
	ErrTokenRevoked    = New(ErrCodePermissionDenied, "Token已失效，请重新登录")
	ErrInvalidPassword = New(ErrCodeBadRequest, "账号或密码错误")

	// 参数错误
	ErrInvalidParams = New(ErrCodeBadRequest, "参数错误")
	ErrBindError     = New(ErrCodeBadRequest, "参数格式错误")
)

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// CodeOf 返回错误对应的信封code
func CodeOf(err error) int {
	return GetAppError(err).Code
}
