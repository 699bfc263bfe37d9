package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// CodeSuccess 成功时信封中的code
const CodeSuccess = 200

// Response 统一响应结构
// 设计说明：
// 1. HTTP状态码始终为200，Code字段区分成功与各类失败（200/400/404/405/500）
// 2. 列表/详情接口的数据放在具名字段下（order、orders、histories），见Payload
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// Success 成功响应（仅消息）
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
	})
}

// Payload 成功响应，数据挂在field字段下
//
//	response.Payload(c, "", "order", view)
//	// {"code":200,"order":{...}}
func Payload(c *gin.Context, message, field string, data interface{}) {
	body := gin.H{"code": CodeSuccess, field: data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

// Error 错误响应（自动处理AppError）
// 5xx错误的内部细节只写日志，客户端只看到Message。
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Code >= apperrors.ErrCodeInternal {
		zap.L().Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	c.JSON(http.StatusOK, Response{
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BindError 参数绑定失败
func BindError(c *gin.Context, err error) {
	ErrorWithCode(c, apperrors.ErrCodeBadRequest, "参数错误: "+err.Error())
}
