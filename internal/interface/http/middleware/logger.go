package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID 请求ID头
const HeaderRequestID = "X-Request-ID"

// slowRequest 超过该耗时记为慢请求
const slowRequest = 3 * time.Second

// RequestLogger 请求日志中间件
// 1. 沿用上游的X-Request-ID，没有时生成一个
// 2. 请求结束后用zap输出方法、路径、状态、耗时、客户端IP
// 不记录请求体与Authorization头
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if latency > slowRequest {
			zap.L().Warn("slow request", fields...)
			return
		}
		zap.L().Info("request", fields...)
	}
}
