package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/infrastructure/config"
	"github.com/xiebiao/dcare/pkg/circuitbreaker"
	"github.com/xiebiao/dcare/pkg/mq"
)

// MessagePublisher mq.Publisher的发布能力
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// OrderEventPublisher 通过RabbitMQ发布工单事件
// 熔断器打开时直接返回circuitbreaker.ErrOpenState，不等待Broker超时
type OrderEventPublisher struct {
	publisher MessagePublisher
	breaker   *circuitbreaker.CircuitBreaker
	timeout   time.Duration
}

// NewOrderEventPublisher 创建工单事件发布者
func NewOrderEventPublisher(publisher MessagePublisher, breaker *circuitbreaker.CircuitBreaker) *OrderEventPublisher {
	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   breaker,
		timeout:   3 * time.Second,
	}
}

// Publish 发布事件，routing key为事件类型
func (p *OrderEventPublisher) Publish(ctx context.Context, event order.Event) error {
	return p.breaker.Execute(func() error {
		// 请求可能已经结束，发布不跟随请求的取消
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return p.publisher.Publish(pubCtx, event.Type, event)
	})
}

// NoopPublisher mq.enabled为false时使用
type NoopPublisher struct{}

// Publish 只记录调试日志
func (NoopPublisher) Publish(_ context.Context, event order.Event) error {
	zap.L().Debug("MQ未启用，忽略工单事件", zap.String("type", event.Type), zap.String("sn", event.SN))
	return nil
}

// NewEventPublisher 按配置选择实现，返回的cleanup关闭MQ连接
func NewEventPublisher(cfg *config.Config) (order.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil, nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	})

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("关闭MQ连接失败", zap.Error(err))
		}
	}
	return NewOrderEventPublisher(publisher, breaker), cleanup, nil
}
