package order

import (
	"context"
	"time"
)

// 工单事件类型(同时用作MQ routing key)
const (
	EventCreated = "order.created"
	EventUpdated = "order.updated"
	EventDeleted = "order.deleted"
)

// Event 工单已提交的变更
// 事务提交后才发布，发布失败不影响工单本身
type Event struct {
	Type       string    `json:"type"`
	SN         string    `json:"sn"`
	HistoryID  uint      `json:"history_id,omitempty"`
	ActorID    uint      `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 工单事件发布端口
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
