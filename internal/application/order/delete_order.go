package order

import (
	"context"
	"time"

	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/pkg/metrics"
	"github.com/xiebiao/dcare/pkg/tracing"
)

// DeleteOrderUseCase 删除工单用例
// 先删异动记录再删工单，两步在同一个事务里；删除是永久的，没有软删除。
type DeleteOrderUseCase struct {
	orders    order.Repository
	histories order.HistoryRepository
	events    order.EventPublisher
	txManager TxManager
	now       func() time.Time
}

// NewDeleteOrderUseCase 创建删除工单用例
func NewDeleteOrderUseCase(
	orders order.Repository,
	histories order.HistoryRepository,
	events order.EventPublisher,
	txManager TxManager,
) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orders:    orders,
		histories: histories,
		events:    events,
		txManager: txManager,
		now:       time.Now,
	}
}

// Execute 删除序号为sn的工单，返回一并删除的异动记录笔数
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, sn string, actorID uint) (removed int64, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteOrder")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOrderOperation("delete", start, err)
	}()

	var deleted *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orders.FindBySNForUpdate(txCtx, sn)
		if err != nil {
			return err
		}
		n, err := uc.histories.DeleteByOrderID(txCtx, o.ID)
		if err != nil {
			return err
		}
		if err := uc.orders.Delete(txCtx, o.ID); err != nil {
			return err
		}
		removed, deleted = n, o
		return nil
	})
	if err != nil {
		return 0, err
	}

	publish(ctx, uc.events, order.Event{
		Type:       order.EventDeleted,
		SN:         deleted.SN,
		ActorID:    actorID,
		OccurredAt: uc.now().UTC(),
	})
	return removed, nil
}
