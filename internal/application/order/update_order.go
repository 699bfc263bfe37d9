package order

import (
	"context"
	"time"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/lookup"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/pkg/metrics"
	"github.com/xiebiao/dcare/pkg/tracing"
)

// UpdateOrderUseCase 修改工单用例
// 局部更新: 提供的字段按开单时的规则解析后覆盖，未提供的字段沿用原值。
// SN、开单时间与开单人员不会改变，序号也不会重新生成。
type UpdateOrderUseCase struct {
	refs      *referenceResolver
	orders    order.Repository
	histories order.HistoryRepository
	queries   order.QueryRepository
	events    order.EventPublisher
	txManager TxManager
}

// NewUpdateOrderUseCase 创建修改工单用例
func NewUpdateOrderUseCase(
	lookups lookup.Resolver,
	departments department.Repository,
	users user.Repository,
	orders order.Repository,
	histories order.HistoryRepository,
	queries order.QueryRepository,
	events order.EventPublisher,
	txManager TxManager,
) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{
		refs:      &referenceResolver{lookups: lookups, departments: departments, users: users},
		orders:    orders,
		histories: histories,
		queries:   queries,
		events:    events,
		txManager: txManager,
	}
}

// UpdateOrderResponse 修改结果
type UpdateOrderResponse struct {
	HistoryID uint
	Order     *order.View
}

// Execute 修改序号为sn的工单
func (uc *UpdateOrderUseCase) Execute(ctx context.Context, sn string, actorID uint, in Input) (resp *UpdateOrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateOrder")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOrderOperation("update", start, err)
	}()

	prior, err := uc.orders.FindBySN(ctx, sn)
	if err != nil {
		return nil, err
	}

	patch, err := uc.refs.resolve(ctx, in, prior)
	if err != nil {
		return nil, err
	}

	var (
		o       *order.Order
		history *order.History
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 加锁重读：解析期间被删除的工单返回404，不会留下孤立的异动记录
		locked, err := uc.orders.FindBySNForUpdate(txCtx, sn)
		if err != nil {
			return err
		}
		if err := locked.Apply(patch); err != nil {
			return err
		}
		if err := uc.orders.Update(txCtx, locked); err != nil {
			return err
		}

		h := order.NewHistory(locked, actorID)
		if err := uc.histories.Append(txCtx, h); err != nil {
			return err
		}

		o, history = locked, h
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, order.Event{
		Type:       order.EventUpdated,
		SN:         o.SN,
		HistoryID:  history.ID,
		ActorID:    actorID,
		OccurredAt: history.ChangedAt,
	})

	view, err := uc.queries.FindViewBySN(ctx, o.SN)
	if err != nil {
		return nil, err
	}

	return &UpdateOrderResponse{HistoryID: history.ID, Order: view}, nil
}
