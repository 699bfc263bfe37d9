package order

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/lookup"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/pkg/metrics"
	"github.com/xiebiao/dcare/pkg/tracing"
)

const tracerName = "dcare/application/order"

// CreateOrderUseCase 开立工单用例
// 流程:
//  1. 解析员工、门市与各参照表(事务外，失败时不写任何工单数据)
//  2. 事务内: 生成序号 → 写入工单 → 追加第一笔异动记录
//  3. 提交后发布order.created事件(失败只记日志)
type CreateOrderUseCase struct {
	refs      *referenceResolver
	orders    order.Repository
	histories order.HistoryRepository
	queries   order.QueryRepository
	serials   *order.SerialGenerator
	events    order.EventPublisher
	txManager TxManager
}

// NewCreateOrderUseCase 创建开单用例
func NewCreateOrderUseCase(
	lookups lookup.Resolver,
	departments department.Repository,
	users user.Repository,
	orders order.Repository,
	histories order.HistoryRepository,
	queries order.QueryRepository,
	serials *order.SerialGenerator,
	events order.EventPublisher,
	txManager TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		refs:      &referenceResolver{lookups: lookups, departments: departments, users: users},
		orders:    orders,
		histories: histories,
		queries:   queries,
		serials:   serials,
		events:    events,
		txManager: txManager,
	}
}

// CreateOrderResponse 开单结果
type CreateOrderResponse struct {
	OrderID   uint
	HistoryID uint
	Order     *order.View
}

// Execute 以actorID(当前登录员工)的身份开单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, actorID uint, in Input) (resp *CreateOrderResponse, err error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveOrderOperation("create", start, err)
	}()

	if err := in.validateCreate(); err != nil {
		return nil, err
	}

	patch, err := uc.refs.resolve(ctx, in, nil)
	if err != nil {
		return nil, err
	}

	var (
		created *order.Order
		history *order.History
	)
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		sn, err := uc.serials.Generate(txCtx, patch.DepartmentID)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(sn, actorID, patch)
		if err != nil {
			return err
		}
		if err := uc.orders.Create(txCtx, o); err != nil {
			return err
		}

		h := order.NewHistory(o, actorID)
		if err := uc.histories.Append(txCtx, h); err != nil {
			return err
		}

		created, history = o, h
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, order.Event{
		Type:       order.EventCreated,
		SN:         created.SN,
		HistoryID:  history.ID,
		ActorID:    actorID,
		OccurredAt: created.IssueAt,
	})

	view, err := uc.queries.FindViewBySN(ctx, created.SN)
	if err != nil {
		return nil, err
	}

	return &CreateOrderResponse{
		OrderID:   created.ID,
		HistoryID: history.ID,
		Order:     view,
	}, nil
}

// publish 事务已提交，发布失败不影响结果
func publish(ctx context.Context, events order.EventPublisher, event order.Event) {
	if err := events.Publish(ctx, event); err != nil {
		zap.L().Warn("发布工单事件失败",
			zap.String("type", event.Type),
			zap.String("sn", event.SN),
			zap.String("trace_id", tracing.ExtractTraceID(ctx)),
			zap.Error(err),
		)
	}
}
