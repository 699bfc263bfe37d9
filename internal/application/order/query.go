package order

import (
	"context"

	"github.com/xiebiao/dcare/internal/domain/order"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
	"github.com/xiebiao/dcare/pkg/tracing"
)

// Paginator 分页参数归一化
// offset缺省为0，entries缺省为DefaultEntries且不超过MaxEntries，负数视为调用方错误
type Paginator struct {
	DefaultEntries int
	MaxEntries     int
}

// NewPaginator maxEntries<=0时不设上限
func NewPaginator(defaultEntries, maxEntries int) Paginator {
	return Paginator{DefaultEntries: defaultEntries, MaxEntries: maxEntries}
}

// Page 把查询参数换成order.Page
func (p Paginator) Page(offset, entries *int) (order.Page, error) {
	page := order.Page{Offset: 0, Entries: p.DefaultEntries}
	if offset != nil {
		if *offset < 0 {
			return page, apperrors.BadRequestf("offset不能为负数")
		}
		page.Offset = *offset
	}
	if entries != nil {
		if *entries < 0 {
			return page, apperrors.BadRequestf("entries不能为负数")
		}
		page.Entries = *entries
	}
	if p.MaxEntries > 0 && page.Entries > p.MaxEntries {
		page.Entries = p.MaxEntries
	}
	return page, nil
}

// QueryOrderUseCase 工单读侧查询，不经过参照解析，直接读投影
type QueryOrderUseCase struct {
	orders  order.Repository
	queries order.QueryRepository
}

// NewQueryOrderUseCase 创建工单查询用例
func NewQueryOrderUseCase(orders order.Repository, queries order.QueryRepository) *QueryOrderUseCase {
	return &QueryOrderUseCase{orders: orders, queries: queries}
}

// Get 工单详情
func (uc *QueryOrderUseCase) Get(ctx context.Context, sn string) (view *order.View, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetOrder")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.queries.FindViewBySN(ctx, sn)
}

// List 工单列表，新开的在前
func (uc *QueryOrderUseCase) List(ctx context.Context, filter order.ListFilter, page order.Page) (list []*order.Summary, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListOrders")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.queries.List(ctx, filter, page)
}

// History 单张工单的异动记录，按时间升序；工单不存在时返回404
func (uc *QueryOrderUseCase) History(ctx context.Context, sn string, page order.Page) (list []*order.HistoryView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "OrderHistory")
	defer func() { tracing.EndSpan(span, err) }()

	if _, err := uc.orders.FindBySN(ctx, sn); err != nil {
		return nil, err
	}
	return uc.queries.ListHistory(ctx, order.HistoryFilter{SN: sn}, page)
}

// ListHistory 跨工单的异动记录
func (uc *QueryOrderUseCase) ListHistory(ctx context.Context, filter order.HistoryFilter, page order.Page) (list []*order.HistoryView, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListHistory")
	defer func() { tracing.EndSpan(span, err) }()

	return uc.queries.ListHistory(ctx, filter, page)
}
