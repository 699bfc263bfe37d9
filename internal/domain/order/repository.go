package order

import (
	"context"
)

// Repository 工单仓储接口
// 事务通过context传递,Create/Update/Delete应在TxManager.Transaction内与HistoryRepository一起调用
type Repository interface {
	// Create 写入新工单并回填ID与IssueAt;序号冲突返回ErrSerialCollision
	Create(ctx context.Context, order *Order) error

	// FindBySN 按序号查询原始工单;不存在返回NotFound(sn)
	FindBySN(ctx context.Context, sn string) (*Order, error)

	// FindBySNForUpdate 同FindBySN,在事务中对该行加写锁,直到事务结束
	FindBySNForUpdate(ctx context.Context, sn string) (*Order, error)

	// Update 以合并后的完整内容覆盖同ID的工单
	Update(ctx context.Context, order *Order) error

	// Delete 删除工单本身(异动记录需先由HistoryRepository删除)
	Delete(ctx context.Context, id uint) error

	// LastID 当前最大工单ID,无工单时为0
	LastID(ctx context.Context) (uint, error)
}

// HistoryRepository 异动记录仓储,只追加
type HistoryRepository interface {
	Append(ctx context.Context, history *History) error
	DeleteByOrderID(ctx context.Context, orderID uint) (int64, error)
}

// QueryRepository 读侧投影
type QueryRepository interface {
	FindViewBySN(ctx context.Context, sn string) (*View, error)
	List(ctx context.Context, filter ListFilter, page Page) ([]*Summary, error)

	// ListHistory 按ChangedAt升序返回
	ListHistory(ctx context.Context, filter HistoryFilter, page Page) ([]*HistoryView, error)

	// SNByStaff 任意一张引用该员工的工单(开单、联络、维修、工程师、异动人)
	SNByStaff(ctx context.Context, userID uint) (string, bool, error)

	// SNByDepartment 任意一张属于该门市的工单
	SNByDepartment(ctx context.Context, departmentID uint) (string, bool, error)
}
