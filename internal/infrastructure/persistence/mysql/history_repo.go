package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/order"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// historyRepository 异动记录仓储，只追加
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建异动记录仓储
func NewHistoryRepository(db *gorm.DB) order.HistoryRepository {
	return &historyRepository{db: db}
}

// Append 追加一笔异动记录，回填ID与ChangedAt
func (r *historyRepository) Append(ctx context.Context, h *order.History) error {
	model := &OrderHistoryModel{
		OrderID:  h.OrderID,
		IssuerID: h.IssuerID,
		StatusID: h.StatusID,
		Remark:   h.Remark,
		Cost:     h.Cost,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "写入异动记录失败")
	}
	h.ID = model.ID
	h.ChangedAt = model.ChangedAt
	return nil
}

// DeleteByOrderID 删除工单的全部异动记录，返回删除笔数
func (r *historyRepository) DeleteByOrderID(ctx context.Context, orderID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("order_id = ?", orderID).Delete(&OrderHistoryModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除异动记录失败")
	}
	return result.RowsAffected, nil
}
