package mysql

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/dcare/internal/domain/order"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// orderRepository 工单仓储实现(MySQL)
// 1. 写入类方法必须在事务中调用(通过getDB从context获取事务DB)
// 2. sn、issue_at、issuer_id创建后不再更新
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建工单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建工单
// 序号唯一索引冲突说明有并发创建拿到了同一个序号，直接返回ErrSerialCollision
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrSerialCollision
		}
		return apperrors.Wrap(err, "创建工单失败")
	}

	o.ID = model.ID
	o.IssueAt = model.IssueAt
	return nil
}

// FindBySN 根据序号查找工单
func (r *orderRepository) FindBySN(ctx context.Context, sn string) (*order.Order, error) {
	return findOrderBySN(getDB(ctx, r.db), sn)
}

// FindBySNForUpdate SELECT ... FOR UPDATE，必须在事务中调用才有意义
func (r *orderRepository) FindBySNForUpdate(ctx context.Context, sn string) (*order.Order, error) {
	return findOrderBySN(getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), sn)
}

func findOrderBySN(db *gorm.DB, sn string) (*order.Order, error) {
	var model OrderModel
	err := db.Where("sn = ?", sn).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.NotFound(sn)
		}
		return nil, apperrors.Wrap(err, "查询工单失败")
	}
	return toOrderEntity(&model), nil
}

// Update 覆盖可修改的字段
// Select("*")保证零值也会写入(例如费用改为0)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	err := getDB(ctx, r.db).Model(model).
		Select("*").
		Omit("id", "sn", "issue_at", "issuer_id").
		Updates(model).Error
	if err != nil {
		return apperrors.Wrap(err, "更新工单失败")
	}
	return nil
}

// Delete 删除工单
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&OrderModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除工单失败")
	}
	if result.RowsAffected == 0 {
		return order.NotFound(strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// LastID 当前最大工单ID
func (r *orderRepository) LastID(ctx context.Context) (uint, error) {
	var id uint
	err := getDB(ctx, r.db).Model(&OrderModel{}).Select("COALESCE(MAX(id), 0)").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:              o.ID,
		SN:              o.SN,
		IssueAt:         o.IssueAt,
		IssuerID:        o.IssuerID,
		DepartmentID:    o.DepartmentID,
		ContactID:       o.ContactID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		ModelID:         o.ModelID,
		PurchaseAt:      o.PurchaseAt,
		AccessoryID1:    o.AccessoryID1,
		AccessoryID2:    o.AccessoryID2,
		AccessoryOther:  o.AccessoryOther,
		Appearance:      uint8(o.Appearance),
		AppearanceOther: o.AppearanceOther,
		Service:         o.Service,
		FaultID1:        o.FaultID1,
		FaultID2:        o.FaultID2,
		FaultOther:      o.FaultOther,
		PhotoURL:        o.PhotoURL,
		Remark:          o.Remark,
		Cost:            o.Cost,
		PrepaidFree:     o.PrepaidFree,
		StatusID:        o.StatusID,
		ServicerID:      o.ServicerID,
		MaintainerID:    o.MaintainerID,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:              model.ID,
		SN:              model.SN,
		IssueAt:         model.IssueAt,
		IssuerID:        model.IssuerID,
		DepartmentID:    model.DepartmentID,
		ContactID:       model.ContactID,
		CustomerName:    model.CustomerName,
		CustomerPhone:   model.CustomerPhone,
		CustomerAddress: model.CustomerAddress,
		ModelID:         model.ModelID,
		PurchaseAt:      model.PurchaseAt,
		AccessoryID1:    model.AccessoryID1,
		AccessoryID2:    model.AccessoryID2,
		AccessoryOther:  model.AccessoryOther,
		Appearance:      order.Appearance(model.Appearance),
		AppearanceOther: model.AppearanceOther,
		Service:         model.Service,
		FaultID1:        model.FaultID1,
		FaultID2:        model.FaultID2,
		FaultOther:      model.FaultOther,
		PhotoURL:        model.PhotoURL,
		Remark:          model.Remark,
		Cost:            model.Cost,
		PrepaidFree:     model.PrepaidFree,
		StatusID:        model.StatusID,
		ServicerID:      model.ServicerID,
		MaintainerID:    model.MaintainerID,
	}
}
