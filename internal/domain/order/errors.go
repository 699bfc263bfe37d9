package order

import (
	"errors"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// ErrNotFound 工单不存在(用errors.Is判断)
var ErrNotFound = errors.New("order not found")

// 工单领域错误定义
var (
	// ErrSerialCollision 序号与既有工单冲突(并发创建),不自动重试
	ErrSerialCollision = apperrors.New(apperrors.ErrCodeInternal, "工单序号冲突,请重新提交")

	// ErrCustomerPhoneRequired 客户电话必填
	ErrCustomerPhoneRequired = apperrors.New(apperrors.ErrCodeBadRequest, "customer_phone不能为空")

	// ErrStatusRequired 新工单必须带状态
	ErrStatusRequired = apperrors.New(apperrors.ErrCodeBadRequest, "status不能为空")
)

// NotFound 指定序号的工单不存在
func NotFound(sn string) *apperrors.AppError {
	e := apperrors.NotFoundf("工单不存在: %s", sn)
	e.Err = ErrNotFound
	return e
}
