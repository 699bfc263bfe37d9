package lookup

import (
	"context"
	"errors"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// DefaultModel 未填写型号时使用的型号名
const DefaultModel = "unknown"

// ErrNotFound 参照行不存在
var ErrNotFound = errors.New("lookup row not found")

// Resolver 参照表解析(get-or-create)
// 以自然键查询代理ID,不存在时建立新行后返回。
// 同一自然键重复调用总是得到同一个ID。
type Resolver interface {
	// ModelID 机型,自然键为(品牌, 型号)
	ModelID(ctx context.Context, brand, model string) (uint, error)

	// Model 按ID取回(品牌, 型号),不存在返回ErrNotFound
	Model(ctx context.Context, id uint) (brand, model string, err error)

	// AccessoryID 配件,新建时价格为price
	AccessoryID(ctx context.Context, item string, price int64) (uint, error)

	// FaultID 故障,新建时费用为cost
	FaultID(ctx context.Context, item string, cost int64) (uint, error)

	// StatusID 流程状态
	StatusID(ctx context.Context, flow string) (uint, error)

	// TitleID 职称
	TitleID(ctx context.Context, name string) (uint, error)
}

// ResolutionFailed 参照表查询或写入失败
func ResolutionFailed(table string, err error) *apperrors.AppError {
	return apperrors.Wrapf(err, "解析%s失败", table)
}
