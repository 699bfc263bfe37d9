package department

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// Department 门市/部门
// Shorten是2-3位的门市代码,既是查询键也是工单序号的前缀。
type Department struct {
	ID        uint
	Shorten   string
	StoreName string
	Owner     string
	Telephone string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter 门市列表筛选条件，全部精确匹配
type ListFilter struct {
	Shorten   string
	StoreName string
	Owner     string
	Telephone string
}

// ErrNotFound 门市不存在(用errors.Is判断)
var ErrNotFound = errors.New("department not found")

// NotFound 指定代码的门市不存在
func NotFound(shorten string) *apperrors.AppError {
	e := apperrors.NotFoundf("门市不存在: %s", shorten)
	e.Err = ErrNotFound
	return e
}

// ErrShortenDuplicate 门市代码已存在
var ErrShortenDuplicate = apperrors.New(apperrors.ErrCodeBadRequest, "门市代码已存在")

// Repository 门市存取契约
// 两种解析方式不能混用:
//   - FindIDByShorten 严格查询,不存在时返回NotFound,用于工单(门市必须事先建立)
//   - ResolveOrCreate 不存在时建立,用于管理端登记员工
type Repository interface {
	FindIDByShorten(ctx context.Context, shorten string) (uint, error)
	ResolveOrCreate(ctx context.Context, shorten string) (uint, error)
	ShortenByID(ctx context.Context, id uint) (string, error)

	// FindByShorten 完整资料，不存在返回NotFound
	FindByShorten(ctx context.Context, shorten string) (*Department, error)
	// List 按ID升序，entries为0时返回空
	List(ctx context.Context, filter ListFilter, offset, entries int) ([]*Department, error)
	// Create 代码重复返回ErrShortenDuplicate
	Create(ctx context.Context, d *Department) error
	// Update 按ID更新代码以外的字段
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id uint) error
}
