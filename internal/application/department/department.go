package department

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// UseCase 门市管理
// 门市代码建立后不可修改(它是工单序号的前缀)；仍有员工或工单引用的门市不能删除。
type UseCase struct {
	departments department.Repository
	users       user.Repository
	orders      order.QueryRepository
}

// NewUseCase 创建门市管理用例
func NewUseCase(departments department.Repository, users user.Repository, orders order.QueryRepository) *UseCase {
	return &UseCase{departments: departments, users: users, orders: orders}
}

// Request 建立或修改门市
// 修改时Shorten取自路径，请求体里的值被忽略
type Request struct {
	Shorten   string
	StoreName string
	Owner     string
	Telephone string
	Address   string
}

// Info 门市资料
type Info struct {
	ID        uint   `json:"id"`
	Shorten   string `json:"shorten"`
	StoreName string `json:"store_name"`
	Owner     string `json:"owner"`
	Telephone string `json:"telephone"`
	Address   string `json:"address"`
}

func newInfo(d *department.Department) *Info {
	return &Info{
		ID:        d.ID,
		Shorten:   d.Shorten,
		StoreName: d.StoreName,
		Owner:     d.Owner,
		Telephone: d.Telephone,
		Address:   d.Address,
	}
}

// Create 建立门市，代码重复返回400
func (uc *UseCase) Create(ctx context.Context, req Request, actorID uint) (*Info, error) {
	shorten := strings.TrimSpace(req.Shorten)
	if shorten == "" {
		return nil, apperrors.BadRequestf("门市代码不能为空")
	}

	d := &department.Department{
		Shorten:   shorten,
		StoreName: strings.TrimSpace(req.StoreName),
		Owner:     strings.TrimSpace(req.Owner),
		Telephone: strings.TrimSpace(req.Telephone),
		Address:   strings.TrimSpace(req.Address),
	}
	if err := uc.departments.Create(ctx, d); err != nil {
		return nil, err
	}

	zap.L().Info("门市已建立", zap.String("shorten", d.Shorten), zap.Uint("actor_id", actorID))
	return newInfo(d), nil
}

// Get 按代码查询
func (uc *UseCase) Get(ctx context.Context, shorten string) (*Info, error) {
	d, err := uc.departments.FindByShorten(ctx, shorten)
	if err != nil {
		return nil, err
	}
	return newInfo(d), nil
}

// List 门市列表，按ID升序
func (uc *UseCase) List(ctx context.Context, filter department.ListFilter, offset, entries int) ([]*Info, error) {
	list, err := uc.departments.List(ctx, filter, offset, entries)
	if err != nil {
		return nil, err
	}
	infos := make([]*Info, len(list))
	for i, d := range list {
		infos[i] = newInfo(d)
	}
	return infos, nil
}

// Update 整笔覆盖代码以外的字段
func (uc *UseCase) Update(ctx context.Context, shorten string, req Request, actorID uint) (*Info, error) {
	d, err := uc.departments.FindByShorten(ctx, shorten)
	if err != nil {
		return nil, err
	}

	d.StoreName = strings.TrimSpace(req.StoreName)
	d.Owner = strings.TrimSpace(req.Owner)
	d.Telephone = strings.TrimSpace(req.Telephone)
	d.Address = strings.TrimSpace(req.Address)
	if err := uc.departments.Update(ctx, d); err != nil {
		return nil, err
	}

	zap.L().Info("门市已修改", zap.String("shorten", d.Shorten), zap.Uint("actor_id", actorID))
	return newInfo(d), nil
}

// Delete 删除门市
// 1. 不存在 → 404
// 2. 仍有员工属于该门市 → 400
// 3. 仍有工单属于该门市 → 400
func (uc *UseCase) Delete(ctx context.Context, shorten string, actorID uint) error {
	d, err := uc.departments.FindByShorten(ctx, shorten)
	if err != nil {
		return err
	}

	account, ok, err := uc.users.AccountByDepartment(ctx, d.ID)
	if err != nil {
		return err
	}
	if ok {
		return apperrors.BadRequestf("门市仍被员工引用: user/%s", account)
	}

	sn, ok, err := uc.orders.SNByDepartment(ctx, d.ID)
	if err != nil {
		return err
	}
	if ok {
		return apperrors.BadRequestf("门市仍被工单引用: order/%s", sn)
	}

	if err := uc.departments.Delete(ctx, d.ID); err != nil {
		return err
	}

	zap.L().Info("门市已删除", zap.String("shorten", d.Shorten), zap.Uint("actor_id", actorID))
	return nil
}
