package user

import (
	"context"
	"time"
)

// Repository 员工仓储接口
type Repository interface {
	// Create 创建员工，账号重复返回ErrAccountDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找员工
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByAccount 账号精确匹配，不存在返回ErrUserNotFound
	FindByAccount(ctx context.Context, account string) (*User, error)

	// UpdateLoginAt 更新最近登录时间
	UpdateLoginAt(ctx context.Context, id uint, at time.Time) error

	// FindProfile 按账号取资料投影
	FindProfile(ctx context.Context, account string) (*Profile, error)

	// List 按ID升序，entries为0时返回空
	List(ctx context.Context, filter ListFilter, offset, entries int) ([]*Profile, error)

	// AccountByDepartment 任意一位属于该门市的员工账号
	AccountByDepartment(ctx context.Context, departmentID uint) (string, bool, error)

	// UpdatePermission 更新权限位
	UpdatePermission(ctx context.Context, id uint, perm Permission) error

	// HasAdmin 是否已有管理员
	HasAdmin(ctx context.Context) (bool, error)

	// Delete 删除员工，不存在返回ErrUserNotFound
	Delete(ctx context.Context, id uint) error
}
