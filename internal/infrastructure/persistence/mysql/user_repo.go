package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/user"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// userRepository 员工仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如账号重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建员工仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建员工
// 账号唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT）
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Account:      u.Account,
		Password:     u.Password,
		Username:     u.Username,
		Phone:        u.Phone,
		Email:        u.Email,
		DepartmentID: u.DepartmentID,
		TitleID:      u.TitleID,
		Permission:   uint8(u.Permission),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrAccountDuplicate
		}
		return apperrors.Wrap(err, "创建员工失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找员工
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询员工失败")
	}
	return toUserEntity(&model), nil
}

// FindByAccount 根据账号查找员工(账号有UNIQUE索引)
func (r *userRepository) FindByAccount(ctx context.Context, account string) (*user.User, error) {
	var model UserModel
	err := getDB(ctx, r.db).Where("account = ?", account).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询员工失败")
	}
	return toUserEntity(&model), nil
}

// UpdateLoginAt 更新最近登录时间
func (r *userRepository) UpdateLoginAt(ctx context.Context, id uint, at time.Time) error {
	result := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Update("login_at", at)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新登录时间失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

const profileColumns = `u.id, u.account, u.username, u.phone, u.email,
COALESCE(d.shorten, '') AS department,
COALESCE(t.name, '') AS title,
u.permission, u.created_at, u.login_at`

type profileRow struct {
	ID         uint
	Account    string
	Username   string
	Phone      string
	Email      string
	Department string
	Title      string
	Permission uint8
	CreatedAt  time.Time
	LoginAt    *time.Time
}

func (r *userRepository) profiles(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).Table("users AS u").
		Select(profileColumns).
		Joins("LEFT JOIN departments d ON d.id = u.department_id").
		Joins("LEFT JOIN titles t ON t.id = u.title_id")
}

// FindProfile 按账号取资料投影
func (r *userRepository) FindProfile(ctx context.Context, account string) (*user.Profile, error) {
	var rows []profileRow
	err := r.profiles(ctx).Where("u.account = ?", account).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询员工失败")
	}
	if len(rows) == 0 {
		return nil, user.ErrUserNotFound
	}
	return toProfile(&rows[0]), nil
}

// List 员工列表
func (r *userRepository) List(ctx context.Context, filter user.ListFilter, offset, entries int) ([]*user.Profile, error) {
	if entries == 0 {
		return []*user.Profile{}, nil
	}

	query := r.profiles(ctx)
	if filter.Department != "" {
		query = query.Where("d.shorten = ?", filter.Department)
	}
	if filter.Username != "" {
		query = query.Where("u.username = ?", filter.Username)
	}
	if filter.Title != "" {
		query = query.Where("t.name = ?", filter.Title)
	}
	if filter.Email != "" {
		query = query.Where("u.email = ?", filter.Email)
	}
	if filter.Phone != "" {
		query = query.Where("u.phone = ?", filter.Phone)
	}

	var rows []profileRow
	err := query.Order("u.id ASC").Offset(offset).Limit(entries).Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询员工列表失败")
	}

	list := make([]*user.Profile, len(rows))
	for i := range rows {
		list[i] = toProfile(&rows[i])
	}
	return list, nil
}

// AccountByDepartment 任意一位属于该门市的员工
func (r *userRepository) AccountByDepartment(ctx context.Context, departmentID uint) (string, bool, error) {
	var accounts []string
	err := getDB(ctx, r.db).Model(&UserModel{}).
		Where("department_id = ?", departmentID).
		Order("id").
		Limit(1).
		Pluck("account", &accounts).Error
	if err != nil {
		return "", false, apperrors.Wrap(err, "查询门市员工失败")
	}
	if len(accounts) == 0 {
		return "", false, nil
	}
	return accounts[0], true, nil
}

// UpdatePermission 更新权限位
func (r *userRepository) UpdatePermission(ctx context.Context, id uint, perm user.Permission) error {
	result := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Update("permission", uint8(perm))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新权限失败")
	}
	return nil
}

// HasAdmin 任一员工带管理员位
func (r *userRepository) HasAdmin(ctx context.Context) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&UserModel{}).
		Where("permission & ? <> 0", uint8(user.PermAdmin)).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询管理员失败")
	}
	return count > 0, nil
}

// Delete 删除员工
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&UserModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除员工失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func toProfile(row *profileRow) *user.Profile {
	return &user.Profile{
		ID:         row.ID,
		Account:    row.Account,
		Username:   row.Username,
		Phone:      row.Phone,
		Email:      row.Email,
		Department: row.Department,
		Title:      row.Title,
		Permission: user.Permission(row.Permission),
		CreatedAt:  row.CreatedAt,
		LoginAt:    row.LoginAt,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:           model.ID,
		Account:      model.Account,
		Password:     model.Password,
		Username:     model.Username,
		Phone:        model.Phone,
		Email:        model.Email,
		DepartmentID: model.DepartmentID,
		TitleID:      model.TitleID,
		Permission:   user.Permission(model.Permission),
		CreatedAt:    model.CreatedAt,
		LoginAt:      model.LoginAt,
	}
}
