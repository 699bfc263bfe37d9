package user

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/lookup"
	"github.com/xiebiao/dcare/internal/domain/user"
)

// RegisterUseCase 登记员工用例
// 设计说明：
// 1. 门市以代码登记，不存在时自动建立(与开单时的严格查询不同)
// 2. 职称走参照表get-or-create
// 3. 账号格式、密码强度与加密由领域服务负责
// 4. 校验在写入任何参照资料之前完成
type RegisterUseCase struct {
	userService user.Service
	departments department.Repository
	lookups     lookup.Resolver
}

// NewRegisterUseCase 创建登记用例
func NewRegisterUseCase(
	userService user.Service,
	departments department.Repository,
	lookups lookup.Resolver,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		departments: departments,
		lookups:     lookups,
	}
}

// Execute 执行登记
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*StaffInfo, error) {
	params := user.RegisterParams{
		Account:    strings.TrimSpace(req.Account),
		Password:   req.Password,
		Username:   strings.TrimSpace(req.Username),
		Phone:      req.Phone,
		Email:      req.Email,
	}

	// 先校验再建立门市与职称，登记失败不留下参照资料
	if err := uc.userService.CheckRegistration(ctx, params); err != nil {
		return nil, err
	}

	if shorten := strings.TrimSpace(req.Department); shorten != "" {
		id, err := uc.departments.ResolveOrCreate(ctx, shorten)
		if err != nil {
			return nil, err
		}
		params.DepartmentID = &id
	}

	if title := strings.TrimSpace(req.Title); title != "" {
		id, err := uc.lookups.TitleID(ctx, title)
		if err != nil {
			return nil, err
		}
		params.TitleID = &id
	}

	u, err := uc.userService.Register(ctx, params)
	if err != nil {
		return nil, err
	}

	return newStaffInfo(u), nil
}

// =========================================
// 应用层DTO
// =========================================

// RegisterRequest 登记请求
type RegisterRequest struct {
	Account    string
	Password   string
	Username   string
	Phone      string
	Email      string
	Department string // 门市代码
	Title      string
}

// StaffInfo 员工信息
// 说明：不返回密码字段
type StaffInfo struct {
	ID       uint       `json:"id"`
	Account  string     `json:"account"`
	Username string     `json:"username"`
	Phone    string     `json:"phone,omitempty"`
	Email    string     `json:"email,omitempty"`
	Role     string     `json:"role"`
	LoginAt  *time.Time `json:"login_at,omitempty"`
}

func newStaffInfo(u *user.User) *StaffInfo {
	return &StaffInfo{
		ID:       u.ID,
		Account:  u.Account,
		Username: u.Username,
		Phone:    u.Phone,
		Email:    u.Email,
		Role:     string(u.Permission.Role()),
		LoginAt:  u.LoginAt,
	}
}
