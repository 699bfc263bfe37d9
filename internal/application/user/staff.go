package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/domain/user"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// StaffUseCase 员工资料查询与删除
// 删除顺序:
// 1. 目标不存在 → 404
// 2. 仍被工单引用 → 400
// 3. 无权管理目标(CanManage) → 405
// 4. 删除后清掉目标的会话，失败只记日志
type StaffUseCase struct {
	userService  user.Service
	users        user.Repository
	orders       order.QueryRepository
	sessionStore SessionStore
}

// NewStaffUseCase 创建员工管理用例
func NewStaffUseCase(
	userService user.Service,
	users user.Repository,
	orders order.QueryRepository,
	sessionStore SessionStore,
) *StaffUseCase {
	return &StaffUseCase{
		userService:  userService,
		users:        users,
		orders:       orders,
		sessionStore: sessionStore,
	}
}

// Get 单个员工资料
func (uc *StaffUseCase) Get(ctx context.Context, account string) (*StaffProfile, error) {
	p, err := uc.users.FindProfile(ctx, account)
	if err != nil {
		return nil, err
	}
	return newStaffProfile(p), nil
}

// List 员工列表，按ID升序
func (uc *StaffUseCase) List(ctx context.Context, filter user.ListFilter, offset, entries int) ([]*StaffProfile, error) {
	list, err := uc.users.List(ctx, filter, offset, entries)
	if err != nil {
		return nil, err
	}
	profiles := make([]*StaffProfile, len(list))
	for i, p := range list {
		profiles[i] = newStaffProfile(p)
	}
	return profiles, nil
}

// Delete actorID删除账号为account的员工
func (uc *StaffUseCase) Delete(ctx context.Context, account string, actorID uint) error {
	target, err := uc.users.FindByAccount(ctx, account)
	if err != nil {
		return err
	}

	sn, referenced, err := uc.orders.SNByStaff(ctx, target.ID)
	if err != nil {
		return err
	}
	if referenced {
		return apperrors.BadRequestf("员工仍被工单引用: order/%s", sn)
	}

	actor, err := uc.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !user.CanManage(actor, target) {
		zap.L().Warn("无权删除员工",
			zap.String("actor", actor.Account),
			zap.String("actor_role", string(actor.Permission.Role())),
			zap.String("target", target.Account),
			zap.String("target_role", string(target.Permission.Role())),
		)
		return user.ErrPermissionDenied
	}

	if err := uc.users.Delete(ctx, target.ID); err != nil {
		return err
	}

	if err := uc.sessionStore.DeleteSession(ctx, target.ID); err != nil {
		zap.L().Warn("删除会话失败", zap.Uint("user_id", target.ID), zap.Error(err))
	}
	return nil
}

// AssignRole actorID把account的角色改为role
func (uc *StaffUseCase) AssignRole(ctx context.Context, account, role string, actorID uint) (*StaffProfile, error) {
	target, err := uc.users.FindByAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	actor, err := uc.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := uc.userService.AssignRole(ctx, actor, target, user.Role(role)); err != nil {
		return nil, err
	}

	zap.L().Info("员工角色变更",
		zap.String("actor", actor.Account),
		zap.String("target", target.Account),
		zap.String("role", string(target.Permission.Role())),
	)
	return uc.Get(ctx, account)
}

// StaffProfile 员工资料
type StaffProfile struct {
	ID         uint       `json:"id"`
	Account    string     `json:"account"`
	Username   string     `json:"username"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Department string     `json:"department,omitempty"`
	Title      string     `json:"title,omitempty"`
	Role       string     `json:"role"`
	CreatedAt  time.Time  `json:"created_at"`
	LoginAt    *time.Time `json:"login_at,omitempty"`
}

func newStaffProfile(p *user.Profile) *StaffProfile {
	return &StaffProfile{
		ID:         p.ID,
		Account:    p.Account,
		Username:   p.Username,
		Phone:      p.Phone,
		Email:      p.Email,
		Department: p.Department,
		Title:      p.Title,
		Role:       string(p.Permission.Role()),
		CreatedAt:  p.CreatedAt,
		LoginAt:    p.LoginAt,
	}
}
