package user

import (
	"context"
	"errors"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// Service 员工领域服务接口
// 设计说明：
// 1. 封装登记、登录等跨实体逻辑
// 2. 密码加密与校验集中在这里，Repository只负责存取
type Service interface {
	// CheckRegistration 登记前校验(格式、密码强度、账号是否已被占用)，不写库
	CheckRegistration(ctx context.Context, params RegisterParams) error

	// Register 登记员工
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 账号密码登录，成功后更新最近登录时间
	Login(ctx context.Context, account, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error

	// AssignRole actor把target的角色改为role
	AssignRole(ctx context.Context, actor, target *User, role Role) error
}

// RegisterParams 登记参数(门市、职称已由调用方解析为ID)
type RegisterParams struct {
	Account      string
	Password     string
	Username     string
	Phone        string
	Email        string
	DepartmentID *uint
	TitleID      *uint
}

type service struct {
	repo Repository
	cost int
	now  func() time.Time
}

// NewService 创建员工领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo, cost: 12, now: time.Now}
}

// NewServiceWithCost 指定bcrypt成本(测试中使用bcrypt.MinCost加速)
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost, now: time.Now}
}

// Register 登记员工
// 1. 校验账号格式与密码强度
// 2. bcrypt加密密码
// 3. 库中还没有管理员时，这位员工成为管理员
// 4. 持久化(账号唯一索引保证不重复)
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := checkFormat(params); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(params.Account, string(hashedPassword), params.Username)
	u.Phone = params.Phone
	u.Email = params.Email
	u.DepartmentID = params.DepartmentID
	u.TitleID = params.TitleID

	hasAdmin, err := s.repo.HasAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if !hasAdmin {
		u.Permission = PermAdmin
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// CheckRegistration 登记前校验
// 调用方在建立门市等参照资料之前调用，校验失败时不留下任何写入。
// 与Create之间仍有竞态窗口，并发登记同一账号时以唯一索引为准。
func (s *service) CheckRegistration(ctx context.Context, params RegisterParams) error {
	if err := checkFormat(params); err != nil {
		return err
	}

	_, err := s.repo.FindByAccount(ctx, params.Account)
	switch {
	case err == nil:
		return ErrAccountDuplicate
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return err
	}
}

func checkFormat(params RegisterParams) error {
	if !isValidAccount(params.Account) {
		return ErrInvalidAccount
	}

	if err := validatePasswordStrength(params.Password); err != nil {
		return err
	}

	if len(params.Username) < 1 || len(params.Username) > 50 {
		return apperrors.New(apperrors.ErrCodeBadRequest, "姓名长度应为1-50个字符")
	}
	return nil
}

// Login 账号密码登录
// 账号不存在与密码错误返回同一个错误，避免枚举账号
func (s *service) Login(ctx context.Context, account, password string) (*User, error) {
	u, err := s.repo.FindByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateLoginAt(ctx, u.ID, now); err != nil {
		return nil, err
	}
	u.MarkLogin(now)

	return u, nil
}

// ValidatePassword 验证密码
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// AssignRole 修改角色
// 先要能管理target(CanManage)，再要有授予该角色的资格(CanGrant)
func (s *service) AssignRole(ctx context.Context, actor, target *User, role Role) error {
	perm, err := ParsePermission(string(role))
	if err != nil {
		return err
	}
	if !CanManage(actor, target) || !CanGrant(actor, perm) {
		return ErrPermissionDenied
	}
	if err := s.repo.UpdatePermission(ctx, target.ID, perm); err != nil {
		return err
	}
	target.Permission = perm
	return nil
}

var (
	accountPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)
	hasLetter      = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit       = regexp.MustCompile(`[0-9]`)
)

func isValidAccount(account string) bool {
	return accountPattern.MatchString(account)
}

// validatePasswordStrength 8-20位，至少包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
