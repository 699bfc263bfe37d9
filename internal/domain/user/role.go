package user

import (
	"strings"

	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// Permission 权限位
// 第0位管理员，第1位总经理，其后依次为维修、专员、展厅；全为0即一般员工。
type Permission uint8

const (
	PermAdmin Permission = 1 << iota
	PermGM
	PermMaintainer
	PermCommissioner
	PermJSHall
)

// Role 由权限位推导出的角色，低位优先
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleGM           Role = "gm"
	RoleMaintainer   Role = "maintainer"
	RoleCommissioner Role = "commissioner"
	RoleJSHall       Role = "jshall"
	RoleStaff        Role = "staff"
)

var rolePermissions = []struct {
	role Role
	perm Permission
}{
	{RoleAdmin, PermAdmin},
	{RoleGM, PermGM},
	{RoleMaintainer, PermMaintainer},
	{RoleCommissioner, PermCommissioner},
	{RoleJSHall, PermJSHall},
}

// Role 取最高的角色
func (p Permission) Role() Role {
	for _, rp := range rolePermissions {
		if p&rp.perm != 0 {
			return rp.role
		}
	}
	return RoleStaff
}

// ParsePermission 角色名 → 权限位，空字符串视为一般员工
func ParsePermission(role string) (Permission, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" || role == string(RoleStaff) {
		return 0, nil
	}
	for _, rp := range rolePermissions {
		if string(rp.role) == role {
			return rp.perm, nil
		}
	}
	return 0, apperrors.BadRequestf("未知角色: %s", role)
}

// ErrPermissionDenied 无权管理目标员工
var ErrPermissionDenied = apperrors.New(apperrors.ErrCodePermissionDenied, "permission deny")

// CanManage 判断actor能否修改或删除target
//   - 本人总是可以
//   - 管理员可以管理任何人
//   - 总经理不能管理管理员与其他总经理，其余可以
//   - 其他角色不能管理别人
func CanManage(actor, target *User) bool {
	if actor.ID == target.ID {
		return true
	}
	switch actor.Permission.Role() {
	case RoleAdmin:
		return true
	case RoleGM:
		r := target.Permission.Role()
		return r != RoleAdmin && r != RoleGM
	default:
		return false
	}
}

// CanGrant 判断actor能否授予perm
// 管理员可以授予任何角色，总经理只能授予总经理以下的角色
func CanGrant(actor *User, perm Permission) bool {
	switch actor.Permission.Role() {
	case RoleAdmin:
		return true
	case RoleGM:
		r := perm.Role()
		return r != RoleAdmin && r != RoleGM
	default:
		return false
	}
}
