package dto

import "github.com/xiebiao/dcare/internal/domain/user"

// RegisterRequest 登记员工请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Account    string `json:"account" binding:"required,min=3,max=50" example:"alice"`
	Password   string `json:"password" binding:"required,min=8,max=20" example:"password123"`
	Username   string `json:"username" binding:"required,max=50" example:"Alice"`
	Phone      string `json:"phone" binding:"omitempty,phone" example:"0911000000"`
	Email      string `json:"email" binding:"omitempty,email"`
	Department string `json:"department" binding:"omitempty,max=8" example:"BM"`
	Title      string `json:"title" binding:"omitempty,max=50" example:"工程师"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Account  string `json:"account" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RefreshTokenRequest 换发Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ListStaffQuery 员工列表查询参数，条件以AND组合
type ListStaffQuery struct {
	Department string `form:"department" example:"BM"`
	Username   string `form:"username"`
	Title      string `form:"title"`
	Email      string `form:"email"`
	Phone      string `form:"phone"`
	PageQuery
}

// Filter 转为领域筛选条件
func (q *ListStaffQuery) Filter() user.ListFilter {
	return user.ListFilter{
		Department: q.Department,
		Username:   q.Username,
		Title:      q.Title,
		Email:      q.Email,
		Phone:      q.Phone,
	}
}

// AssignRoleRequest 修改角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin gm maintainer commissioner jshall staff" example:"maintainer"`
}
