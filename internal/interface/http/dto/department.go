package dto

import "github.com/xiebiao/dcare/internal/domain/department"

// DepartmentRequest 建立或修改门市请求
// 修改时以路径中的代码为准，shorten可省略
type DepartmentRequest struct {
	Shorten   string `json:"shorten" binding:"omitempty,max=8" example:"BM"`
	StoreName string `json:"store_name" binding:"omitempty,max=100" example:"台北店"`
	Owner     string `json:"owner" binding:"omitempty,max=50"`
	Telephone string `json:"telephone" binding:"omitempty,phone" example:"(02)2345-6789"`
	Address   string `json:"address" binding:"omitempty,max=255"`
}

// ListDepartmentsQuery 门市列表查询参数，条件以AND组合
type ListDepartmentsQuery struct {
	Shorten   string `form:"shorten" example:"BM"`
	StoreName string `form:"store_name"`
	Owner     string `form:"owner"`
	Telephone string `form:"telephone"`
	PageQuery
}

// Filter 转为领域筛选条件
func (q *ListDepartmentsQuery) Filter() department.ListFilter {
	return department.ListFilter{
		Shorten:   q.Shorten,
		StoreName: q.StoreName,
		Owner:     q.Owner,
		Telephone: q.Telephone,
	}
}
