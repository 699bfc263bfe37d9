package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appdepartment "github.com/xiebiao/dcare/internal/application/department"
	apporder "github.com/xiebiao/dcare/internal/application/order"
	"github.com/xiebiao/dcare/internal/interface/http/dto"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
	"github.com/xiebiao/dcare/pkg/response"
)

// DepartmentHandler 门市HTTP处理器
type DepartmentHandler struct {
	useCase   *appdepartment.UseCase
	paginator apporder.Paginator
}

// NewDepartmentHandler 创建门市处理器
func NewDepartmentHandler(useCase *appdepartment.UseCase, paginator apporder.Paginator) *DepartmentHandler {
	return &DepartmentHandler{useCase: useCase, paginator: paginator}
}

func toDepartmentRequest(req *dto.DepartmentRequest) appdepartment.Request {
	return appdepartment.Request{
		Shorten:   req.Shorten,
		StoreName: req.StoreName,
		Owner:     req.Owner,
		Telephone: req.Telephone,
		Address:   req.Address,
	}
}

// CreateDepartment 建立门市
// @Summary      建立门市
// @Tags         门市
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.DepartmentRequest true "门市资料，shorten必填"
// @Success      200 {object} response.Response "code=200，department为门市资料；代码重复为400"
// @Router       /api/v1/department [post]
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	info, err := h.useCase.Create(c.Request.Context(), toDepartmentRequest(&req), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "department/"+info.Shorten+" create success", "department", info)
}

// GetDepartment 门市资料
// @Summary      门市资料
// @Tags         门市
// @Produce      json
// @Param        shorten path string true "门市代码"
// @Success      200 {object} response.Response "code=200，department为门市资料；code=404门市不存在"
// @Router       /api/v1/department/{shorten} [get]
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	info, err := h.useCase.Get(c.Request.Context(), strings.TrimSpace(c.Param("shorten")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "department", info)
}

// ListDepartments 门市列表
// @Summary      门市列表
// @Tags         门市
// @Produce      json
// @Param        query query dto.ListDepartmentsQuery false "筛选与分页"
// @Success      200 {object} response.Response "code=200，departments为列表"
// @Router       /api/v1/department [get]
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	var q dto.ListDepartmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.paginator.Page(q.Offset, q.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.useCase.List(c.Request.Context(), q.Filter(), page.Offset, page.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "departments", list)
}

// UpdateDepartment 修改门市
// @Summary      修改门市
// @Description  整笔覆盖代码以外的字段，代码不可修改
// @Tags         门市
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        shorten path string                true "门市代码"
// @Param        request body dto.DepartmentRequest true "门市资料"
// @Success      200 {object} response.Response "code=200，department为门市资料"
// @Router       /api/v1/department/{shorten} [put]
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req dto.DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	info, err := h.useCase.Update(c.Request.Context(), strings.TrimSpace(c.Param("shorten")),
		toDepartmentRequest(&req), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "update success", "department", info)
}

// DeleteDepartment 删除门市
// @Summary      删除门市
// @Description  仍有员工或工单属于该门市时拒绝(400)
// @Tags         门市
// @Produce      json
// @Security     BearerAuth
// @Param        shorten path string true "门市代码"
// @Success      200 {object} response.Response "code=200 delete success"
// @Router       /api/v1/department/{shorten} [delete]
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.useCase.Delete(c.Request.Context(), strings.TrimSpace(c.Param("shorten")), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "delete success")
}
