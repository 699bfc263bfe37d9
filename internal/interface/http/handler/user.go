package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/dcare/internal/application/order"
	appuser "github.com/xiebiao/dcare/internal/application/user"
	"github.com/xiebiao/dcare/internal/interface/http/dto"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
	"github.com/xiebiao/dcare/pkg/response"
)

// UserHandler 员工HTTP处理器
type UserHandler struct {
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
	meUseCase       *appuser.MeUseCase
	refreshUseCase  *appuser.RefreshTokenUseCase
	staffUseCase    *appuser.StaffUseCase
	paginator       apporder.Paginator
}

// NewUserHandler 创建员工处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	meUseCase *appuser.MeUseCase,
	refreshUseCase *appuser.RefreshTokenUseCase,
	staffUseCase *appuser.StaffUseCase,
	paginator apporder.Paginator,
) *UserHandler {
	return &UserHandler{
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
		meUseCase:       meUseCase,
		refreshUseCase:  refreshUseCase,
		staffUseCase:    staffUseCase,
		paginator:       paginator,
	}
}

// Register 登记员工
// @Summary      登记员工
// @Description  门市代码不存在时自动建立；还没有管理员时，登记的员工成为管理员
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "员工信息"
// @Success      200 {object} response.Response "code=200，user为员工信息"
// @Router       /api/v1/user [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	info, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Account:    req.Account,
		Password:   req.Password,
		Username:   req.Username,
		Phone:      req.Phone,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Payload(c, "register success", "user", info)
}

// Login 员工登录
// @Summary      员工登录
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "账号密码"
// @Success      200 {object} response.Response "code=200，token含access_token与refresh_token"
// @Router       /api/v1/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Account:  req.Account,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Payload(c, "login success", "token", result)
}

// Logout 登出
// @Summary      登出
// @Description  删除会话并吊销当前Token
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/logout [get]
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if err := h.logoutUseCase.Execute(c.Request.Context(), claims, middleware.GetToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "logout success")
}

// Me 当前登录员工
// @Summary      当前员工
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "code=200，user为员工信息"
// @Router       /api/v1/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	info, err := h.meUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "user", info)
}

// RefreshToken 换发Access Token
// @Summary      换发Access Token
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response "code=200，token含新的access_token"
// @Router       /api/v1/token/refresh [post]
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.refreshUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "token", result)
}

// ListStaff 员工列表
// @Summary      员工列表
// @Tags         员工
// @Produce      json
// @Param        query query dto.ListStaffQuery false "筛选与分页"
// @Success      200 {object} response.Response "code=200，users为列表"
// @Router       /api/v1/user [get]
func (h *UserHandler) ListStaff(c *gin.Context) {
	var q dto.ListStaffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.paginator.Page(q.Offset, q.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.staffUseCase.List(c.Request.Context(), q.Filter(), page.Offset, page.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "users", list)
}

// GetStaff 员工资料
// @Summary      员工资料
// @Tags         员工
// @Produce      json
// @Param        account path string true "账号"
// @Success      200 {object} response.Response "code=200，user为资料；code=404员工不存在"
// @Router       /api/v1/user/{account} [get]
func (h *UserHandler) GetStaff(c *gin.Context) {
	info, err := h.staffUseCase.Get(c.Request.Context(), strings.TrimSpace(c.Param("account")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "user", info)
}

// AssignRole 修改员工角色
// @Summary      修改角色
// @Description  管理员可授予任何角色；总经理只能授予总经理以下的角色，且不能管理管理员与其他总经理
// @Tags         员工
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        account path string                true "账号"
// @Param        request body dto.AssignRoleRequest true "角色"
// @Success      200 {object} response.Response "code=200；code=405无权限"
// @Router       /api/v1/user/{account}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	info, err := h.staffUseCase.AssignRole(c.Request.Context(),
		strings.TrimSpace(c.Param("account")), req.Role, middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "role update success", "user", info)
}

// DeleteStaff 删除员工
// @Summary      删除员工
// @Description  仍被工单引用时拒绝(400)；无权管理目标员工时拒绝(405)
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Param        account path string true "账号"
// @Success      200 {object} response.Response "code=200 delete success"
// @Router       /api/v1/user/{account} [delete]
func (h *UserHandler) DeleteStaff(c *gin.Context) {
	err := h.staffUseCase.Delete(c.Request.Context(), strings.TrimSpace(c.Param("account")), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "delete success")
}
