package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/dcare/internal/application/order"
	"github.com/xiebiao/dcare/internal/interface/http/dto"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
	"github.com/xiebiao/dcare/pkg/response"
)

// OrderHandler 工单HTTP处理器
// 设计说明：
// 1. Handler只负责解析请求、调用应用层、组装响应信封
// 2. 写操作要求RequireActor，当前员工ID作为开单/异动人员
// 3. 传输层始终200，结果看信封里的code
type OrderHandler struct {
	createUseCase *apporder.CreateOrderUseCase
	updateUseCase *apporder.UpdateOrderUseCase
	deleteUseCase *apporder.DeleteOrderUseCase
	queryUseCase  *apporder.QueryOrderUseCase
	paginator     apporder.Paginator
}

// NewOrderHandler 创建工单处理器
func NewOrderHandler(
	createUseCase *apporder.CreateOrderUseCase,
	updateUseCase *apporder.UpdateOrderUseCase,
	deleteUseCase *apporder.DeleteOrderUseCase,
	queryUseCase *apporder.QueryOrderUseCase,
	paginator apporder.Paginator,
) *OrderHandler {
	return &OrderHandler{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		queryUseCase:  queryUseCase,
		paginator:     paginator,
	}
}

// CreateOrder 开单
// @Summary      开立维修工单
// @Description  参照以可读字符串提交；门市必须已存在，机型/配件/故障/状态不存在时自动建立
// @Tags         工单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "工单内容"
// @Success      200 {object} response.Response "code=200，order为工单详情"
// @Router       /api/v1/order [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Payload(c, fmt.Sprintf("order%d create success", result.OrderID), "order", dto.NewOrderResponse(result.Order))
}

// GetOrder 工单详情
// @Summary      查询工单
// @Tags         工单
// @Produce      json
// @Param        sn path string true "工单序号"
// @Success      200 {object} response.Response "code=200，order为工单详情；code=404工单不存在"
// @Router       /api/v1/order/{sn} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	view, err := h.queryUseCase.Get(c.Request.Context(), strings.TrimSpace(c.Param("sn")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "order", dto.NewOrderResponse(view))
}

// UpdateOrder 修改工单
// @Summary      修改工单（局部更新）
// @Description  只修改提供的字段，未提供的沿用原值；每次修改追加一笔异动记录
// @Tags         工单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        sn      path string                 true "工单序号"
// @Param        request body dto.UpdateOrderRequest true "修改内容"
// @Success      200 {object} response.Response "code=200，order为修改后的详情"
// @Router       /api/v1/order/{sn} [put]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), strings.TrimSpace(c.Param("sn")), middleware.MustGetUserID(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Payload(c, fmt.Sprintf("order update success - history%d", result.HistoryID), "order", dto.NewOrderResponse(result.Order))
}

// DeleteOrder 删除工单
// @Summary      删除工单及其异动记录
// @Tags         工单
// @Produce      json
// @Security     BearerAuth
// @Param        sn path string true "工单序号"
// @Success      200 {object} response.Response "code=200 delete success"
// @Router       /api/v1/order/{sn} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if _, err := h.deleteUseCase.Execute(c.Request.Context(), strings.TrimSpace(c.Param("sn")), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "delete success")
}

// ListOrders 工单列表
// @Summary      工单列表
// @Description  条件以AND组合；issue_from含、issue_to不含；新开的在前
// @Tags         工单
// @Produce      json
// @Param        query query dto.ListOrdersQuery false "筛选与分页"
// @Success      200 {object} response.Response "code=200，orders为列表"
// @Router       /api/v1/order [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q dto.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.paginator.Page(q.Offset, q.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.queryUseCase.List(c.Request.Context(), q.Filter(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "orders", dto.NewOrderList(list))
}

// OrderHistory 单张工单的异动记录
// @Summary      工单异动记录
// @Tags         工单
// @Produce      json
// @Param        sn    path  string        true  "工单序号"
// @Param        query query dto.PageQuery false "分页"
// @Success      200 {object} response.Response "code=200，histories按时间升序；code=404工单不存在"
// @Router       /api/v1/order/history/{sn} [get]
func (h *OrderHandler) OrderHistory(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.paginator.Page(q.Offset, q.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.queryUseCase.History(c.Request.Context(), strings.TrimSpace(c.Param("sn")), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "histories", dto.NewHistoryList(list))
}

// ListHistory 跨工单的异动记录
// @Summary      异动记录列表
// @Tags         工单
// @Produce      json
// @Param        query query dto.ListHistoryQuery false "筛选与分页"
// @Success      200 {object} response.Response "code=200，histories按时间升序"
// @Router       /api/v1/order/history [get]
func (h *OrderHandler) ListHistory(c *gin.Context) {
	var q dto.ListHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.paginator.Page(q.Offset, q.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.queryUseCase.ListHistory(c.Request.Context(), q.Filter(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Payload(c, "", "histories", dto.NewHistoryList(list))
}
