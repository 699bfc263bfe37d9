package dto

import (
	"strings"
	"time"

	apporder "github.com/xiebiao/dcare/internal/application/order"
	"github.com/xiebiao/dcare/internal/domain/order"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// OrderFields 开单与修改共用的可选字段
// 参照一律用可读字符串：门市代码、员工账号、配件/故障名称
type OrderFields struct {
	Contact         *string `json:"contact" binding:"omitempty,max=50" example:"alice"`
	CustomerName    *string `json:"customer_name" binding:"omitempty,max=50" example:"王小明"`
	CustomerAddress *string `json:"customer_address" binding:"omitempty,max=255"`
	Model           *string `json:"model" binding:"omitempty,max=100" example:"Swift 3"`
	PurchaseAt      *string `json:"purchase_at" binding:"omitempty,datetime=2006-01-02" example:"2023-12-01"`
	Accessory1      *string `json:"accessory1" binding:"omitempty,max=100" example:"充电器"`
	Accessory2      *string `json:"accessory2" binding:"omitempty,max=100"`
	AccessoryOther  *string `json:"accessory_other" binding:"omitempty,max=255"`
	AppearanceOther *string `json:"appearance_other" binding:"omitempty,max=255"`
	Service         *string `json:"service" binding:"omitempty,max=50" example:"保固内"`
	Fault1          *string `json:"fault1" binding:"omitempty,max=100" example:"无法开机"`
	Fault2          *string `json:"fault2" binding:"omitempty,max=100"`
	FaultOther      *string `json:"fault_other" binding:"omitempty,max=255"`
	PhotoURL        *string `json:"photo_url" binding:"omitempty,max=500"`
	Remark          *string `json:"remark" binding:"omitempty"`
	Cost            *int64  `json:"cost" binding:"omitempty,min=0" example:"1500"`
	PrepaidFree     *int64  `json:"prepaid_free" binding:"omitempty,min=0" example:"0"`
	Servicer        *string `json:"servicer" binding:"omitempty,max=50"`
	Maintainer      *string `json:"maintainer" binding:"omitempty,max=50"`
}

// CreateOrderRequest 开单请求
type CreateOrderRequest struct {
	Department    *string           `json:"department" binding:"required,max=8" example:"BM"`
	CustomerPhone *string           `json:"customer_phone" binding:"required,phone" example:"0911000000"`
	Brand         *string           `json:"brand" binding:"required,max=50" example:"Acer"`
	Appearance    *order.Appearance `json:"appearance" binding:"required" swaggertype:"string" example:"10000000"`
	Status        *string           `json:"status" binding:"required,max=50" example:"received"`
	OrderFields
}

// ToInput 转为应用层输入
func (r *CreateOrderRequest) ToInput() apporder.Input {
	in := r.OrderFields.toInput()
	in.Department = r.Department
	in.CustomerPhone = r.CustomerPhone
	in.Brand = r.Brand
	in.Appearance = r.Appearance
	in.Status = r.Status
	return in
}

// UpdateOrderRequest 修改工单请求，所有字段可选，未提供的沿用原值
type UpdateOrderRequest struct {
	Department    *string           `json:"department" binding:"omitempty,max=8"`
	CustomerPhone *string           `json:"customer_phone" binding:"omitempty,phone"`
	Brand         *string           `json:"brand" binding:"omitempty,max=50"`
	Appearance    *order.Appearance `json:"appearance" swaggertype:"string"`
	Status        *string           `json:"status" binding:"omitempty,max=50" example:"repaired"`
	OrderFields
}

// ToInput 转为应用层输入
func (r *UpdateOrderRequest) ToInput() apporder.Input {
	in := r.OrderFields.toInput()
	in.Department = r.Department
	in.CustomerPhone = r.CustomerPhone
	in.Brand = r.Brand
	in.Appearance = r.Appearance
	in.Status = r.Status
	return in
}

func (f *OrderFields) toInput() apporder.Input {
	return apporder.Input{
		Contact:         f.Contact,
		CustomerName:    f.CustomerName,
		CustomerAddress: f.CustomerAddress,
		Model:           f.Model,
		PurchaseAt:      parseDate(f.PurchaseAt),
		Accessory1:      f.Accessory1,
		Accessory2:      f.Accessory2,
		AccessoryOther:  f.AccessoryOther,
		AppearanceOther: f.AppearanceOther,
		Service:         f.Service,
		Fault1:          f.Fault1,
		Fault2:          f.Fault2,
		FaultOther:      f.FaultOther,
		PhotoURL:        f.PhotoURL,
		Remark:          f.Remark,
		Cost:            f.Cost,
		PrepaidFree:     f.PrepaidFree,
		Servicer:        f.Servicer,
		Maintainer:      f.Maintainer,
	}
}

// parseDate 格式已由binding的datetime校验过
func parseDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, *s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// PageQuery 偏移分页参数
type PageQuery struct {
	Offset  *int `form:"offset" example:"0"`
	Entries *int `form:"entries" example:"100"`
}

// ListOrdersQuery 工单列表查询参数，条件以AND组合
type ListOrdersQuery struct {
	Department string `form:"department" example:"BM"`
	Contact    string `form:"contact"`
	Servicer   string `form:"servicer"`
	Maintainer string `form:"maintainer"`
	Status     string `form:"status"`
	Service    string `form:"service"`
	IssueFrom  string `form:"issue_from" binding:"omitempty,datetime=2006-01-02" example:"2024-03-01"`
	IssueTo    string `form:"issue_to" binding:"omitempty,datetime=2006-01-02" example:"2024-04-01"`
	PageQuery
}

// Filter 转为领域筛选条件
func (q *ListOrdersQuery) Filter() order.ListFilter {
	return order.ListFilter{
		Department: strings.TrimSpace(q.Department),
		Contact:    strings.TrimSpace(q.Contact),
		Servicer:   strings.TrimSpace(q.Servicer),
		Maintainer: strings.TrimSpace(q.Maintainer),
		Status:     strings.TrimSpace(q.Status),
		Service:    strings.TrimSpace(q.Service),
		IssueFrom:  parseDate(&q.IssueFrom),
		IssueTo:    parseDate(&q.IssueTo),
	}
}

// ListHistoryQuery 异动记录查询参数
type ListHistoryQuery struct {
	SN          string `form:"sn"`
	Issuer      string `form:"issuer" example:"alice"`
	Status      string `form:"status"`
	ChangedFrom string `form:"changed_from" binding:"omitempty,datetime=2006-01-02"`
	ChangedTo   string `form:"changed_to" binding:"omitempty,datetime=2006-01-02"`
	PageQuery
}

// Filter 转为领域筛选条件
func (q *ListHistoryQuery) Filter() order.HistoryFilter {
	return order.HistoryFilter{
		SN:          strings.TrimSpace(q.SN),
		Issuer:      strings.TrimSpace(q.Issuer),
		Status:      strings.TrimSpace(q.Status),
		ChangedFrom: parseDate(&q.ChangedFrom),
		ChangedTo:   parseDate(&q.ChangedTo),
	}
}

// OrderResponse 工单详情
type OrderResponse struct {
	SN              string           `json:"sn" example:"BM0403071400010"`
	IssueAt         string           `json:"issue_at" example:"2024-03-07 14:30:00"`
	Issuer          string           `json:"issuer" example:"alice"`
	Department      string           `json:"department" example:"BM"`
	StoreName       string           `json:"store_name"`
	Contact         string           `json:"contact"`
	CustomerName    string           `json:"customer_name"`
	CustomerPhone   string           `json:"customer_phone"`
	CustomerAddress string           `json:"customer_address"`
	Brand           string           `json:"brand"`
	Model           string           `json:"model"`
	PurchaseAt      string           `json:"purchase_at,omitempty"`
	Accessory1      string           `json:"accessory1"`
	Accessory2      string           `json:"accessory2"`
	AccessoryOther  string           `json:"accessory_other"`
	Appearance      order.Appearance `json:"appearance" swaggertype:"object"`
	AppearanceOther string           `json:"appearance_other"`
	Service         string           `json:"service"`
	Fault1          string           `json:"fault1"`
	Fault2          string           `json:"fault2"`
	FaultOther      string           `json:"fault_other"`
	PhotoURL        string           `json:"photo_url"`
	Remark          string           `json:"remark"`
	Cost            int64            `json:"cost"`
	PrepaidFree     int64            `json:"prepaid_free"`
	Status          string           `json:"status"`
	Servicer        string           `json:"servicer"`
	Maintainer      string           `json:"maintainer"`
}

// NewOrderResponse 领域投影 → HTTP响应
func NewOrderResponse(v *order.View) *OrderResponse {
	resp := &OrderResponse{
		SN:              v.SN,
		IssueAt:         v.IssueAt.Format(dateTimeLayout),
		Issuer:          v.Issuer,
		Department:      v.Department,
		StoreName:       v.StoreName,
		Contact:         v.Contact,
		CustomerName:    v.CustomerName,
		CustomerPhone:   v.CustomerPhone,
		CustomerAddress: v.CustomerAddress,
		Brand:           v.Brand,
		Model:           v.Model,
		Accessory1:      v.Accessory1,
		Accessory2:      v.Accessory2,
		AccessoryOther:  v.AccessoryOther,
		Appearance:      v.Appearance,
		AppearanceOther: v.AppearanceOther,
		Service:         v.Service,
		Fault1:          v.Fault1,
		Fault2:          v.Fault2,
		FaultOther:      v.FaultOther,
		PhotoURL:        v.PhotoURL,
		Remark:          v.Remark,
		Cost:            v.Cost,
		PrepaidFree:     v.PrepaidFree,
		Status:          v.Status,
		Servicer:        v.Servicer,
		Maintainer:      v.Maintainer,
	}
	if v.PurchaseAt != nil {
		resp.PurchaseAt = v.PurchaseAt.Format(dateLayout)
	}
	return resp
}

// OrderListItem 工单列表项
type OrderListItem struct {
	SN            string `json:"sn"`
	IssueAt       string `json:"issue_at"`
	Department    string `json:"department"`
	StoreName     string `json:"store_name"`
	Contact       string `json:"contact"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Service       string `json:"service"`
	Cost          int64  `json:"cost"`
	Status        string `json:"status"`
	Servicer      string `json:"servicer"`
	Maintainer    string `json:"maintainer"`
}

// NewOrderList 列表投影 → HTTP响应(空结果为[]而不是null)
func NewOrderList(list []*order.Summary) []OrderListItem {
	items := make([]OrderListItem, 0, len(list))
	for _, s := range list {
		items = append(items, OrderListItem{
			SN:            s.SN,
			IssueAt:       s.IssueAt.Format(dateTimeLayout),
			Department:    s.Department,
			StoreName:     s.StoreName,
			Contact:       s.Contact,
			CustomerName:  s.CustomerName,
			CustomerPhone: s.CustomerPhone,
			Service:       s.Service,
			Cost:          s.Cost,
			Status:        s.Status,
			Servicer:      s.Servicer,
			Maintainer:    s.Maintainer,
		})
	}
	return items
}

// HistoryItem 异动记录
type HistoryItem struct {
	ID        uint   `json:"id"`
	SN        string `json:"sn"`
	Issuer    string `json:"issuer"`
	Status    string `json:"status"`
	Remark    string `json:"remark"`
	Cost      int64  `json:"cost"`
	ChangedAt string `json:"changed_at"`
}

// NewHistoryList 异动记录投影 → HTTP响应
func NewHistoryList(list []*order.HistoryView) []HistoryItem {
	items := make([]HistoryItem, 0, len(list))
	for _, h := range list {
		items = append(items, HistoryItem{
			ID:        h.ID,
			SN:        h.SN,
			Issuer:    h.Issuer,
			Status:    h.Status,
			Remark:    h.Remark,
			Cost:      h.Cost,
			ChangedAt: h.ChangedAt.Format(dateTimeLayout),
		})
	}
	return items
}
