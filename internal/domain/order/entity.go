package order

import (
	"strings"
	"time"
)

// Order 维修工单(聚合根)
// 设计说明:
// 1. 所有外键引用(门市、机型、配件、故障、状态、人员)都是可空的代理ID,
//    由Reference Resolver在写入前解析好,实体本身不做查询
// 2. SN创建后不可变,更新时不会重新生成
// 3. 金额为整数(旧系统以元为单位,无小数)
type Order struct {
	ID       uint
	SN       string
	IssueAt  time.Time
	IssuerID *uint // 开单人员(当前登录的员工)

	DepartmentID    *uint
	ContactID       *uint
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	ModelID    *uint
	PurchaseAt *time.Time

	AccessoryID1    *uint
	AccessoryID2    *uint
	AccessoryOther  string
	Appearance      Appearance
	AppearanceOther string
	Service         string // 服务类型/流程标签,如"保固内"、"送修中"
	FaultID1        *uint
	FaultID2        *uint
	FaultOther      string
	PhotoURL        string
	Remark          string
	Cost            int64
	PrepaidFree     int64

	StatusID     *uint
	ServicerID   *uint
	MaintainerID *uint
}

// NewOrder 创建新工单(工厂方法)
// SN由SerialGenerator生成后传入,IssueAt由存储层落库时填写
func NewOrder(sn string, issuerID uint, p Patch) (*Order, error) {
	o := &Order{SN: sn, IssuerID: &issuerID}
	if err := o.Apply(p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(o.CustomerPhone) == "" {
		return nil, ErrCustomerPhoneRequired
	}
	if o.StatusID == nil {
		return nil, ErrStatusRequired
	}
	return o, nil
}

// Patch 已解析的局部修改
// nil表示"未提供,沿用原值";非nil表示覆盖。没有"清空"语义。
type Patch struct {
	DepartmentID    *uint
	ContactID       *uint
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string

	ModelID    *uint
	PurchaseAt *time.Time

	AccessoryID1    *uint
	AccessoryID2    *uint
	AccessoryOther  *string
	Appearance      *Appearance
	AppearanceOther *string
	Service         *string
	FaultID1        *uint
	FaultID2        *uint
	FaultOther      *string
	PhotoURL        *string
	Remark          *string
	Cost            *int64
	PrepaidFree     *int64

	StatusID     *uint
	ServicerID   *uint
	MaintainerID *uint
}

// Apply 逐字段合并: 提供的字段覆盖,未提供的字段保持原值
func (o *Order) Apply(p Patch) error {
	if p.CustomerPhone != nil && strings.TrimSpace(*p.CustomerPhone) == "" {
		return ErrCustomerPhoneRequired
	}

	mergeID(&o.DepartmentID, p.DepartmentID)
	mergeID(&o.ContactID, p.ContactID)
	mergeString(&o.CustomerName, p.CustomerName)
	mergeString(&o.CustomerPhone, p.CustomerPhone)
	mergeString(&o.CustomerAddress, p.CustomerAddress)

	mergeID(&o.ModelID, p.ModelID)
	if p.PurchaseAt != nil {
		t := *p.PurchaseAt
		o.PurchaseAt = &t
	}

	mergeID(&o.AccessoryID1, p.AccessoryID1)
	mergeID(&o.AccessoryID2, p.AccessoryID2)
	mergeString(&o.AccessoryOther, p.AccessoryOther)
	if p.Appearance != nil {
		o.Appearance = *p.Appearance
	}
	mergeString(&o.AppearanceOther, p.AppearanceOther)
	mergeString(&o.Service, p.Service)
	mergeID(&o.FaultID1, p.FaultID1)
	mergeID(&o.FaultID2, p.FaultID2)
	mergeString(&o.FaultOther, p.FaultOther)
	mergeString(&o.PhotoURL, p.PhotoURL)
	mergeString(&o.Remark, p.Remark)
	mergeInt(&o.Cost, p.Cost)
	mergeInt(&o.PrepaidFree, p.PrepaidFree)

	mergeID(&o.StatusID, p.StatusID)
	mergeID(&o.ServicerID, p.ServicerID)
	mergeID(&o.MaintainerID, p.MaintainerID)
	return nil
}

func mergeID(dst **uint, v *uint) {
	if v != nil {
		id := *v
		*dst = &id
	}
}

func mergeString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func mergeInt(dst *int64, v *int64) {
	if v != nil {
		*dst = *v
	}
}
