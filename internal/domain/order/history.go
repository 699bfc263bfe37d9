package order

import "time"

// History 工单异动记录(只追加)
// 每次创建/更新工单写入一笔,记录操作人员、新状态、备注与费用快照。
// 只有在删除工单时才会随之批量删除。
type History struct {
	ID        uint
	OrderID   uint
	IssuerID  *uint
	StatusID  *uint
	Remark    string
	Cost      int64
	ChangedAt time.Time // 由存储层时钟填写
}

// NewHistory 以工单当前(合并后)的状态生成异动记录
func NewHistory(o *Order, actorID uint) *History {
	h := &History{
		OrderID:  o.ID,
		IssuerID: &actorID,
		Remark:   o.Remark,
		Cost:     o.Cost,
	}
	if o.StatusID != nil {
		id := *o.StatusID
		h.StatusID = &id
	}
	return h
}
