package order

import "time"

// View 工单详情投影(所有代理ID都已换成可读标签)
type View struct {
	SN      string
	IssueAt time.Time
	Issuer  string

	Department      string // 门市代码
	StoreName       string
	Contact         string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	Brand      string
	Model      string
	PurchaseAt *time.Time

	Accessory1      string
	Accessory2      string
	AccessoryOther  string
	Appearance      Appearance
	AppearanceOther string
	Service         string
	Fault1          string
	Fault2          string
	FaultOther      string
	PhotoURL        string
	Remark          string
	Cost            int64
	PrepaidFree     int64

	Status     string
	Servicer   string
	Maintainer string
}

// Summary 工单列表投影
type Summary struct {
	SN            string
	IssueAt       time.Time
	Department    string
	StoreName     string
	Contact       string
	CustomerName  string
	CustomerPhone string
	Service       string
	Cost          int64
	Status        string
	Servicer      string
	Maintainer    string
}

// HistoryView 异动记录投影
type HistoryView struct {
	ID        uint
	SN        string
	Issuer    string
	Status    string
	Remark    string
	Cost      int64
	ChangedAt time.Time
}

// ListFilter 工单列表筛选条件,非空条件以AND组合
// IssueFrom含、IssueTo不含(半开区间)
type ListFilter struct {
	Department string
	Contact    string
	Servicer   string
	Maintainer string
	Status     string
	Service    string
	IssueFrom  *time.Time
	IssueTo    *time.Time
}

// HistoryFilter 异动记录筛选条件
type HistoryFilter struct {
	SN          string
	Issuer      string
	Status      string
	ChangedFrom *time.Time
	ChangedTo   *time.Time
}

// Page 偏移分页
type Page struct {
	Offset  int
	Entries int
}
