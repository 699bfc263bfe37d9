package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/dcare/internal/domain/order"
	apperrors "github.com/xiebiao/dcare/pkg/errors"
)

// queryRepository 读侧投影
// 1. 参照一律LEFT JOIN，缺失时以空字符串显示(COALESCE)
// 2. 所有筛选值都走参数绑定，不拼接SQL
type queryRepository struct {
	db *gorm.DB
}

// NewQueryRepository 创建工单查询仓储
func NewQueryRepository(db *gorm.DB) order.QueryRepository {
	return &queryRepository{db: db}
}

const orderJoins = `
LEFT JOIN users iu ON iu.id = o.issuer_id
LEFT JOIN departments d ON d.id = o.department_id
LEFT JOIN users cu ON cu.id = o.contact_id
LEFT JOIN models m ON m.id = o.model_id
LEFT JOIN accessories a1 ON a1.id = o.accessory_id1
LEFT JOIN accessories a2 ON a2.id = o.accessory_id2
LEFT JOIN faults f1 ON f1.id = o.fault_id1
LEFT JOIN faults f2 ON f2.id = o.fault_id2
LEFT JOIN status s ON s.id = o.status_id
LEFT JOIN users su ON su.id = o.servicer_id
LEFT JOIN users mu ON mu.id = o.maintainer_id`

const orderViewColumns = `o.sn, o.issue_at,
COALESCE(iu.account, '') AS issuer,
COALESCE(d.shorten, '') AS department,
COALESCE(d.store_name, '') AS store_name,
COALESCE(cu.account, '') AS contact,
o.customer_name, o.customer_phone, o.customer_address,
COALESCE(m.brand, '') AS brand,
COALESCE(m.model, '') AS model,
o.purchase_at,
COALESCE(a1.item, '') AS accessory1,
COALESCE(a2.item, '') AS accessory2,
o.accessory_other, o.appearance, o.appearance_other, o.service,
COALESCE(f1.item, '') AS fault1,
COALESCE(f2.item, '') AS fault2,
o.fault_other, o.photo_url, o.remark, o.cost, o.prepaid_free,
COALESCE(s.flow, '') AS status,
COALESCE(su.account, '') AS servicer,
COALESCE(mu.account, '') AS maintainer`

const orderSummaryColumns = `o.sn, o.issue_at,
COALESCE(d.shorten, '') AS department,
COALESCE(d.store_name, '') AS store_name,
COALESCE(cu.account, '') AS contact,
o.customer_name, o.customer_phone, o.service, o.cost,
COALESCE(s.flow, '') AS status,
COALESCE(su.account, '') AS servicer,
COALESCE(mu.account, '') AS maintainer`

// orderViewRow 扫描行，列名与orderViewColumns的别名一致
type orderViewRow struct {
	SN              string `gorm:"column:sn"`
	IssueAt         time.Time
	Issuer          string
	Department      string
	StoreName       string
	Contact         string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Brand           string
	Model           string
	PurchaseAt      *time.Time
	Accessory1      string `gorm:"column:accessory1"`
	Accessory2      string `gorm:"column:accessory2"`
	AccessoryOther  string
	Appearance      uint8
	AppearanceOther string
	Service         string
	Fault1          string `gorm:"column:fault1"`
	Fault2          string `gorm:"column:fault2"`
	FaultOther      string
	PhotoURL        string `gorm:"column:photo_url"`
	Remark          string
	Cost            int64
	PrepaidFree     int64
	Status          string
	Servicer        string
	Maintainer      string
}

type orderSummaryRow struct {
	SN            string `gorm:"column:sn"`
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

type historyViewRow struct {
	ID        uint
	SN        string `gorm:"column:sn"`
	Issuer    string
	Status    string
	Remark    string
	Cost      int64
	ChangedAt time.Time
}

// FindViewBySN 工单详情
func (r *queryRepository) FindViewBySN(ctx context.Context, sn string) (*order.View, error) {
	var rows []orderViewRow
	err := getDB(ctx, r.db).Table("orders AS o").
		Select(orderViewColumns).
		Joins(orderJoins).
		Where("o.sn = ?", sn).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询工单失败")
	}
	if len(rows) == 0 {
		return nil, order.NotFound(sn)
	}
	return toView(&rows[0]), nil
}

// List 工单列表，按ID倒序(最新的在前)
func (r *queryRepository) List(ctx context.Context, filter order.ListFilter, page order.Page) ([]*order.Summary, error) {
	if page.Entries == 0 {
		return []*order.Summary{}, nil
	}

	query := getDB(ctx, r.db).Table("orders AS o").
		Select(orderSummaryColumns).
		Joins(orderJoins)

	if filter.Department != "" {
		query = query.Where("d.shorten = ?", filter.Department)
	}
	if filter.Contact != "" {
		query = query.Where("cu.account = ?", filter.Contact)
	}
	if filter.Servicer != "" {
		query = query.Where("su.account = ?", filter.Servicer)
	}
	if filter.Maintainer != "" {
		query = query.Where("mu.account = ?", filter.Maintainer)
	}
	if filter.Status != "" {
		query = query.Where("s.flow = ?", filter.Status)
	}
	if filter.Service != "" {
		query = query.Where("o.service = ?", filter.Service)
	}
	if filter.IssueFrom != nil {
		query = query.Where("o.issue_at >= ?", filter.IssueFrom.UTC())
	}
	if filter.IssueTo != nil {
		query = query.Where("o.issue_at < ?", filter.IssueTo.UTC())
	}

	var rows []orderSummaryRow
	err := query.Order("o.id DESC").
		Offset(page.Offset).
		Limit(page.Entries).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询工单列表失败")
	}

	summaries := make([]*order.Summary, len(rows))
	for i := range rows {
		row := &rows[i]
		summaries[i] = &order.Summary{
			SN:            row.SN,
			IssueAt:       row.IssueAt,
			Department:    row.Department,
			StoreName:     row.StoreName,
			Contact:       row.Contact,
			CustomerName:  row.CustomerName,
			CustomerPhone: row.CustomerPhone,
			Service:       row.Service,
			Cost:          row.Cost,
			Status:        row.Status,
			Servicer:      row.Servicer,
			Maintainer:    row.Maintainer,
		}
	}
	return summaries, nil
}

// ListHistory 异动记录，按异动时间升序，同一时间按ID升序
func (r *queryRepository) ListHistory(ctx context.Context, filter order.HistoryFilter, page order.Page) ([]*order.HistoryView, error) {
	if page.Entries == 0 {
		return []*order.HistoryView{}, nil
	}

	query := getDB(ctx, r.db).Table("order_histories AS h").
		Select(`h.id, o.sn,
COALESCE(u.account, '') AS issuer,
COALESCE(s.flow, '') AS status,
h.remark, h.cost, h.changed_at`).
		Joins("JOIN orders o ON o.id = h.order_id").
		Joins("LEFT JOIN users u ON u.id = h.issuer_id").
		Joins("LEFT JOIN status s ON s.id = h.status_id")

	if filter.SN != "" {
		query = query.Where("o.sn = ?", filter.SN)
	}
	if filter.Issuer != "" {
		query = query.Where("u.account = ?", filter.Issuer)
	}
	if filter.Status != "" {
		query = query.Where("s.flow = ?", filter.Status)
	}
	if filter.ChangedFrom != nil {
		query = query.Where("h.changed_at >= ?", filter.ChangedFrom.UTC())
	}
	if filter.ChangedTo != nil {
		query = query.Where("h.changed_at < ?", filter.ChangedTo.UTC())
	}

	var rows []historyViewRow
	err := query.Order("h.changed_at ASC").
		Order("h.id ASC").
		Offset(page.Offset).
		Limit(page.Entries).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询异动记录失败")
	}

	histories := make([]*order.HistoryView, len(rows))
	for i := range rows {
		row := &rows[i]
		histories[i] = &order.HistoryView{
			ID:        row.ID,
			SN:        row.SN,
			Issuer:    row.Issuer,
			Status:    row.Status,
			Remark:    row.Remark,
			Cost:      row.Cost,
			ChangedAt: row.ChangedAt,
		}
	}
	return histories, nil
}

// SNByStaff 员工出现在工单任一人员栏位或异动记录中
func (r *queryRepository) SNByStaff(ctx context.Context, userID uint) (string, bool, error) {
	sn, ok, err := r.firstSN(getDB(ctx, r.db).Table("orders AS o").
		Where("o.issuer_id = ? OR o.contact_id = ? OR o.servicer_id = ? OR o.maintainer_id = ?",
			userID, userID, userID, userID))
	if err != nil || ok {
		return sn, ok, err
	}

	return r.firstSN(getDB(ctx, r.db).Table("order_histories AS h").
		Joins("JOIN orders o ON o.id = h.order_id").
		Where("h.issuer_id = ?", userID))
}

// SNByDepartment 属于该门市的工单
func (r *queryRepository) SNByDepartment(ctx context.Context, departmentID uint) (string, bool, error) {
	return r.firstSN(getDB(ctx, r.db).Table("orders AS o").Where("o.department_id = ?", departmentID))
}

func (r *queryRepository) firstSN(query *gorm.DB) (string, bool, error) {
	var sns []string
	if err := query.Order("o.id ASC").Limit(1).Pluck("o.sn", &sns).Error; err != nil {
		return "", false, apperrors.Wrap(err, "查询工单引用失败")
	}
	if len(sns) == 0 {
		return "", false, nil
	}
	return sns[0], true, nil
}

func toView(row *orderViewRow) *order.View {
	return &order.View{
		SN:              row.SN,
		IssueAt:         row.IssueAt,
		Issuer:          row.Issuer,
		Department:      row.Department,
		StoreName:       row.StoreName,
		Contact:         row.Contact,
		CustomerName:    row.CustomerName,
		CustomerPhone:   row.CustomerPhone,
		CustomerAddress: row.CustomerAddress,
		Brand:           row.Brand,
		Model:           row.Model,
		PurchaseAt:      row.PurchaseAt,
		Accessory1:      row.Accessory1,
		Accessory2:      row.Accessory2,
		AccessoryOther:  row.AccessoryOther,
		Appearance:      order.Appearance(row.Appearance),
		AppearanceOther: row.AppearanceOther,
		Service:         row.Service,
		Fault1:          row.Fault1,
		Fault2:          row.Fault2,
		FaultOther:      row.FaultOther,
		PhotoURL:        row.PhotoURL,
		Remark:          row.Remark,
		Cost:            row.Cost,
		PrepaidFree:     row.PrepaidFree,
		Status:          row.Status,
		Servicer:        row.Servicer,
		Maintainer:      row.Maintainer,
	}
}
