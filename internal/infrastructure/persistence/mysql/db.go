package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/dcare/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. database.auto_migrate为true时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	db, err := gorm.Open(mysql.Open(dsn), NewGormConfig(cfg.Server.Mode == "debug"))
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// NewGormConfig 统一的GORM配置(测试用sqlite时也使用它)
// 时间一律以UTC写入，工单序号中的年月日时也按UTC计算
func NewGormConfig(debug bool) *gorm.Config {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info // 开发环境打印SQL
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Migrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&DepartmentModel{},
		&TitleModel{},
		&UserModel{},
		&ModelModel{},
		&AccessoryModel{},
		&FaultModel{},
		&StatusModel{},
		&OrderModel{},
		&OrderHistoryModel{},
	)
}

// DepartmentModel 门市
type DepartmentModel struct {
	ID        uint      `gorm:"primaryKey"`
	Shorten   string    `gorm:"uniqueIndex:uk_departments_shorten;size:8;not null;comment:门市代码"`
	StoreName string    `gorm:"size:100;comment:门市名称"`
	Owner     string    `gorm:"size:50;comment:负责人"`
	Telephone string    `gorm:"size:30;comment:电话"`
	Address   string    `gorm:"size:255;comment:地址"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (DepartmentModel) TableName() string {
	return "departments"
}

// TitleModel 职称
type TitleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:uk_titles_name;size:50;not null;comment:职称"`
}

// TableName 指定表名
func (TitleModel) TableName() string {
	return "titles"
}

// UserModel 员工
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Account唯一，工单中的联络人、维修人员、工程师都以账号引用
type UserModel struct {
	ID           uint       `gorm:"primaryKey"`
	Account      string     `gorm:"uniqueIndex:uk_users_account;size:50;not null;comment:登录账号"`
	Password     string     `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Username     string     `gorm:"size:50;not null;comment:姓名"`
	Phone        string     `gorm:"size:30;comment:电话"`
	Email        string     `gorm:"size:100;comment:邮箱"`
	DepartmentID *uint      `gorm:"index;comment:门市ID"`
	TitleID      *uint      `gorm:"index;comment:职称ID"`
	Permission   uint8      `gorm:"not null;default:0;comment:权限位"`
	CreatedAt    time.Time  `gorm:"comment:创建时间"`
	UpdatedAt    time.Time  `gorm:"comment:更新时间"`
	LoginAt      *time.Time `gorm:"comment:最近登录时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// ModelModel 机型，自然键(品牌, 型号)
type ModelModel struct {
	ID    uint   `gorm:"primaryKey"`
	Brand string `gorm:"uniqueIndex:uk_models_brand_model;size:50;not null;comment:品牌"`
	Model string `gorm:"uniqueIndex:uk_models_brand_model;size:100;not null;comment:型号"`
}

// TableName 指定表名
func (ModelModel) TableName() string {
	return "models"
}

// AccessoryModel 配件
type AccessoryModel struct {
	ID    uint   `gorm:"primaryKey"`
	Item  string `gorm:"uniqueIndex:uk_accessories_item;size:100;not null;comment:配件"`
	Price int64  `gorm:"not null;default:0;comment:价格"`
}

// TableName 指定表名
func (AccessoryModel) TableName() string {
	return "accessories"
}

// FaultModel 故障
type FaultModel struct {
	ID   uint   `gorm:"primaryKey"`
	Item string `gorm:"uniqueIndex:uk_faults_item;size:100;not null;comment:故障"`
	Cost int64  `gorm:"not null;default:0;comment:参考费用"`
}

// TableName 指定表名
func (FaultModel) TableName() string {
	return "faults"
}

// StatusModel 流程状态
type StatusModel struct {
	ID   uint   `gorm:"primaryKey"`
	Flow string `gorm:"uniqueIndex:uk_status_flow;size:50;not null;comment:流程"`
}

// TableName 指定表名
func (StatusModel) TableName() string {
	return "status"
}

// OrderModel 维修工单
// 设计说明:
// 1. SN有唯一索引(业务主键)，并发创建时由它兜底
// 2. IssueAt由数据库时钟在插入时填写，之后不再修改
// 3. 所有参照字段都可为空
type OrderModel struct {
	ID       uint      `gorm:"primaryKey"`
	SN       string    `gorm:"column:sn;uniqueIndex:uk_orders_sn;size:32;not null;comment:工单序号"`
	IssueAt  time.Time `gorm:"autoCreateTime;index;comment:开单时间"`
	IssuerID *uint     `gorm:"index;comment:开单人员"`

	DepartmentID    *uint  `gorm:"index;comment:门市ID"`
	ContactID       *uint  `gorm:"index;comment:联络人"`
	CustomerName    string `gorm:"size:50;comment:客户姓名"`
	CustomerPhone   string `gorm:"size:30;not null;comment:客户电话"`
	CustomerAddress string `gorm:"size:255;comment:客户地址"`

	ModelID    *uint      `gorm:"index;comment:机型ID"`
	PurchaseAt *time.Time `gorm:"comment:购买日期"`

	AccessoryID1    *uint  `gorm:"column:accessory_id1;index;comment:配件1"`
	AccessoryID2    *uint  `gorm:"column:accessory_id2;index;comment:配件2"`
	AccessoryOther  string `gorm:"size:255;comment:其他配件"`
	Appearance      uint8  `gorm:"not null;default:0;comment:外观(位图)"`
	AppearanceOther string `gorm:"size:255;comment:其他外观"`
	Service         string `gorm:"index;size:50;comment:服务类型"`
	FaultID1        *uint  `gorm:"column:fault_id1;index;comment:故障1"`
	FaultID2        *uint  `gorm:"column:fault_id2;index;comment:故障2"`
	FaultOther      string `gorm:"size:255;comment:其他故障"`
	PhotoURL        string `gorm:"column:photo_url;size:500;comment:照片"`
	Remark          string `gorm:"type:text;comment:备注"`
	Cost            int64  `gorm:"not null;default:0;comment:费用"`
	PrepaidFree     int64  `gorm:"not null;default:0;comment:预付款"`

	StatusID     *uint `gorm:"index;comment:状态ID"`
	ServicerID   *uint `gorm:"index;comment:维修人员"`
	MaintainerID *uint `gorm:"index;comment:工程师"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderHistoryModel 工单异动记录
type OrderHistoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null;comment:工单ID"`
	IssuerID  *uint     `gorm:"index;comment:操作人员"`
	StatusID  *uint     `gorm:"index;comment:状态ID"`
	Remark    string    `gorm:"type:text;comment:备注"`
	Cost      int64     `gorm:"not null;default:0;comment:费用"`
	ChangedAt time.Time `gorm:"autoCreateTime;index;comment:异动时间"`
}

// TableName 指定表名
func (OrderHistoryModel) TableName() string {
	return "order_histories"
}
