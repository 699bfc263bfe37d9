package main

import (
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apporder "github.com/xiebiao/dcare/internal/application/order"
	"github.com/xiebiao/dcare/internal/domain/department"
	"github.com/xiebiao/dcare/internal/domain/order"
	"github.com/xiebiao/dcare/internal/infrastructure/config"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/dcare/pkg/jwt"
)

// 自定义Provider：构造函数的参数需要从Config中提取，或者需要附带cleanup

// provideDB 创建数据库连接，cleanup关闭底层连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			zap.L().Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// provideRedis 创建Redis客户端
func provideRedis(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			zap.L().Warn("关闭Redis连接失败", zap.Error(err))
		}
	}
	return client, cleanup, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSerialGenerator 工单序号生成器
// 序号取自orders表的最大ID，门市代码取自departments表
func provideSerialGenerator(cfg *config.Config, orders order.Repository, departments department.Repository) *order.SerialGenerator {
	return order.NewSerialGenerator(orders, departments, cfg.Serial.PrefixWidth, cfg.Serial.DefaultPrefix)
}

// providePaginator 分页归一化
func providePaginator(cfg *config.Config) apporder.Paginator {
	return apporder.NewPaginator(cfg.Pagination.DefaultEntries, cfg.Pagination.MaxEntries)
}
