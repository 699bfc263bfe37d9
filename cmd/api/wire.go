//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后执行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appdepartment "github.com/xiebiao/dcare/internal/application/department"
	apporder "github.com/xiebiao/dcare/internal/application/order"
	appuser "github.com/xiebiao/dcare/internal/application/user"
	"github.com/xiebiao/dcare/internal/domain/user"
	"github.com/xiebiao/dcare/internal/infrastructure/config"
	"github.com/xiebiao/dcare/internal/infrastructure/messaging"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/dcare/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/dcare/internal/interface/http/handler"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
	"github.com/xiebiao/dcare/internal/interface/http/router"
	"github.com/xiebiao/dcare/pkg/jwt"
)

// infrastructureSet 数据库、Redis、MQ
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedis,
	messaging.NewEventPublisher,
)

// repositorySet 仓储与事务管理器
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewDepartmentRepository,
	mysql.NewLookupRepository,
	mysql.NewOrderRepository,
	mysql.NewHistoryRepository,
	mysql.NewQueryRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	provideSerialGenerator,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewMeUseCase,
	appuser.NewRefreshTokenUseCase,
	appuser.NewStaffUseCase,
	appdepartment.NewUseCase,
	apporder.NewCreateOrderUseCase,
	apporder.NewUpdateOrderUseCase,
	apporder.NewDeleteOrderUseCase,
	apporder.NewQueryOrderUseCase,
	providePaginator,
)

// middlewareSet JWT、会话与认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenParser), new(*jwt.Manager)),
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器与路由
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewOrderHandler,
	handler.NewDepartmentHandler,
	router.NewRouter,
)

// InitializeApp 组装整个应用，cleanup按相反顺序关闭MQ、Redis、数据库
func InitializeApp(cfg *config.Config) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}
