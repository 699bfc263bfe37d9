package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/dcare/docs" // swagger文档
	"github.com/xiebiao/dcare/internal/infrastructure/config"
	"github.com/xiebiao/dcare/internal/interface/http/dto"
	"github.com/xiebiao/dcare/internal/interface/http/handler"
	"github.com/xiebiao/dcare/internal/interface/http/middleware"
)

// NewRouter 创建并配置Gin引擎
// 中间件顺序：Recovery → RequestLogger → Metrics → CORS → 路由 → RequireActor（写操作）
//
// 路由一览：
//
//	GET    /api/v1/order                 工单列表
//	POST   /api/v1/order                 开单（需登录）
//	GET    /api/v1/order/history         异动记录列表
//	GET    /api/v1/order/history/:sn     单张工单异动记录
//	GET    /api/v1/order/:sn             工单详情
//	PUT    /api/v1/order/:sn             修改工单（需登录）
//	DELETE /api/v1/order/:sn             删除工单（需登录）
//	GET    /api/v1/user                  员工列表
//	POST   /api/v1/user                  登记员工
//	GET    /api/v1/user/:account         员工资料
//	DELETE /api/v1/user/:account         删除员工（需登录，按角色判断权限）
//	PUT    /api/v1/user/:account/role    修改角色（需登录，按角色判断权限）
//	GET    /api/v1/department            门市列表
//	POST   /api/v1/department            建立门市（需登录）
//	GET    /api/v1/department/:shorten   门市资料
//	PUT    /api/v1/department/:shorten   修改门市（需登录）
//	DELETE /api/v1/department/:shorten   删除门市（需登录）
//	POST   /api/v1/login                 登录
//	GET    /api/v1/logout                登出（需登录）
//	GET    /api/v1/me                    当前员工（需登录）
//	POST   /api/v1/token/refresh         换发Access Token
func NewRouter(
	cfg *config.Config,
	orderHandler *handler.OrderHandler,
	userHandler *handler.UserHandler,
	departmentHandler *handler.DepartmentHandler,
	auth *middleware.AuthMiddleware,
) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	if len(cfg.CORS.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// 生产环境不暴露Swagger
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		v1.POST("/login", userHandler.Login)
		v1.POST("/token/refresh", userHandler.RefreshToken)
		v1.GET("/logout", auth.RequireActor(), userHandler.Logout)
		v1.GET("/me", auth.RequireActor(), userHandler.Me)

		users := v1.Group("/user")
		{
			users.GET("", userHandler.ListStaff)
			users.POST("", userHandler.Register)
			users.GET("/:account", userHandler.GetStaff)
			users.DELETE("/:account", auth.RequireActor(), userHandler.DeleteStaff)
			users.PUT("/:account/role", auth.RequireActor(), userHandler.AssignRole)
		}

		departments := v1.Group("/department")
		{
			departments.GET("", departmentHandler.ListDepartments)
			departments.POST("", auth.RequireActor(), departmentHandler.CreateDepartment)
			departments.GET("/:shorten", departmentHandler.GetDepartment)
			departments.PUT("/:shorten", auth.RequireActor(), departmentHandler.UpdateDepartment)
			departments.DELETE("/:shorten", auth.RequireActor(), departmentHandler.DeleteDepartment)
		}

		orders := v1.Group("/order")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", auth.RequireActor(), orderHandler.CreateOrder)

			orders.GET("/history", orderHandler.ListHistory)
			orders.GET("/history/:sn", orderHandler.OrderHistory)

			orders.GET("/:sn", orderHandler.GetOrder)
			orders.PUT("/:sn", auth.RequireActor(), orderHandler.UpdateOrder)
			orders.DELETE("/:sn", auth.RequireActor(), orderHandler.DeleteOrder)
		}
	}

	return r
}
