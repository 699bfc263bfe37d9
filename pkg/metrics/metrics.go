// Package metrics 提供基于Prometheus的指标收集
//
// # 核心概念
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：HTTP请求总数、工单操作次数、参照表新增行数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的请求数、熔断器状态
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、工单操作耗时
//
// # 使用方式
//
// 所有指标在包初始化时创建，可以直接使用；
// InitMetrics把它们注册到Prometheus默认Registry，程序启动时调用一次。
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	start := time.Now()
//	err := doCreateOrder(ctx)
//	metrics.ObserveOrderOperation("create", start, err)
//
// # 命名规范
//
// 1. Counter以`_total`结尾
// 2. Histogram以单位结尾（`_seconds`）
// 3. 标签只用有限取值（method、operation、table），不要用sn、账号这类高基数字段
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var registerOnce sync.Once

var (
	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/order/:sn）、status（200/500）
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 业务指标

	// OrderOperationsTotal 工单操作次数
	// 标签：operation（create/update/delete）、result（success/failure）
	OrderOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcare_order_operations_total",
			Help: "工单操作次数",
		},
		[]string{"operation", "result"},
	)

	// OrderOperationDuration 工单操作耗时（含参照解析与事务）
	OrderOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dcare_order_operation_duration_seconds",
			Help:    "工单操作耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	// LookupRowsCreatedTotal 参照表因get-or-create新增的行数
	// 标签：table（models/accessories/faults/status/titles/departments）
	LookupRowsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dcare_lookup_rows_created_total",
			Help: "参照表新增行数",
		},
		[]string{"table"},
	)

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（Gauge）
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name（熔断器名称）、result（success/failure/rejected）
	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数
	// 标签：exchange（交换机）、routing_key（路由键）、result（success/failure）
	MessagesPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
)

// InitMetrics 把所有指标注册到默认Registry（重复调用无副作用）
func InitMetrics() {
	registerOnce.Do(func() {
		Register(prometheus.DefaultRegisterer)
	})
}

// Register 注册到指定Registry，测试中使用prometheus.NewRegistry()
func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInProgress,
		OrderOperationsTotal,
		OrderOperationDuration,
		LookupRowsCreatedTotal,
		CircuitBreakerState,
		CircuitBreakerRequests,
		MessagesPublishedTotal,
	)
}

// ObserveOrderOperation 记录一次工单操作的结果与耗时
func ObserveOrderOperation(operation string, start time.Time, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	OrderOperationsTotal.WithLabelValues(operation, result).Inc()
	OrderOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
