package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sweeps_admin"

// MetricsCollector 指标收集器
// 使用独立的 Registry，测试中可以重复创建而不会重复注册
type MetricsCollector struct {
	registry *prometheus.Registry

	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 业务指标
	drawsTotal           *prometheus.CounterVec
	imageGenerationTotal *prometheus.CounterVec
	giveawaysClosedTotal *prometheus.CounterVec

	// 缓存指标
	cacheHitsTotal   *prometheus.CounterVec
	cacheMissesTotal *prometheus.CounterVec

	// 数据库连接池指标
	dbConnectionsOpen  *prometheus.GaugeVec
	dbConnectionsInUse *prometheus.GaugeVec
	dbConnectionsIdle  *prometheus.GaugeVec
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &MetricsCollector{
		registry: reg,

		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		drawsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "draws_total",
				Help:      "Winner draws by site and outcome",
			},
			[]string{"site", "outcome"},
		),

		imageGenerationTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "image_generations_total",
				Help:      "Hero image generations by site and outcome (generated or fallback)",
			},
			[]string{"site", "outcome"},
		),

		giveawaysClosedTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "giveaways_closed_total",
				Help:      "Giveaways deactivated by the scheduler after their end date",
			},
			[]string{"site"},
		),

		cacheHitsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"key_prefix"},
		),

		cacheMissesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"key_prefix"},
		),

		dbConnectionsOpen: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_open",
				Help:      "Open database connections per site",
			},
			[]string{"site"},
		),

		dbConnectionsInUse: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_in_use",
				Help:      "In-use database connections per site",
			},
			[]string{"site"},
		),

		dbConnectionsIdle: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connections_idle",
				Help:      "Idle database connections per site",
			},
			[]string{"site"},
		),
	}
}

// RecordHTTPRequest 记录 HTTP 请求指标
func (m *MetricsCollector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDraw 记录抽奖结果 (won, no_entries, no_eligible, already_won, in_progress, error)
func (m *MetricsCollector) RecordDraw(site, outcome string) {
	m.drawsTotal.WithLabelValues(site, outcome).Inc()
}

// RecordImageGeneration 记录图片生成结果
func (m *MetricsCollector) RecordImageGeneration(site string, fallback bool) {
	outcome := "generated"
	if fallback {
		outcome = "fallback"
	}
	m.imageGenerationTotal.WithLabelValues(site, outcome).Inc()
}

// RecordGiveawaysClosed 记录定时任务关闭的活动数
func (m *MetricsCollector) RecordGiveawaysClosed(site string, n int64) {
	m.giveawaysClosedTotal.WithLabelValues(site).Add(float64(n))
}

// RecordCacheOperation 记录缓存命中情况
func (m *MetricsCollector) RecordCacheOperation(keyPrefix string, hit bool) {
	if hit {
		m.cacheHitsTotal.WithLabelValues(keyPrefix).Inc()
	} else {
		m.cacheMissesTotal.WithLabelValues(keyPrefix).Inc()
	}
}

// UpdateDBConnections 更新站点连接池指标
func (m *MetricsCollector) UpdateDBConnections(site string, open, inUse, idle int) {
	m.dbConnectionsOpen.WithLabelValues(site).Set(float64(open))
	m.dbConnectionsInUse.WithLabelValues(site).Set(float64(inUse))
	m.dbConnectionsIdle.WithLabelValues(site).Set(float64(idle))
}

// Registry 底层 prometheus 注册表
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 处理器
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GetStatusCategory 状态码分类
func GetStatusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
