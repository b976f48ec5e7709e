package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "vibe_check_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Audit pipeline metrics
var (
	auditsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audits_total",
			Help: "Completed audit requests by outcome",
		},
		[]string{"outcome"},
	)

	modelCallDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_call_duration_seconds",
			Help:    "Completion API call duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	websiteFetchFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "website_fetch_failures_total",
			Help: "Website fetches degraded to a placeholder note",
		},
	)

	parseFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "analysis_parse_fallbacks_total",
			Help: "Model responses replaced by the placeholder result",
		},
	)

	rateLimitDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_denials_total",
			Help: "Audit requests denied by the rate limiter",
		},
	)

	rateLimitStoreErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_store_errors_total",
			Help: "Rate limit store failures handled by failing open",
		},
	)
)

type MonitoringService struct {
	appContext.DefaultService

	port     int
	register *prometheus.Registry
	server   *fiber.App

	redisSvc *RedisService
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)

	portStr := os.Getenv("PROMETHEUS_PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		auditsTotal,
		modelCallDuration,
		websiteFetchFailures,
		parseFallbacks,
		rateLimitDenials,
		rateLimitStoreErrors,
	)
	svc.register = reg

	svc.server = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return svc.server.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	redisStatus := "disabled"
	if svc.redisSvc.Enabled() {
		redisStatus = "unreachable"
		if svc.redisSvc.Healthy(c.Context()) {
			redisStatus = "ok"
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"redis":     redisStatus,
		"timestamp": time.Now().Unix(),
	})
}

// RecordAudit counts one finished audit request by outcome label.
func RecordAudit(outcome string) {
	auditsTotal.WithLabelValues(outcome).Inc()
}

// MonitoringMiddleware records request count and latency for the main
// HTTP app.
func MonitoringMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		endpoint := c.Route().Path
		method := c.Method()
		status := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())

		return err
	}
}
