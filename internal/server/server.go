package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/richxcame/trip-dashboard/internal/dashboard"
	"github.com/richxcame/trip-dashboard/internal/tripsource"
	"github.com/richxcame/trip-dashboard/pkg/common"
	"github.com/richxcame/trip-dashboard/pkg/config"
	"github.com/richxcame/trip-dashboard/pkg/health"
	"github.com/richxcame/trip-dashboard/pkg/httpclient"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"github.com/richxcame/trip-dashboard/pkg/middleware"
	"github.com/richxcame/trip-dashboard/pkg/resilience"
	"go.uber.org/zap"
)

const (
	// ServiceName identifies the API in logs, metrics and health responses
	ServiceName = "dashboard-api"
	// Version is reported by the health endpoints
	Version = "1.0.0"

	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

// NewTripSource builds the trip listing source from config, guarded by a
// circuit breaker unless disabled.
func NewTripSource(cfg *config.Config) *tripsource.HTTPSource {
	client := httpclient.NewClient(cfg.Trips.BaseURL, cfg.Trips.Timeout()).
		Apply(httpclient.WithUserAgent(ServiceName + "/" + Version))

	if cfg.Breaker.Enabled {
		settings := resilience.BuildSettings("trips-api",
			cfg.Breaker.IntervalSeconds,
			cfg.Breaker.TimeoutSeconds,
			cfg.Breaker.FailureThreshold,
			cfg.Breaker.SuccessThreshold,
		)
		client.Apply(httpclient.WithBreaker(
			resilience.NewCircuitBreaker(settings, resilience.GracefulDegradation("trips-api")),
		))
	}

	return tripsource.NewHTTPSource(client, cfg.Trips.Path)
}

// NewRegistry creates the session registry, one controller per session
func NewRegistry(cfg *config.Config, source tripsource.Source) *dashboard.Registry {
	interval := cfg.Dashboard.PhaseInterval()
	return dashboard.NewRegistry(func() *dashboard.Controller {
		return dashboard.NewController(source, dashboard.WithPhaseInterval(interval))
	}, cfg.Dashboard.SessionTTL())
}

// NewRouter wires middleware, health, metrics and dashboard routes
func NewRouter(cfg *config.Config, registry *dashboard.Registry, checks map[string]common.CheckFunc) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics(ServiceName))

	corsConfig := cors.DefaultConfig()
	origins := cfg.Server.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.CorrelationIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/", func(c *gin.Context) {
		common.SuccessResponse(c, gin.H{"message": "Trip dashboard API is running", "version": Version})
	})
	router.GET("/healthz", common.HealthCheck(ServiceName, Version))
	router.GET("/health/live", common.HealthCheck(ServiceName, Version))
	router.GET("/health/ready", common.HealthCheckWithDeps(ServiceName, Version, checks))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	dashboard.NewHandler(registry, origins).RegisterRoutes(api)

	return router
}

// ReadinessChecks probes the trip listing backend root
func ReadinessChecks(cfg *config.Config) map[string]common.CheckFunc {
	return map[string]common.CheckFunc{
		"trips_api": health.HTTPEndpointChecker(cfg.Trips.BaseURL, health.DefaultCheckerConfig()),
	}
}

// Server is the dashboard HTTP API
type Server struct {
	cfg      *config.Config
	registry *dashboard.Registry
	http     *http.Server
}

// New builds the server and all its dependencies from config
func New(cfg *config.Config) *Server {
	registry := NewRegistry(cfg, NewTripSource(cfg))
	router := NewRouter(cfg, registry, ReadinessChecks(cfg))

	return &Server{
		cfg:      cfg,
		registry: registry,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.registry.Run(sweepCtx, sweepInterval)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server",
			zap.String("service", ServiceName),
			zap.String("addr", s.http.Addr),
			zap.String("trips_url", s.cfg.Trips.BaseURL+s.cfg.Trips.Path),
		)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
