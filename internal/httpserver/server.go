package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/PratikDhanave/tracking-service/internal/config"
	"github.com/PratikDhanave/tracking-service/internal/handlers"
	"github.com/PratikDhanave/tracking-service/internal/metrics"
	"github.com/PratikDhanave/tracking-service/internal/store"
	"github.com/PratikDhanave/tracking-service/internal/tracking"
)

// NewRouter wires the probes, metrics exposition and tracking API.
// Probes: /health, /ready
// Metrics: /metrics (collectors from reg)
// API: /api/v1/tracking/events
func NewRouter(cfg config.Config, st store.Store, log *zap.Logger, reg *prometheus.Registry) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New(reg)
	svc := tracking.NewService(st, log, m)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := st.Ping(ctx); err != nil {
			log.Warn("readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterEventRoutes(r, svc, log)
	handlers.RegisterQueryRoutes(r, st, handlers.ListLimits{
		Default: cfg.ListDefaultLimit,
		Max:     cfg.ListMaxLimit,
	}, log, m)

	return r
}

// Serve runs handler on addr until ctx is done, then drains in-flight
// requests for at most shutdownTimeout.
func Serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
