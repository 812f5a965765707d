// Package exporter serves a smart battery over HTTP: Prometheus metrics,
// a JSON snapshot and a health check.
package exporter

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"embedded-batteries-go/async"
)

type Config struct {
	// Name labels every metric.
	Name string
	// Timeout bounds one snapshot.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

func DefaultConfig() Config {
	return Config{Name: "battery0", Timeout: 2 * time.Second}
}

type Server struct {
	bat async.SmartBattery
	cfg Config
	reg *prometheus.Registry
	log logrus.FieldLogger
}

func New(bat async.SmartBattery, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewCollector(bat, cfg.Name, cfg.Timeout),
		collectors.NewGoCollector(),
	)
	return &Server{bat: bat, cfg: cfg, reg: reg, log: cfg.Logger}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(s.log))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})))
	router.GET("/battery", s.getBattery)
	router.GET("/healthz", s.getHealth)
	return router
}

func (s *Server) getBattery(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Timeout)
	defer cancel()
	c.IndentedJSON(http.StatusOK, Read(ctx, s.bat))
}

func (s *Server) getHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.Timeout)
	defer cancel()
	if _, err := s.bat.BatteryStatus(ctx); err != nil {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Warn("shutdown")
		}
	}()
	s.log.WithField("addr", addr).Info("serving battery metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "exporter: listen")
	}
	return nil
}

func ginLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"status":  status,
			"latency": time.Since(start).Round(time.Microsecond),
		})
		msg := c.Request.Method + " " + c.Request.URL.Path
		if status >= http.StatusInternalServerError {
			entry.Warn(msg)
			return
		}
		entry.Debug(msg)
	}
}
