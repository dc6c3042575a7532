// Command problemkit-demo serves the example routes that exercise each kind
// of failure translation.
package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/problemkit/config"
	"github.com/kbukum/problemkit/errors"
	"github.com/kbukum/problemkit/logger"
	"github.com/kbukum/problemkit/observability"
	"github.com/kbukum/problemkit/server"
	"github.com/kbukum/problemkit/server/middleware"
	"github.com/kbukum/problemkit/validation"
)

const serviceName = "problemkit-demo"

func main() {
	var cfg config.ServiceConfig
	if err := config.LoadConfig(serviceName, &cfg); err != nil {
		logger.Error("Failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	logger.Init(&cfg.Logging)
	log := logger.GetGlobalLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []middleware.ErrorHandlerOption
	if cfg.Telemetry.Enabled {
		shutdown, metrics, err := initTelemetry(ctx, &cfg)
		if err != nil {
			log.Error("Telemetry disabled", map[string]interface{}{"error": err.Error()})
		} else {
			defer shutdown()
			opts = append(opts, middleware.WithMetrics(metrics))
		}
	}

	srv := server.New(cfg.Server, log, opts...)
	srv.RegisterHealth(cfg.Name)
	registerExamples(srv.GinEngine().Group("/api/examples"))

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Failed to start server", map[string]interface{}{"error": err.Error()})
	}

	<-ctx.Done()
	if err := srv.Stop(context.Background()); err != nil {
		os.Exit(1)
	}
}

// registerExamples mounts one route per failure kind plus a success route.
func registerExamples(g *gin.RouterGroup) {
	g.GET("/success", func(c *gin.Context) {
		server.RespondOK(c, gin.H{"message": "Everything worked."})
	})
	g.GET("/bad-request", func(c *gin.Context) {
		server.RespondWithError(c, errors.Validation("Field 1 had an error."))
	})
	g.GET("/not-found", func(c *gin.Context) {
		server.RespondWithError(c, errors.NotFound("SomeResource", "123"))
	})
	g.GET("/server-error", func(c *gin.Context) {
		server.RespondWithError(c, stderrors.New("Something went wrong."))
	})
	g.GET("/panic", func(*gin.Context) {
		panic("handler panicked")
	})
	g.POST("/widgets", createWidget)
}

type widgetRequest struct {
	Name  string `json:"name" validate:"required,max=40"`
	Color string `json:"color" validate:"required,oneof=red green blue"`
	Count int    `json:"count" validate:"gte=1,lte=100"`
}

// createWidget shows validator failures flowing into the problem response.
func createWidget(c *gin.Context) {
	var req widgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("request body must be a JSON object"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, req)
}

func initTelemetry(ctx context.Context, cfg *config.ServiceConfig) (func(), *observability.FailureMetrics, error) {
	tp, err := observability.InitTracer(ctx, cfg.TracerConfig())
	if err != nil {
		return nil, nil, err
	}
	mc := cfg.MeterConfig()
	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, nil, err
	}
	metrics, err := observability.NewFailureMetrics(observability.Meter(serviceName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, nil, err
	}
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(sctx)
		_ = mp.Shutdown(sctx)
	}
	return shutdown, metrics, nil
}
