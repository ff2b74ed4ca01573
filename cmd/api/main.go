package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/recruit-scheduler/internal/db"
	"github.com/BruksfildServices01/recruit-scheduler/internal/infra/redisstore"
	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
	"github.com/BruksfildServices01/recruit-scheduler/internal/middleware"
	"github.com/BruksfildServices01/recruit-scheduler/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zl.Sync()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		zl.Fatal("database", zap.Error(err))
	}

	rdb, err := redisstore.NewClient(cfg)
	if err != nil {
		zl.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shutdown := routes.RegisterRoutes(r, db, rdb, cfg, zl)
	defer shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
		// ends open SSE streams on shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}
