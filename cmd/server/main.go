// @title Sweepstakes Admin API
// @version 1.0
// @description 多站点抽奖活动管理后台
// @BasePath /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "sweeps_admin/docs"
	_ "sweeps_admin/internal/domain/analytics"
	_ "sweeps_admin/internal/domain/auth"
	_ "sweeps_admin/internal/domain/common"
	_ "sweeps_admin/internal/domain/content"
	_ "sweeps_admin/internal/domain/entry"
	_ "sweeps_admin/internal/domain/giveaway"
	_ "sweeps_admin/internal/domain/winner"
	"sweeps_admin/internal/pkg/config"
	"sweeps_admin/internal/pkg/lock"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"
	"sweeps_admin/internal/pkg/session"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/cache"
	"sweeps_admin/pkg/database"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	// 1. 基础设施
	sites, err := tenant.Open(cfg)
	if err != nil {
		return err
	}
	defer sites.Close()

	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	sessions := session.NewManager(
		session.NewRedisStore(rdb),
		[]byte(cfg.Session.Secret),
		cfg.Session.TTL(),
		cfg.Auth.AdminEmails,
	)
	cookie := middleware.CookieConfig{
		Name:      cfg.Session.CookieName,
		Domain:    cfg.Session.Domain,
		Secure:    cfg.Session.Secure,
		LoginPath: cfg.Auth.LoginPath,
	}
	collector := metrics.NewMetricsCollector()

	// 2. 路由与全局中间件
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(
		middleware.RecoveryMiddleware(),
		middleware.TraceMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(collector),
		middleware.CORSMiddleware(cfg.CORS.AllowedOrigins),
	)

	gate := middleware.AdminGate(sessions, cookie)

	// 3. 模块初始化
	if err := registry.InitModules(&registry.ModuleContext{
		Config:    cfg,
		Sites:     sites,
		Redis:     rdb,
		Locker:    lock.NewRedisLocker(rdb),
		Cache:     cache.NewRedisCache(rdb, cfg.App.Env),
		Sessions:  sessions,
		Cookie:    cookie,
		Metrics:   collector,
		Scheduler: scheduler,
		Router:    r,
		Dashboard: r.Group("/api", gate),
		Gate:      gate,
	}); err != nil {
		return err
	}

	scheduler.Start()
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Log.Warn("scheduler shutdown failed", zap.Error(err))
		}
	}()

	// 4. 启动服务并等待退出信号
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening", zap.String("addr", srv.Addr), zap.Int("sites", len(cfg.Sites)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
