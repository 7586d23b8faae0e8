package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "shorturl-platform/docs"
	"shorturl-platform/internal/analytics"
	"shorturl-platform/internal/cache"
	"shorturl-platform/internal/click"
	"shorturl-platform/internal/config"
	"shorturl-platform/internal/handler"
	"shorturl-platform/internal/link"
	"shorturl-platform/internal/middleware"
	"shorturl-platform/internal/resolver"
	"shorturl-platform/internal/shortcode"
	"shorturl-platform/internal/store"
	"shorturl-platform/internal/user"
	auth "shorturl-platform/pkg/jwt"
	"shorturl-platform/pkg/logger"
	"shorturl-platform/pkg/redis"
)

const defaultConfigPath = "configs/config.yaml"

// @title 短链接平台 API
// @version 1.0
// @description 短链接创建、跳转和点击统计服务
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg)
	if err != nil {
		sugaredLogger.Fatalf("存储初始化失败: %v", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			sugaredLogger.Errorf("关闭存储失败: %v", err)
		}
	}()
	sugaredLogger.Infof("✅ 存储初始化成功, driver=%s", cfg.Store.Driver)

	// 缓存可选, 连接失败时直接查表
	var linkCache resolver.LinkCache
	rdb, err := redis.NewRedisClient(ctx, &redis.Options{
		Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
	})
	if err != nil {
		sugaredLogger.Warnf("缓存连接失败: %v", err)
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
			}
		}()
		linkCache = cache.NewLinkCache(rdb, time.Duration(cfg.Cache.TTLMinutes)*time.Minute, sugaredLogger)
		sugaredLogger.Info("✅ 缓存连接成功")
	}

	pipeline := click.NewPipeline(st, sugaredLogger)
	if cfg.Store.ReconcileOnStart {
		if _, err := pipeline.Reconcile(ctx); err != nil {
			sugaredLogger.Fatalf("点击计数校对失败: %v", err)
		}
	}

	allocator := shortcode.NewAllocator(st.Links, sugaredLogger, shortcode.WithMaxAttempts(cfg.Link.MaxAttempts))
	linkService := link.NewService(st, allocator, cfg.Link.CodeLength, cfg.Link.BaseURL, sugaredLogger)
	linkResolver := resolver.New(st.Links, pipeline, linkCache, sugaredLogger)
	aggregator := analytics.NewAggregator(st.Links, st.Clicks)
	userService := user.NewService(st.Users, sugaredLogger)

	tokenManager := auth.NewManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.ExpirationHours)
	sugaredLogger.Info("✅ 认证管理器初始化成功")

	if _, err := userService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		sugaredLogger.Errorf("创建管理员失败: %v", err)
	}

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))
	router.Use(middleware.RateLimit(rdb, &cfg.RateLimit, sugaredLogger))

	handler.RegisterRoutes(router,
		handler.NewShortLinkHandler(linkService, linkResolver, pipeline, aggregator,
			time.Duration(cfg.Link.CloakDelayMS)*time.Millisecond, sugaredLogger),
		handler.NewAuthHandler(userService, tokenManager, sugaredLogger),
		middleware.AuthMiddleware(tokenManager),
		middleware.AdminMiddleware(),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 http://localhost:%d", cfg.Server.Port)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("服务启动失败: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sugaredLogger.Info("正在关闭服务...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		sugaredLogger.Errorf("服务异常退出: %v", err)
		return
	}
	sugaredLogger.Info("服务已关闭")
}
