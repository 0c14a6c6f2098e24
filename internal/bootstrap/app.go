package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tracks-graphql/internal/graph"
	httpHandler "tracks-graphql/internal/handler/http"
	gormpersistence "tracks-graphql/internal/infra/persistence/gorm"
	"tracks-graphql/internal/infra/setup"
	"tracks-graphql/internal/metrics"
	"tracks-graphql/internal/middleware"
	"tracks-graphql/internal/service"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client // 未配置 REDIS_ADDR 时为 nil
	Schema      *graphql.Schema
	Router      *gin.Engine
	HttpServer  *http.Server
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := NewLogger(cfg)
	log.Info("Configuration loaded successfully")

	// 3. 初始化基础设施
	db, err := setup.InitDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if cfg.AutoMigrate {
		if err := setup.MigrateDB(db); err != nil {
			return nil, fmt.Errorf("failed to migrate DB: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	} else {
		log.Info("REDIS_ADDR not set, using in-process rate limiter")
	}

	app, err := newAppWithDeps(cfg, log, db, redisClient)
	if err != nil {
		return nil, err
	}
	log.Info("Application assembled successfully")
	return app, nil
}

// newAppWithDeps 在已就绪的基础设施上组装仓储、服务、schema 和路由
func newAppWithDeps(cfg *Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*App, error) {
	userRepo := gormpersistence.NewGormUserRepository(db)
	trackRepo := gormpersistence.NewGormTrackRepository(db)
	likeRepo := gormpersistence.NewGormLikeRepository(db)

	userService := service.NewUserService(userRepo, cfg.PasswordCost)
	trackService := service.NewTrackService(trackRepo, likeRepo, service.DefaultTrackPolicies())

	schema, err := graph.NewSchema(graph.NewResolver(trackService, userService), cfg.MaxQueryDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	// ClientIP 是限流的 key，只有可信代理的 X-Forwarded-For 才被采用
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(LoggerMiddleware(log))
	router.Use(metrics.Handler())
	router.Use(CORSMiddleware(cfg.CORSOrigin))
	if redisClient != nil {
		router.Use(middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow))
	} else {
		router.Use(middleware.NewLocalRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow).Middleware())
	}

	graphqlHandler := httpHandler.NewGraphQLHandler(schema)
	gqlRoutes := router.Group("/graphql").Use(middleware.OptionalAuth(cfg.JWTSecret, userService))
	{
		gqlRoutes.POST("", graphqlHandler.Serve)
		gqlRoutes.GET("", graphqlHandler.Serve)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	router.GET("/metrics", metrics.Exposer())

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		Schema:      schema,
		Router:      router,
		HttpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start 在后台启动 HTTP 服务器
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// NewLogger 按配置创建 logrus Logger，并同步到全局 logger (服务层使用 logrus 包级函数)
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if cfg.AppEnv == "production" {
		formatter = &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetFormatter(formatter)
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	log.Infof("Logger initialized (Level: %s, Format: %T)", level.String(), formatter)
	return log
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  time.Since(startTime).Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
			"request_id":  c.GetString("request_id"),
		})
		if userID, ok := c.Get("user_id"); ok {
			entry = entry.WithField("user_id", userID)
		}

		if errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String(); errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}

// CORSMiddleware 允许来自 allowedOrigin 的跨域请求
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
