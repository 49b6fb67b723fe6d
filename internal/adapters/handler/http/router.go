package http

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/comitanigiacomo/dailypulse/docs"
	"github.com/comitanigiacomo/dailypulse/internal/adapters/handler/http/middleware"
)

type RouterDependencies struct {
	AuthHandler  *AuthHandler
	HabitHandler *HabitHandler
	PostHandler  *PostHandler
	MediaHandler *MediaHandler
	Tokens       middleware.TokenValidator
	// DB and Redis are optional; health reports them as disabled when nil.
	DB         *sqlx.DB
	Redis      *redis.Client
	RateLimit  int
	RateWindow time.Duration
	Logger     *log.Logger
	StartTime  time.Time
}

const (
	statusConnected   = "connected"
	statusUnreachable = "unreachable"
	statusDisabled    = "disabled"
)

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(deps.Logger))

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	if deps.RateLimit > 0 {
		if deps.Redis != nil {
			router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
		} else {
			router.Use(middleware.LocalRateLimiterMiddleware(deps.RateLimit, deps.RateWindow))
		}
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := statusDisabled
		if deps.DB != nil {
			dbStatus = statusConnected
			if err := deps.DB.PingContext(ctx); err != nil {
				deps.Logger.Warn("health check: database unreachable", "err", err)
				dbStatus = statusUnreachable
			}
		}

		redisStatus := statusDisabled
		if deps.Redis != nil {
			redisStatus = statusConnected
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				deps.Logger.Warn("health check: redis unreachable", "err", err)
				redisStatus = statusUnreachable
			}
		}

		statusCode := http.StatusOK
		status := "ok"
		if dbStatus == statusUnreachable || redisStatus == statusUnreachable {
			statusCode = http.StatusServiceUnavailable
			status = "error"
		}

		c.JSON(statusCode, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens))

	deps.AuthHandler.RegisterRoutes(apiV1, protected)
	{
		deps.HabitHandler.RegisterRoutes(protected)
		deps.PostHandler.RegisterRoutes(protected)
		deps.MediaHandler.RegisterRoutes(protected)
	}

	return router
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	logger = logger.WithPrefix("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", kv...)
			return
		}
		logger.Debug("request", kv...)
	}
}
