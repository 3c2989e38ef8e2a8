package app

import (
	"database/sql"
	"net/http"

	"go-erp/internal/config"
	"go-erp/internal/middleware"
	"go-erp/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const connectRetries = 5

type infrastructure struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
}

func connectStores(cfg *config.AppConfig) (*infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &infrastructure{gormDB: gormDB, sqlDB: sqlDB, rdb: rdb}, nil
}

func (i *infrastructure) Close() {
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

// BuildApp connects Postgres and Redis, applies migrations and mounts every
// module under /api/v1. The returned cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.AppConfig) (func(), error) {
	logger := zap.L().Named("app")

	infra, err := connectStores(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(infra.gormDB, logger); err != nil {
		infra.Close()
		return nil, err
	}

	router.Use(
		middleware.ContextLogger(zap.L()),
		middleware.RateLimitByIP(rate.Limit(20), 40),
	)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}

	logger.Info("modules registered", zap.String("env", cfg.Env))
	return infra.Close, nil
}
