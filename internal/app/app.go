package app

import (
	"context"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/shared/config"
	"go-ems/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const schemaTimeout = 30 * time.Second

// BuildApp connects the store and the optional Redis and Kafka clients,
// makes sure the employees table exists and registers every route. The
// returned cleanup closes what was opened.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	logger := zap.L().Named("app")
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return cleanup, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return cleanup, err
	}
	closers = append(closers, func() { _ = sqlDB.Close() })
	logger.Info("database connection established")

	employeeRepo := employee.NewRepository(gormDB)
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := employeeRepo.EnsureSchema(ctx); err != nil {
		return cleanup, err
	}

	m := modules{
		employeeRepo:   employeeRepo,
		publisher:      employee.NewNoopEventPublisher(),
		idempotencyTTL: cfg.IdempotencyTTL,
	}

	if cfg.RedisAddr != "" {
		var rdb *redis.Client
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.Database.MaxRetries)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		m.redis = rdb
		logger.Info("redis connection established, idempotent create enabled")
	} else {
		logger.Info("REDIS_ADDR not set, idempotent create disabled")
	}

	if cfg.KafkaBroker != "" {
		var writer *kafka.Writer
		writer, err = connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.Database.MaxRetries)
		if err != nil {
			return cleanup, err
		}
		closers = append(closers, func() { _ = writer.Close() })
		m.publisher = employee.NewKafkaEventPublisher(writer)
		logger.Info("kafka connection established, lifecycle events enabled")
	} else {
		logger.Info("KAFKA_BROKER not set, lifecycle events disabled")
	}

	registerModules(router, m)

	return cleanup, nil
}
