package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"interno-chat/internal/app"
	"interno-chat/internal/cache"
	"interno-chat/internal/config"
	"interno-chat/internal/migration"
	"interno-chat/internal/pkg/logger"
	"interno-chat/internal/pkg/metrics"
	mysqlClient "interno-chat/internal/platform/mysql"
	rabbitmqClient "interno-chat/internal/platform/rabbitmq"
	redisClient "interno-chat/internal/platform/redis"
	"interno-chat/internal/repository"
	"interno-chat/internal/worker"
)

type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics
	MySQL   *gorm.DB
	Redis   *redis.Client
	MQConn  *amqp.Connection

	// MessageCache and Publisher stay nil when their backend is disabled.
	MessageCache  app.MessageListCache
	Publisher     app.MessagePublisher
	MessageWorker *worker.MessagePersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	a := &App{
		Config:    cfg,
		Logger:    log,
		Metrics:   metrics.New(metricsNamespace(cfg.App.Name)),
		StartedAt: time.Now(),
	}

	a.MySQL, err = mysqlClient.New(ctx, cfg.MySQLDSN(), log.Logger)
	if err != nil {
		return nil, err
	}
	if cfg.MySQL.AutoMigrate {
		applied, err := migration.Apply(a.MySQL)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("migrate schema failed: %w", err)
		}
		for _, step := range applied {
			log.Info("schema migration applied", "step", step)
		}
	}

	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.MessageCache = cache.NewMessageCache(
			a.Redis,
			time.Duration(cfg.Redis.MessagesTTLSeconds)*time.Second,
			time.Duration(cfg.Redis.MessagesDirtyTTLSeconds)*time.Second,
		)
	}

	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MessagePersistQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Publisher = rabbitmqClient.NewMessagePublisher(a.MQConn, cfg.RabbitMQ.MessagePersistQueue)

		store := a.NewMessageService()
		a.MessageWorker = worker.NewMessagePersistWorker(a.MQConn, store, cfg.RabbitMQ.MessagePersistQueue, log, a.Metrics)
		if err := a.MessageWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start message worker failed: %w", err)
		}
	}

	return a, nil
}

func metricsNamespace(appName string) string {
	return strings.ReplaceAll(appName, "-", "_")
}

func (a *App) NewMessageService() *app.MessageService {
	return app.NewMessageService(
		repository.NewChatRepository(a.MySQL),
		repository.NewMessageRepository(a.MySQL),
		a.Publisher,
		a.MessageCache,
	)
}

func (a *App) Close() error {
	var closeErr error
	if a.MessageWorker != nil {
		a.MessageWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
