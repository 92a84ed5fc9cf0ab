package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	appsvc "gopher-blog/internal/app"
	"gopher-blog/internal/cache"
	"gopher-blog/internal/config"
	"gopher-blog/internal/pkg/mailer"
	rabbitmqClient "gopher-blog/internal/platform/rabbitmq"
	redisClient "gopher-blog/internal/platform/redis"
	"gopher-blog/internal/repository"
	"gopher-blog/internal/session"
	"gopher-blog/internal/worker"
)

// App carries every long-lived dependency. Redis and MQConn are nil when the
// corresponding integration is disabled, and so is PostCache.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Sessions  session.Store
	PostCache appsvc.PostCache
	Contacts  appsvc.ContactPublisher

	ContactWorker *worker.ContactMailWorker
	Cron          *cron.Cron

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log := NewLogger(cfg.App)

	app := &App{Config: cfg, Log: log, StartedAt: time.Now()}
	if err := app.init(ctx); err != nil {
		if closeErr := app.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("release partially started resources failed")
		}
		return nil, err
	}
	return app, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	db, err := OpenDatabase(ctx, cfg, a.Log)
	if err != nil {
		return err
	}
	a.DB = db

	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		a.PostCache = cache.NewPostCache(a.Redis, time.Duration(cfg.Blog.PostCacheTTLSeconds)*time.Second)
	}

	switch cfg.Auth.SessionStore {
	case config.SessionStoreRedis:
		a.Sessions = cache.NewSessionStore(a.Redis)
	default:
		sessions := repository.NewLoginSessionRepository(db)
		a.Sessions = sessions
		if err := a.schedulePurge(sessions); err != nil {
			return err
		}
	}

	delivery := worker.NewContactDelivery(
		repository.NewContactRepository(db),
		mailer.NewSender(cfg.Mail, a.Log),
		a.Log,
	)
	if !cfg.RabbitMQ.Enabled {
		a.Contacts = delivery
		a.Log.Info("rabbitmq disabled, contact messages are delivered inline")
		return nil
	}

	a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ContactQueue)
	if err != nil {
		return err
	}
	a.Contacts = rabbitmqClient.NewContactPublisher(a.MQConn, cfg.RabbitMQ.ContactQueue)
	a.ContactWorker = worker.NewContactMailWorker(a.MQConn, delivery, cfg.RabbitMQ.ContactQueue, a.Log)
	if err := a.ContactWorker.Start(ctx); err != nil {
		return fmt.Errorf("start contact worker failed: %w", err)
	}
	return nil
}

func (a *App) schedulePurge(sessions *repository.LoginSessionRepository) error {
	spec := a.Config.Housekeeping.SessionPurgeSpec
	if spec == "" {
		return nil
	}
	a.Cron = cron.New()
	_, err := a.Cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := sessions.PurgeExpired(ctx)
		if err != nil {
			a.Log.WithError(err).Error("purge expired sessions failed")
			return
		}
		a.Log.WithField("purged", n).Info("expired sessions purged")
	})
	if err != nil {
		return fmt.Errorf("schedule session purge failed: %w", err)
	}
	a.Cron.Start()
	return nil
}

// Close stops the background jobs first, then releases connections.
func (a *App) Close() error {
	var errs []error
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.ContactWorker != nil {
		a.ContactWorker.Close()
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq failed: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis failed: %w", err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close database failed: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
