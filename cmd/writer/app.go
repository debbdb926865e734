package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"catalog_writer/internal/config"
	"catalog_writer/internal/domain"
	"catalog_writer/internal/generator"
	"catalog_writer/internal/lock"
	"catalog_writer/internal/publisher"
	"catalog_writer/internal/service"
	"catalog_writer/internal/source/shopify"
	"catalog_writer/internal/storage/postgres"
)

// app owns every connection opened for one command.
type app struct {
	db      *sqlx.DB
	service *service.Service
	closers []func() error
	logger  *slog.Logger
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Error("close resource", "error", err)
		}
	}
}

func connectDB(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("connected to database")
	return db, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	db, err := connectDB(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	a := &app{db: db, closers: []func() error{db.Close}, logger: logger}

	locker, err := newLocker(ctx, cfg.Redis, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := service.Deps{
		Catalog:   shopify.New(catalogConfig(cfg.Catalog), logger),
		Generator: generator.New(generatorConfig(cfg.Generator), logger),
		Items:     postgres.NewItemStore(db),
		Contents:  postgres.NewContentStore(db),
		State:     postgres.NewSystemStateStore(db),
		TxManager: postgres.NewTransactionManager(db),
		Locker:    locker,
	}

	if cfg.RabbitMQ.Enabled {
		pub, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		deps.Publisher = pub
	}

	a.service = service.New(deps, cfg.Pipeline, logger)
	return a, nil
}

func newLocker(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger, a *app) (service.Locker, error) {
	if cfg.Addr == "" {
		return lock.NewLocal(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.closers = append(a.closers, client.Close)

	logger.Info("using redis pipeline lock", "addr", cfg.Addr, "key", cfg.LockKey)
	return lock.NewRedis(client, cfg.LockKey, cfg.LockTTL, logger), nil
}

func catalogConfig(cfg config.CatalogConfig) shopify.Config {
	pagination := make(map[domain.Kind]shopify.PaginationMode, len(cfg.Pagination))
	for k, mode := range cfg.Pagination {
		if kind, ok := domain.ParseKind(k); ok {
			pagination[kind] = shopify.PaginationMode(mode)
		}
	}

	return shopify.Config{
		ShopDomain:     cfg.ShopDomain,
		AccessToken:    cfg.AccessToken,
		APIVersion:     cfg.APIVersion,
		PageSize:       cfg.PageSize,
		MaxPages:       cfg.MaxPages,
		Timeout:        cfg.Timeout,
		MaxAttempts:    cfg.Retry.MaxAttempts,
		InitialBackoff: cfg.Retry.InitialBackoff,
		MaxBackoff:     cfg.Retry.MaxBackoff,
		Pagination:     pagination,
	}
}

func generatorConfig(cfg config.GeneratorConfig) generator.Config {
	return generator.Config{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}
}

// expected reports errors that are a normal outcome of an operation request.
func expected(err error) bool {
	return errors.Is(err, domain.ErrPaused) || errors.Is(err, domain.ErrBusy)
}
