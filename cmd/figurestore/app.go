package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/figurestore/internal/cart"
	"github.com/nikolayk812/figurestore/internal/catalog"
	"github.com/nikolayk812/figurestore/internal/config"
	"github.com/nikolayk812/figurestore/internal/domain"
	"github.com/nikolayk812/figurestore/internal/notify"
	"github.com/nikolayk812/figurestore/internal/port"
	"github.com/nikolayk812/figurestore/internal/repository"
	"github.com/nikolayk812/figurestore/internal/snapshot"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// app owns the services of one session and the connections behind them.
type app struct {
	logger  *zap.Logger
	catalog port.CatalogRepository
	cart    *cart.Service
	closers []func() error
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (_ *app, err error) {
	a := &app{logger: logger}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	var pool *pgxpool.Pool
	if cfg.Catalog.Backend == config.BackendPostgres || cfg.Snapshot.Backend == config.BackendPostgres {
		pool, err = a.openPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Catalog.Backend {
	case config.BackendPostgres:
		if err := repository.SeedCatalog(ctx, pool, catalog.Seed()); err != nil {
			return nil, fmt.Errorf("repository.SeedCatalog: %w", err)
		}
		if a.catalog, err = repository.NewCatalog(pool); err != nil {
			return nil, fmt.Errorf("repository.NewCatalog: %w", err)
		}
	default:
		a.catalog = catalog.NewSeeded()
	}

	var snapshots port.SnapshotRepository
	switch cfg.Snapshot.Backend {
	case config.BackendPostgres:
		if snapshots, err = repository.NewCartSnapshot(pool); err != nil {
			return nil, fmt.Errorf("repository.NewCartSnapshot: %w", err)
		}
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		a.closers = append(a.closers, client.Close)

		if snapshots, err = snapshot.NewRedis(client, cfg.Redis.TTL); err != nil {
			return nil, fmt.Errorf("snapshot.NewRedis: %w", err)
		}
	case config.BackendFile:
		dir, err := cfg.SnapshotDir()
		if err != nil {
			return nil, err
		}
		if snapshots, err = snapshot.NewFile(afero.NewOsFs(), dir); err != nil {
			return nil, fmt.Errorf("snapshot.NewFile: %w", err)
		}
	default:
		snapshots = snapshot.NewMemory()
	}

	unit, err := cfg.CurrencyUnit()
	if err != nil {
		return nil, err
	}

	opts := []cart.Option{
		cart.WithLogger(logger),
		cart.WithSessionKey(cfg.Cart.Key),
		cart.WithCheckoutLatency(cfg.Checkout.Latency),
		cart.WithCurrency(unit),
	}

	if cfg.AMQP.URL != "" {
		publisher, err := a.openPublisher(cfg.AMQP)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cart.WithPublisher(publisher))
	}

	if a.cart, err = cart.New(a.catalog, snapshots, opts...); err != nil {
		return nil, fmt.Errorf("cart.New: %w", err)
	}

	if err := a.cart.Load(ctx); err != nil {
		if !errors.Is(err, domain.ErrSnapshotLoad) {
			return nil, fmt.Errorf("cart.Load: %w", err)
		}
		logger.Warn("starting with an empty cart", zap.Error(err))
	}

	return a, nil
}

func (a *app) openPostgres(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	if err := repository.Migrate(ctx, pool); err != nil {
		return nil, fmt.Errorf("repository.Migrate: %w", err)
	}

	return pool, nil
}

func (a *app) openPublisher(cfg config.AMQPConfig) (port.CheckoutPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial: %w", err)
	}
	a.closers = append(a.closers, conn.Close)

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("conn.Channel: %w", err)
	}

	if cfg.Exchange != "" {
		err = ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
		if err != nil {
			return nil, fmt.Errorf("ch.ExchangeDeclare: %w", err)
		}
	}

	publisher, err := notify.NewAMQPPublisher(ch, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		return nil, fmt.Errorf("notify.NewAMQPPublisher: %w", err)
	}

	return publisher, nil
}

// close releases connections in reverse order of opening.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
