package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	html "github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"

	"revivedgoods/internal/broker"
	"revivedgoods/internal/config"
	"revivedgoods/internal/http/handlers"
	applog "revivedgoods/internal/log"
	"revivedgoods/internal/repos"
	"revivedgoods/internal/scheduler"
	"revivedgoods/internal/seed"
	"revivedgoods/internal/services"
	redisstore "revivedgoods/internal/store/redis"
	"revivedgoods/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if err := applog.Init(cfg.LogLevel, cfg.PrettyLog, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer applog.Sync()

	if err := run(cfg); err != nil {
		applog.Error(nil, "server.exit", err, nil)
		applog.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	// Redis backs the slot store, the broker, or both.
	var rdb *redis.Client
	if cfg.StoreDriver == "redis" || cfg.Broker == "redis" {
		client, err := redisstore.Connect(ctx, redisstore.ConnectOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		rdb = client
		closers = append(closers, client)
	}

	slots, err := openSlots(cfg, rdb, &closers)
	if err != nil {
		return err
	}
	bus, err := openBroker(cfg, rdb)
	if err != nil {
		return err
	}
	closers = append(closers, bus)

	catalog := seed.Default()
	if cfg.SeedFile != "" {
		if catalog, err = seed.LoadFile(cfg.SeedFile); err != nil {
			return err
		}
	}

	store := services.NewStateStore(slots, bus, cfg.InstanceID)
	sessions := services.NewSessions(store, catalog, services.MarketOptions{})
	hub := ws.NewHub()
	defer hub.Close()

	tabs := scheduler.NewTabSync(bus, sessions, hub)
	if err := tabs.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tab sync: %w", err)
	}
	flusher := scheduler.NewFlusher(sessions, cfg.FlushInterval)
	if err := flusher.Start(ctx); err != nil {
		return fmt.Errorf("failed to start flusher: %w", err)
	}
	sweeper := scheduler.NewSweeper(sessions, cfg.SweepInterval, cfg.SessionIdle)
	if err := sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sweeper: %w", err)
	}
	applog.Info(nil, "scheduler.started", map[string]any{
		"flush_interval": cfg.FlushInterval.String(),
		"session_idle":   cfg.SessionIdle.String(),
	})

	engine := html.New(cfg.TemplatesDir, ".html")
	engine.Reload(cfg.PrettyLog)
	app := handlers.NewApp(engine, handlers.NewDeps(sessions, hub), handlers.AppOptions{
		StaticDir: cfg.StaticDir,
		AccessLog: true,
		RateMax:   120,
		CSRF:      true,
	})

	errCh := make(chan error, 1)
	go func() {
		applog.Info(nil, "server.start", map[string]any{
			"port": cfg.Port, "instance": cfg.InstanceID, "store": cfg.StoreDriver, "broker": cfg.Broker,
		})
		if err := app.Listen(":" + cfg.Port); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		applog.Info(nil, "server.shutdown", nil)
	case err := <-errCh:
		return err
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	tabs.Stop()
	sweeper.Stop()
	flusher.Stop()

	// last flush so nothing held in memory is lost
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if failed := flusher.FlushAll(flushCtx); failed > 0 {
		applog.Warn(nil, "flush.final", errors.New("some sessions were not flushed"), map[string]any{"failed": failed})
	}
	applog.Info(nil, "server.stopped", nil)
	return nil
}

func openSlots(cfg config.Config, rdb *redis.Client, closers *[]io.Closer) (services.SlotStore, error) {
	switch cfg.StoreDriver {
	case "redis":
		return redisstore.NewSlots(rdb), nil
	case "sqlite", "postgres":
		db, err := repos.OpenDB(cfg.StoreDriver, cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", cfg.StoreDriver, err)
		}
		*closers = append(*closers, db)
		return repos.NewSlotRepo(db), nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func openBroker(cfg config.Config, rdb *redis.Client) (broker.Broker, error) {
	switch cfg.Broker {
	case "memory":
		return broker.NewMemory(), nil
	case "redis":
		return broker.NewRedis(rdb), nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is empty")
		}
		return broker.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.InstanceID), nil
	}
	return nil, fmt.Errorf("unknown BROKER %q", cfg.Broker)
}
