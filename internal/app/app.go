package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/config"
	"github.com/anhdng/songngu/internal/content"
	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/httpserver"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/images"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/notify"
	"github.com/anhdng/songngu/internal/redis"
	"github.com/anhdng/songngu/internal/resilience"
	"github.com/anhdng/songngu/internal/scheduler"
	"github.com/anhdng/songngu/internal/sources/seed"
	"github.com/anhdng/songngu/internal/store"
	"github.com/anhdng/songngu/internal/store/memory"
	redisstore "github.com/anhdng/songngu/internal/store/redis"
	"github.com/anhdng/songngu/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	backups     *scheduler.BackupScheduler
	monitor     *resilience.Monitor
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	bus := notify.NewBus()
	bus.Subscribe(func(e notify.Event) {
		loggerClient.Debug("content changed",
			logger.String("type", e.Type), logger.String("action", e.Action))
	})
	notifier := notify.NewLogNotifier(loggerClient)

	// Pick the storage backend. Everything above this line talks to the
	// store.KV port only, so memory and redis are interchangeable.
	var (
		rawKV       store.KV
		redisClient *goredis.Client
	)
	switch cfg.StoreBackend {
	case config.BackendRedis:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		rawKV = redisstore.New(client)
	default:
		rawKV = memory.New(cfg.StorageBudget)
	}

	// Quota and availability failures route through the safe store so they
	// surface as user notifications with recovery actions.
	kv := resilience.NewSafeStore(rawKV, notifier, loggerClient)

	contentStore := content.New(kv, bus)

	if cfg.SeedFile != "" {
		seedIfEmpty(contentStore, cfg.SeedFile, loggerClient)
	}

	backupManager := backup.NewManager(contentStore, kv, notifier, bus, loggerClient, backup.Config{
		MaxBackups: cfg.MaxBackups,
	})

	backupScheduler := scheduler.NewBackupScheduler(backupManager, loggerClient, cfg.BackupInterval)

	imageStore := images.New(kv, notifier, bus, loggerClient, images.Config{})

	var monitor *resilience.Monitor
	if redisClient != nil {
		monitor = resilience.NewMonitor(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}, notifier, loggerClient, resilience.MonitorConfig{})
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		KV:              kv,
		Content:         contentStore,
		Backups:         backupManager,
		Images:          imageStore,
		TriggerBackup:   backupScheduler.TriggerNow,
		DefaultLanguage: domain.Language(cfg.DefaultLanguage),
		CORSOrigins:     cfg.CORSOrigins,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		backups:     backupScheduler,
		monitor:     monitor,
	}
}

// seedIfEmpty loads the initial bilingual content from the seed file, but
// only into a store that has never been written. Existing content wins.
func seedIfEmpty(c *content.Store, path string, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	empty, err := c.Empty(ctx)
	if err != nil {
		log.Warn("could not check store for seeding", logger.Error(err))
		return
	}
	if !empty {
		log.Debug("store already has content, skipping seed")
		return
	}

	file, err := seed.NewLoader(path).Load()
	if err != nil {
		log.Warn("could not load seed file", logger.String("file", path), logger.Error(err))
		return
	}
	snap, err := seed.NewMapper().MapSnapshot(file)
	if err != nil {
		log.Warn("seed file rejected", logger.String("file", path), logger.Error(err))
		return
	}
	if err := c.WriteSnapshot(ctx, snap); err != nil {
		log.Warn("could not write seed content", logger.Error(err))
		return
	}
	log.Info("seeded initial content", logger.String("file", path),
		logger.Int("items", snap.TotalItems()))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting songngu v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("songngu %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.backups.Start(ctx); err != nil {
		return fmt.Errorf("failed to start backup scheduler: %w", err)
	}
	a.logger.Info("backup scheduler started",
		logger.Duration("interval", a.cfg.BackupInterval))

	if a.monitor != nil {
		a.monitor.Check(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.backups.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ songngu stopped cleanly")
	return nil
}
