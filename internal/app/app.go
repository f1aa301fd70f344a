package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/filippkowalski/heywish/internal/config"
	"github.com/filippkowalski/heywish/internal/domain"
	"github.com/filippkowalski/heywish/internal/httpserver"
	"github.com/filippkowalski/heywish/internal/httpserver/deps"
	"github.com/filippkowalski/heywish/internal/logger"
	"github.com/filippkowalski/heywish/internal/redis"
	"github.com/filippkowalski/heywish/internal/scheduler"
	"github.com/filippkowalski/heywish/internal/sources/seed"
	"github.com/filippkowalski/heywish/internal/store/postgres"
	redisstore "github.com/filippkowalski/heywish/internal/store/redis"
	"github.com/filippkowalski/heywish/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	db          *postgres.DB
	redisClient *goredis.Client
	purger      *scheduler.Purger
	seeder      *seed.Seeder
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Postgres is the system of record - fail fast if unavailable.
	db, err := postgres.Open(cfg.DatabaseURL, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Postgres: %v", err)
		os.Exit(1)
	}
	if err := db.Migrate(cfg.MigrationsDir); err != nil {
		loggerClient.Errorf("Failed to run migrations: %v", err)
		os.Exit(1)
	}

	// The snapshot cache is optional; an empty address disables it.
	var redisClient *goredis.Client
	var cache domain.SnapshotCache
	if cfg.RedisAddr != "" {
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
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
		redisClient = client
		cache = redisstore.NewCache(client, cfg.SnapshotTTL)
		loggerClient.Info("snapshot cache enabled",
			logger.String("addr", cfg.RedisAddr),
			logger.Duration("ttl", cfg.SnapshotTTL))
	} else {
		loggerClient.Info("redis not configured, snapshot cache disabled")
	}

	users := postgres.NewUserRepository(db)
	tokens := postgres.NewTokenRepository(db)
	wishlists := postgres.NewWishlistRepository(db)
	wishes := postgres.NewWishRepository(db)
	activity := postgres.NewActivityRepository(db)

	reservations := domain.NewReservationService(domain.ReservationConfig{
		Wishlists:     wishlists,
		Wishes:        wishes,
		Users:         users,
		Activity:      activity,
		Cache:         cache,
		Logger:        loggerClient,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	var seeder *seed.Seeder
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured",
			logger.String("file", cfg.SeedFile))
		seeder = seed.NewSeeder(cfg.SeedFile, users, tokens, wishlists, wishes, loggerClient)
	}

	purger := scheduler.NewPurger(db, loggerClient, cfg.PurgeInterval, cfg.PurgeThreshold)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Reservations:  reservations,
		Wishlists:     wishlists,
		Wishes:        wishes,
		Auth:          tokens,
		DB:            db,
		RedisClient:   redisClient,
		PublicBaseURL: cfg.PublicBaseURL,
		CookieSecure:  cfg.CookieSecure,
		RateBurst:     cfg.RateBurst,
		RatePerMin:    cfg.RatePerMin,
		TrustProxy:    cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		db:          db,
		redisClient: redisClient,
		purger:      purger,
		seeder:      seeder,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting HeyWish registry v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("HeyWish %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Apply seed fixtures before serving traffic (dev/demo only).
	if a.seeder != nil {
		if err := a.seeder.Apply(ctx); err != nil {
			return fmt.Errorf("failed to apply seed fixtures: %w", err)
		}
	}

	// Start purge of soft-deleted rows
	if err := a.purger.Start(ctx); err != nil {
		return fmt.Errorf("failed to start purger: %w", err)
	}
	a.logger.Info("purger started",
		logger.Duration("interval", a.cfg.PurgeInterval),
		logger.Duration("threshold", a.cfg.PurgeThreshold))

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

	a.purger.Stop()

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

	if err := a.db.Close(); err != nil {
		a.logger.Warnf("failed to close database: %v", err)
	} else {
		a.logger.Info("✅ Database closed cleanly")
	}

	a.logger.Info("✅ HeyWish stopped cleanly")
	return nil
}
