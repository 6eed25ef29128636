package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/princy-boutique/storefront/internal/cache"
	"github.com/princy-boutique/storefront/internal/config"
	"github.com/princy-boutique/storefront/internal/database"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/repository"
	"github.com/princy-boutique/storefront/internal/repository/memory"
	"github.com/princy-boutique/storefront/internal/repository/mongostore"
	"github.com/princy-boutique/storefront/internal/repository/postgres"
	"github.com/princy-boutique/storefront/internal/router"
	"github.com/princy-boutique/storefront/internal/services"
)

const startupTimeout = 30 * time.Second

func main() {
	envFile := flag.String("env-file", ".env", "path to an optional env file")
	migrateOnly := flag.Bool("migrate-only", false, "apply PostgreSQL migrations and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	setupLogging(cfg)

	if *migrateOnly {
		if err := migrate(cfg); err != nil {
			logrus.WithError(err).Fatal("Failed to run migrations")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logrus.WithError(err).WithField("driver", cfg.Store.Driver).Fatal("Failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logrus.WithError(err).Warn("Failed to close store")
		}
	}()

	productCache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	images, err := services.NewImageStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize image store")
	}

	// Initialize i18n
	if err := i18n.Initialize(cfg.I18n.DefaultLocale); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize i18n")
	}
	logrus.WithField("languages", i18n.GetSupportedLanguages()).Debug("Loaded message catalogues")

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiters := router.NewLimiters(cfg.RateLimit)
	go limiters.General.Sweep(ctx)
	go limiters.Auth.Sweep(ctx)

	r := router.Initialize(router.Dependencies{
		Config: cfg,
		Store:  store,
		Cache:  productCache,
		Images: images,
	}, limiters)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":  srv.Addr,
			"store": cfg.Store.Driver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutting down server...")
	case err := <-serveErr:
		logrus.WithError(err).Error("Server failed")
	}

	// Create a deadline for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}

	logrus.Info("Server exited")
}

func setupLogging(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)

	if cfg.Log.Format == "json" || (cfg.Log.Format == "" && cfg.IsProduction()) {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func migrate(cfg *config.Config) error {
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return database.RunMigrations(db)
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Store, error) {
	startCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.Initialize(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.RunMigrations(db); err != nil {
			database.Close(db)
			return nil, err
		}
		return postgres.NewStore(db), nil

	case config.StoreMongo:
		db, err := database.ConnectMongo(startCtx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(startCtx, db); err != nil {
			db.Client().Disconnect(context.Background())
			return nil, err
		}
		return mongostore.NewStore(db), nil

	case config.StoreMemory:
		logrus.Warn("Using the in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// openCache returns the Redis product cache when enabled and reachable, and
// a no-op cache otherwise.
func openCache(ctx context.Context, cfg *config.Config) (cache.ProductCache, func()) {
	if !cfg.Redis.Enabled {
		return cache.NoopCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logrus.WithError(err).WithField("addr", cfg.Redis.Addr()).Warn("Redis unavailable, product cache disabled")
		client.Close()
		return cache.NoopCache{}, func() {}
	}

	logrus.WithField("addr", cfg.Redis.Addr()).Info("Product cache enabled")
	return cache.NewRedisCache(client, cfg.Redis.TTL), func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close redis client")
		}
	}
}
