// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/craveapp/crave/internal/application/history"
	"github.com/craveapp/crave/internal/application/resolver"
	"github.com/craveapp/crave/internal/application/user"
	"github.com/craveapp/crave/internal/infrastructure/ai/openai"
	"github.com/craveapp/crave/internal/infrastructure/config"
	"github.com/craveapp/crave/internal/infrastructure/http/server"
	gormRepo "github.com/craveapp/crave/internal/infrastructure/persistence/gorm"
	"github.com/craveapp/crave/internal/infrastructure/persistence/memory"
	"github.com/craveapp/crave/internal/infrastructure/persistence/postgres"
	redisRepo "github.com/craveapp/crave/internal/infrastructure/persistence/redis"
	"github.com/craveapp/crave/internal/infrastructure/persistence/sqlite"
	"github.com/craveapp/crave/internal/infrastructure/search/tasty"
	"github.com/craveapp/crave/internal/ports/outbound"
	"github.com/craveapp/crave/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection for the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			return postgres.Connect(cfg, log)
		}

		dbPath := ":memory:"
		if cfg.Database.Database != "" {
			dbPath = cfg.Database.Database + ".db"
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(dbPath, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		log.Info("Connected to SQLite database",
			zap.String("path", dbPath),
			zap.Bool("in_memory", dbPath == ":memory:"),
		)
		return db, nil
	},
)

// CacheModule provides the cache repository. Redis is used when a host is
// configured, the in-memory cache otherwise.
var CacheModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (outbound.CacheRepository, error) {
		if cfg.Redis.Host == "" {
			log.Info("Using in-memory cache")
			return memory.NewCacheRepository(), nil
		}

		client, err := redisRepo.NewClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info("Using Redis cache", zap.String("host", cfg.Redis.Host))
		return redisRepo.NewCacheRepository(client, log), nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewHistoryRepository,
	gormRepo.NewUserRepository,
)

// ServiceModule provides application services and outbound adapters
var ServiceModule = fx.Provide(
	// Recipe search adapter
	func(cfg *config.Config, log *zap.Logger) outbound.RecipeSearchService {
		return tasty.NewClient(cfg.Tasty, log)
	},

	// Generative text adapter
	func(cfg *config.Config, log *zap.Logger) outbound.TextCompleter {
		return openai.NewClient(cfg.AI, log)
	},

	// Fallback synthesizer
	resolver.NewFallbackSynthesizer,

	// Resolution pipeline
	resolver.NewResolverService,

	// History service
	history.NewHistoryService,

	// User service
	func(userRepo outbound.UserRepository, cfg *config.Config, log *zap.Logger) *user.UserService {
		return user.NewUserService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, log)
	},
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Crave application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Crave application")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
