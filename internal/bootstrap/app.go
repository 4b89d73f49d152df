package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	app "github.com/unitynest/nest-backend/internal/application/user"
	"github.com/unitynest/nest-backend/internal/config"
	"github.com/unitynest/nest-backend/internal/infrastructure/db/models"
	"github.com/unitynest/nest-backend/internal/infrastructure/events"
	infrafile "github.com/unitynest/nest-backend/internal/infrastructure/file"
	"github.com/unitynest/nest-backend/internal/infrastructure/repository"
	"github.com/unitynest/nest-backend/internal/infrastructure/security"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// App holds the long-lived resources shared by the HTTP server and the CLI.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	Events *events.Dispatcher
	Tokens *security.TokenManager
	Hasher *security.BcryptHasher
}

func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(models.All()...); err != nil {
			return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), closeDB(db))
		}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create pgx pool: %w", err), closeDB(db))
	}

	a := &App{
		Config: cfg,
		DB:     db,
		Pool:   pool,
		Tokens: security.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		Hasher: security.NewBcryptHasher(cfg.BcryptCost),
	}

	sinks := []events.Sink{repository.NewAuditLogRepository(db)}
	if cfg.RedisAddr != "" {
		a.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			log.Printf("redis %s unreachable, each publish will fail until it recovers: %v", cfg.RedisAddr, err)
		}
		sinks = append(sinks, events.NewRedisPublisher(a.Redis, cfg.RedisChannel))
	}
	a.Events = events.NewDispatcher(events.DispatcherConfig{Buffer: cfg.EventBuffer}, sinks...)
	a.Events.Start()

	return a, nil
}

func (a *App) ImportUsers() app.ImportUsers {
	return app.NewImportUsers(app.ImportUsersDeps{
		Parser:   infrafile.NewRecordParser(a.Config.ImportMaxFileBytes),
		Lookup:   repository.NewUserLookupRepository(a.DB),
		Hasher:   a.Hasher,
		Importer: repository.NewUserImportRepository(a.Pool),
		Events:   a.Events,
		Recorder: repository.NewImportBatchRepository(a.DB),
	})
}

// Close drains pending events before releasing connections.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Events != nil {
		if err := a.Events.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain events: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
	if a.DB != nil {
		if err := closeDB(a.DB); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return nil
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
