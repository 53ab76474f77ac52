package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/blogicum/backend/internal/config"
	"github.com/emilythestrangee/blogicum/backend/internal/models"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health reports "status" as "up" or "down" along with pool figures.
	Health(ctx context.Context) map[string]string

	// Migrate creates or updates the schema for every model.
	Migrate() error

	Close() error
	GetDB() *gorm.DB
}

const healthTimeout = 5 * time.Second

type service struct {
	db     *gorm.DB
	driver string
	name   string
	logger *slog.Logger
}

func dialector(cfg *config.Config) (gorm.Dialector, string) {
	if cfg.DBDriver == config.DriverSQLite {
		return sqlite.Open(cfg.DBPath), cfg.DBPath
	}
	return postgres.Open(cfg.DSN()), cfg.DBName
}

// New opens the configured database.
func New(cfg *config.Config, log *slog.Logger) (Service, error) {
	dial, name := dialector(cfg)

	level, slogLevel := logger.Warn, slog.LevelWarn
	if cfg.Debug {
		level, slogLevel = logger.Info, slog.LevelDebug
	}
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slogLevel),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("error getting database instance: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// A single connection keeps ":memory:" databases shared and
		// serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	log.Info("Database connected", slog.String("driver", cfg.DBDriver), slog.String("name", name))

	return &service{db: db, driver: cfg.DBDriver, name: name, logger: log}, nil
}

func (s *service) Migrate() error {
	err := s.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Post{},
		&models.Comment{},
	)
	if err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}
	s.logger.Info("Database migrations completed")
	return nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health pings the database within a bounded time and reports pool usage.
func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	stats := map[string]string{"driver": s.driver}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		s.logger.WarnContext(ctx, "Database health check failed", slog.Any("err", err))
		return stats
	}

	pool := sqlDB.Stats()
	stats["status"] = "up"
	stats["open_connections"] = strconv.Itoa(pool.OpenConnections)
	stats["in_use"] = strconv.Itoa(pool.InUse)
	stats["idle"] = strconv.Itoa(pool.Idle)
	return stats
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error getting database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}
	s.logger.Info("Database disconnected", slog.String("name", s.name))
	return nil
}
