package gormstore

import (
	"fmt"
	"log/slog"
	"time"

	"carrierlink/internal/adapters/out/gormstore/deliveryrepo"
	"carrierlink/internal/adapters/out/gormstore/reviewrepo"
	"carrierlink/internal/adapters/out/gormstore/userrepo"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects the database. DSN is a libpq connection string for
// PostgreSQL and a file path (or ":memory:") for SQLite.
type Config struct {
	Driver string
	DSN    string
	Logger *slog.Logger
}

// PostgresDSN builds a key=value connection string.
func PostgresDSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects and verifies the connection. Driver errors for unique
// violations are translated to gorm.ErrDuplicatedKey.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.Logger != nil {
		gormConfig.Logger = newLogger(cfg.Logger)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One connection keeps ":memory:" databases shared and serializes writers.
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&userrepo.UserDTO{}, &deliveryrepo.DeliveryDTO{}, &reviewrepo.ReviewDTO{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newLogger(l *slog.Logger) logger.Interface {
	return logger.New(
		slog.NewLogLogger(l.With("component", "gorm").Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
