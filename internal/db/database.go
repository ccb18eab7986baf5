package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Skotchmaster/product_catalog/internal/models"
)

const sqlitePrefix = "sqlite://"

// PostgreSQL drivers selectable through DB_DRIVER.
const (
	DriverPgx = "pgx"
	DriverPQ  = "pq"
)

func configurePool(sqlDB *sql.DB) {
	const (
		maxOpenConns    = 20
		maxIdleConns    = 10
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// Open connects to PostgreSQL through driver, or to SQLite when dsn starts
// with sqlite://, and verifies the connection with a ping.
func Open(ctx context.Context, driver, dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	var (
		db  *gorm.DB
		err error
	)
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		db, err = OpenSQLite(path)
	} else {
		cfg := gormConfig()
		cfg.PrepareStmt = true
		switch driver {
		case DriverPgx, "":
			db, err = gorm.Open(postgres.Open(dsn), cfg)
		case DriverPQ:
			db, err = gorm.Open(postgres.New(postgres.Config{DriverName: "postgres", DSN: dsn}), cfg)
		default:
			return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if db.Dialector.Name() != "sqlite" {
		configurePool(sqlDB)
	}

	if err := Ping(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a SQLite database with foreign keys enforced. A single
// connection is used so that ":memory:" databases are shared by every query.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		path = ":memory:"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := gorm.Open(sqlite.Open(path+sep+"_pragma=foreign_keys(1)"), gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Migrate creates or updates the catalog tables; extra models (for example the
// SQL session table) are migrated alongside.
func Migrate(ctx context.Context, db *gorm.DB, extra ...any) error {
	tables := append(models.All(), extra...)
	if err := db.WithContext(ctx).AutoMigrate(tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
