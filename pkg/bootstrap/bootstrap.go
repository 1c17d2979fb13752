// Package bootstrap builds the process-wide resources: the logger and the database handles.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/andreastrap/productos/pkg/config"
	"github.com/andreastrap/productos/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewLogger creates a new slog.Logger instance with the specified log level.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts))
	return slog.New(logHandler)
}

// NewDbPool creates a new database connection pool with the provided context and configuration,
// and pings the database so that a wrong URL fails at startup.
func NewDbPool(ctx context.Context, url string, connectTimeout time.Duration) (*pgxpool.Pool, error) {
	poolCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	dbPool, errPool := pgxpool.New(poolCtx, url)
	if errPool != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", errPool)
	}
	if err := dbPool.Ping(poolCtx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return dbPool, nil
}

// sqliteDriverName is the database/sql driver whose connections replace sqlite's ASCII-only lower().
const sqliteDriverName = "sqlite3_unicode"

var registerSqliteDriver sync.Once

// SqliteDialector returns a gorm sqlite dialector whose lower() folds case with Unicode rules,
// so that "Ñandú" and "ñandú" compare equal ignoring case.
func SqliteDialector(dsn string) gorm.Dialector {
	registerSqliteDriver.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", strings.ToLower, true)
			},
		})
	})
	return &sqlite.Dialector{DriverName: sqliteDriverName, DSN: dsn}
}

// NewGormDB opens a gorm connection for a postgres or sqlite URL and pings it.
// gorm warnings and errors go through logger; "record not found" is not logged.
func NewGormDB(ctx context.Context, url string, connectTimeout time.Duration, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case config.IsPostgresURL(url):
		dialector = postgres.Open(url)
	case config.IsSqliteURL(url):
		dialector = SqliteDialector(sqliteDSN(url))
	default:
		return nil, fmt.Errorf("unsupported database URL: %s", config.MaskURL(url))
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.NewSlogLogger(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return gdb, nil
}

// sqliteDSN strips the "sqlite://" scheme; "file:" URLs are passed through as-is.
func sqliteDSN(url string) string {
	return strings.TrimPrefix(url, "sqlite://")
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
