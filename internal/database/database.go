package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quiz-master/internal/config"
	"quiz-master/internal/logger"

	_ "github.com/godror/godror"       // driver: godror
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // driver: oracle
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // driver: sqlite
)

const (
	DriverOracle = "oracle"
	DriverGodror = "godror"
	DriverPgx    = "pgx"
	DriverSQLite = "sqlite"
)

func init() {
	// sqlx does not know the go-ora and modernc driver names.
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// SupportedDrivers lists the values accepted for db.driver.
func SupportedDrivers() []string {
	return []string{DriverOracle, DriverGodror, DriverPgx, DriverSQLite}
}

// Open connects to the configured database and pings it.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	driver := strings.ToLower(cfg.DB.Driver)
	dsn := cfg.GetDSN()

	switch driver {
	case DriverOracle, DriverGodror, DriverPgx:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q (want one of %s)", cfg.DB.Driver, strings.Join(SupportedDrivers(), ", "))
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// one writer avoids SQLITE_BUSY and keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.Get().Info("Database connection established", zap.String("driver", driver))
	return db, nil
}

// sqliteDSN turns a bare file name into a modernc DSN with foreign keys and a busy timeout.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "quiz-master.db"
	}
	if strings.Contains(dsn, "_pragma") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
