package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"quiz-master/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

// Direction selects which migration files run.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies (or reverts) the embedded schema for db's driver.
// Postgres and SQLite are tracked by golang-migrate; Oracle runs the raw
// statements and tolerates objects that already exist.
func Migrate(ctx context.Context, db *sqlx.DB, dir Direction) error {
	switch db.DriverName() {
	case DriverSQLite:
		driver, err := sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
		if err != nil {
			return fmt.Errorf("failed to create sqlite migration driver: %w", err)
		}
		return runMigrate("sqlite", "migrations/sqlite", driver, dir)
	case DriverPgx:
		driver, err := pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
		if err != nil {
			return fmt.Errorf("failed to create pgx migration driver: %w", err)
		}
		return runMigrate("pgx5", "migrations/postgres", driver, dir)
	case DriverOracle, DriverGodror:
		return runRawMigrations(ctx, db, "migrations/oracle", dir)
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}
}

func runMigrate(name, path string, driver migratedb.Driver, dir Direction) error {
	src, err := iofs.New(migrationFiles, path)
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return fmt.Errorf("failed to initialise migrations: %w", err)
	}

	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", dir, err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info("Migrations applied",
		zap.String("driver", name),
		zap.String("direction", string(dir)),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty))
	return nil
}

// runRawMigrations executes every *.<dir>.sql file under path in name order,
// one statement at a time. Oracle rejects multi-statement Exec calls.
func runRawMigrations(ctx context.Context, db *sqlx.DB, path string, dir Direction) error {
	entries, err := fs.ReadDir(migrationFiles, path)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + string(dir) + ".sql"
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if dir == Down {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}

	for _, name := range files {
		content, err := fs.ReadFile(migrationFiles, path+"/"+name)
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if isAlreadyApplied(err) {
					logger.Get().Debug("Skipping already applied statement", zap.String("file", name), zap.Error(err))
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops
// comment-only lines.
func SplitStatements(script string) []string {
	var (
		out []string
		cur strings.Builder
	)
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			cur.WriteString(strings.TrimSuffix(trimmed, ";"))
			if stmt := strings.TrimSpace(cur.String()); stmt != "" {
				out = append(out, stmt)
			}
			cur.Reset()
			continue
		}
		cur.WriteString(trimmed)
		cur.WriteString("\n")
	}
	if stmt := strings.TrimSpace(cur.String()); stmt != "" {
		out = append(out, stmt)
	}
	return out
}

// ORA-00955: name is already used by an existing object
// ORA-00942: table or view does not exist (dropping twice)
func isAlreadyApplied(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "ORA-00955") || strings.Contains(msg, "ORA-00942")
}
