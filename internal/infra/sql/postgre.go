package sql

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	_maxRetries     = 10
	_retryDelay     = 5 * time.Second
	_migrationTable = "schema_migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type PostgreDatabase struct {
	url  string
	Conn *pgxpool.Pool
	once sync.Once
}

var _ Database = (*PostgreDatabase)(nil)

var (
	postgreInstance *PostgreDatabase
	postgreOnce     sync.Once
)

func withPassword(dsn string) string {
	if pass, ok := os.LookupEnv("PROSPECTAR_SERVER_POSTGRES_PASSWORD"); ok {
		return fmt.Sprintf("%s password=%s", dsn, pass)
	}
	return dsn
}

// NewPostgreORM opens gorm over the DSN. Schema changes are owned by the
// embedded migrations unless autoMigrate is set.
func NewPostgreORM(dsn string, timeout time.Duration, autoMigrate bool) (*DB, error) {
	gormDB, err := gorm.Open(postgres.Open(withPassword(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: autoMigrate,
		timeout:              timeout,
	}, nil
}

func NewPostgreDatabase(url string) *PostgreDatabase {
	postgreOnce.Do(func() {
		postgreInstance = &PostgreDatabase{
			url: url,
		}
	})

	return postgreInstance
}

func (d *PostgreDatabase) Open(ctx context.Context) error {
	for try := range _maxRetries {
		conn, err := pgxpool.New(ctx, d.url)
		if err == nil {
			err = conn.Ping(ctx)
		}
		if err == nil {
			d.Conn = conn
			return nil
		}

		slog.Warn("connecting to postgres",
			slog.Int("attempt", try+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(_retryDelay):
		}
	}

	return fmt.Errorf("imposible to connect to database after %d retries", _maxRetries)
}

func (d *PostgreDatabase) Close() {
	d.once.Do(func() {
		if d.Conn != nil {
			d.Conn.Close()
		}
	})
}

func (d *PostgreDatabase) Command(ctx context.Context, sql string, args ...any) error {
	_, err := d.Conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	return nil
}

// Up applies pending embedded migrations in file name order. Placeholders of
// the form ${KEY} are substituted from replacements.
func (d *PostgreDatabase) Up(ctx context.Context, replacements map[string]string) error {
	if err := d.Command(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (name TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW())",
		_migrationTable,
	)); err != nil {
		return fmt.Errorf("creating migration table: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		var applied bool
		err := d.Conn.QueryRow(ctx,
			fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE name = $1)", _migrationTable),
			name,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("checking migration %s: %w", name, err)
		}
		if applied {
			continue
		}

		content, err := migrationFiles.ReadFile(name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := d.apply(ctx, name, expand(string(content), replacements)); err != nil {
			return err
		}
		slog.Info("migration applied", slog.String("name", name))
	}

	return nil
}

func (d *PostgreDatabase) apply(ctx context.Context, name, statement string) error {
	tx, err := d.Conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting migration %s: %w", name, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, statement); err != nil {
		return fmt.Errorf("running migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("INSERT INTO %s (name) VALUES ($1)", _migrationTable), name); err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}

	return tx.Commit(ctx)
}

func expand(statement string, replacements map[string]string) string {
	if _, ok := replacements["SCHEMA"]; !ok {
		statement = strings.ReplaceAll(statement, "${SCHEMA}", "public")
	}
	for key, value := range replacements {
		statement = strings.ReplaceAll(statement, "${"+key+"}", value)
	}
	return statement
}
