package db

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/musiclib/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB represents our catalog database.
type DB struct{ *gorm.DB }

//go:embed schema_sqlite.sql
var sqliteSchema string

//go:embed schema_postgres.sql
var postgresSchema string

type Config struct {
	// "sqlite" (the default) or "postgres"
	Driver string

	// For sqlite, a filename, optionally with query parameters. For postgres,
	// a libpq-style connection string or URL.
	DSN string
}

// Open returns a connection to the database described by cfg, creating any
// missing tables.
//
// Foreign keys are enforced by the database: deleting an artist deletes its
// albums and songs, and deleting an album clears album_id on its songs.
func Open(cfg Config) (*DB, error) {
	dialector, schema, err := dialect(cfg)
	if err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.GetLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening %s db at '%s': %w", cfg.Driver, cfg.DSN, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating tables in %s db at '%s': %w", cfg.Driver, cfg.DSN, err)
	}

	return db, nil
}

func dialect(cfg Config) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return sqlite.Open(sqliteDSN(cfg.DSN)), sqliteSchema, nil
	case "postgres":
		return postgres.Open(cfg.DSN), postgresSchema, nil
	default:
		return nil, "", fmt.Errorf("unsupported db driver '%s'", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement, which sqlite leaves off per
// connection unless asked.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func (db *DB) Close() error {
	pool, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("error getting db pool: %w", err)
	}
	return pool.Close()
}
