package store

import (
	"context"
	"database/sql"
	errs "errors"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/linegrep/internal/util"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error { return d.sql.Close() }

// Open connects to the history database per config. cfg.DSN is a plain
// sqlite file path.
func Open(ctx context.Context, cfg util.Config) (*DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("missing DSN")
	}
	gdb, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	// Single writer; sqlite serializes anyway.
	sdb.SetMaxOpenConns(1)
	sdb.SetMaxIdleConns(1)
	sdb.SetConnMaxLifetime(30 * time.Minute)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping sqlite")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}
