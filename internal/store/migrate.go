package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator handles schema migrations using golang-migrate with the
// migrations embedded in the binary.
type Migrator struct {
	dsn string
}

func NewMigrator(dsn string) (*Migrator, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	return &Migrator{dsn: dsn}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Up(); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return err
	}
	return nil
}

func (m *Migrator) Down(ctx context.Context) error {
	mig, closer, err := m.instance()
	if err != nil {
		return err
	}
	defer closer()
	if err := mig.Steps(-1); err != nil {
		if err == migrate.ErrNoChange {
			return ErrNoChange
		}
		return err
	}
	return nil
}

func (m *Migrator) instance() (*migrate.Migrate, func(), error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, func() {}, err
	}
	mig, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+m.dsn)
	if err != nil {
		return nil, func() {}, err
	}
	return mig, func() { mig.Close() }, nil
}
