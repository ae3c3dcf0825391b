package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/patitas/patitas/internal/profile"
	"github.com/patitas/patitas/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens the sqlite database file named by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	// Connect with sane settings:
	// - Journal mode set to WAL: prevents most locking issues for a
	//   single-writer workload.
	// - busy_timeout so a slow checkpoint doesn't surface as SQLITE_BUSY.
	//
	// With the `modernc.org/sqlite` driver, each pragma must be prefixed
	// with `_pragma=`.
	sqliteDB, err := sql.Open("sqlite", profile.DSN+"?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	// Single connection is optimal for SQLite with WAL; the service is
	// single-writer by design anyway.
	sqliteDB.SetMaxOpenConns(1)
	sqliteDB.SetMaxIdleConns(1)
	sqliteDB.SetConnMaxLifetime(0)
	sqliteDB.SetConnMaxIdleTime(0)

	driver := DB{db: sqliteDB, profile: profile}

	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS pet (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	district TEXT NOT NULL DEFAULT '',
	reference TEXT NOT NULL DEFAULT '',
	lat REAL NOT NULL,
	lon REAL NOT NULL,
	geo_cell TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT '',
	embedding BLOB NOT NULL,
	created_ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pet_geo_cell ON pet (geo_cell);
`

// Migrate applies the schema. The schema is append-only DDL guarded by IF
// NOT EXISTS, so re-running it on an initialized database is a no-op.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
