package postgres

import (
	"context"
	"database/sql"

	// Import the PostgreSQL driver.
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/patitas/patitas/internal/profile"
	"github.com/patitas/patitas/store"
)

type DB struct {
	db      *sql.DB
	profile *profile.Profile
}

// NewDB opens a postgres database specified by the profile DSN.
func NewDB(profile *profile.Profile) (store.Driver, error) {
	if profile.DSN == "" {
		return nil, errors.New("dsn required")
	}

	postgresDB, err := sql.Open("postgres", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open db with dsn: %s", profile.DSN)
	}

	driver := DB{db: postgresDB, profile: profile}

	return &driver, nil
}

func (d *DB) GetDB() *sql.DB {
	return d.db
}

func (d *DB) Close() error {
	return d.db.Close()
}

const schema = `
CREATE EXTENSION IF NOT EXISTS vector;

CREATE TABLE IF NOT EXISTS pet (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	district TEXT NOT NULL DEFAULT '',
	reference TEXT NOT NULL DEFAULT '',
	lat DOUBLE PRECISION NOT NULL,
	lon DOUBLE PRECISION NOT NULL,
	geo_cell TEXT NOT NULL DEFAULT '',
	image_path TEXT NOT NULL DEFAULT '',
	embedding vector(2048) NOT NULL,
	created_ts BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pet_geo_cell ON pet (geo_cell);
`

// Migrate applies the schema. Requires the pgvector extension to be
// installable by the connecting role.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to apply schema")
	}
	return nil
}
