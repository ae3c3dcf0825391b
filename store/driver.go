package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store database drivers.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	CreatePet(ctx context.Context, create *Pet) (*Pet, error)
	ListPets(ctx context.Context, find *FindPet) ([]*Pet, error)
}
