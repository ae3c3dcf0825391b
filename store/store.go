package store

import (
	"context"
	"time"

	"github.com/patitas/patitas/internal/profile"
)

// Store provides database access to all raw objects. It is the single
// source of truth: the in-memory vector index is derived state rebuilt from
// this store on every process start.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate applies the schema for the configured driver.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// CreatePet persists a new report. The store assigns the ID; the caller
// must treat the record as immutable afterwards.
func (s *Store) CreatePet(ctx context.Context, create *Pet) (*Pet, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	return s.driver.CreatePet(ctx, create)
}

// ListPets lists pet reports matching the find condition.
func (s *Store) ListPets(ctx context.Context, find *FindPet) ([]*Pet, error) {
	return s.driver.ListPets(ctx, find)
}

// ListPetsByIDs fetches a batch of reports in a single query. Missing IDs
// are silently absent from the result; callers treat them as "not found",
// not as errors.
func (s *Store) ListPetsByIDs(ctx context.Context, ids []int64) ([]*Pet, error) {
	if len(ids) == 0 {
		return []*Pet{}, nil
	}
	return s.driver.ListPets(ctx, &FindPet{IDs: ids})
}
