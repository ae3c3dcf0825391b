package store

import (
	"math"

	"github.com/pkg/errors"
)

// Pet represents a registered lost/found animal report. Records are
// write-once: created at registration time, never mutated or deleted.
type Pet struct {
	ID        int64
	Name      string
	District  string
	Reference string
	Lat       float64
	Lon       float64
	// GeoCell is the grid cell derived from (Lat, Lon) at registration time.
	// It is stored, not recomputed, so the cell a record was scored against
	// stays stable even if the deployment resolution changes later.
	GeoCell   string
	Embedding []float32
	ImagePath string
	CreatedTs int64
}

// FindPet is the find condition for pet reports.
type FindPet struct {
	ID  *int64
	IDs []int64
}

// Validate checks the fields the store refuses to persist without. It does
// not enforce the embedding dimension: admission into the vector index is
// the matching layer's boundary, and the store keeps whatever the embedder
// produced.
func (p *Pet) Validate() error {
	if p.Name == "" {
		return errors.New("name cannot be empty")
	}
	if len(p.Embedding) == 0 {
		return errors.New("embedding cannot be empty")
	}
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return errors.Errorf("invalid latitude: %f", p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return errors.Errorf("invalid longitude: %f", p.Lon)
	}
	return nil
}
