// Package match implements the identity matching engine: a flat in-memory
// vector index over visual embeddings and the fusion/ranking/alert logic
// that combines visual similarity with geospatial proximity.
package match

import (
	"math"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// SearchResult pairs a record ID with its cosine similarity to the query.
type SearchResult struct {
	ID    int64
	Score float32
}

// Index is a flat inner-product index over L2-normalized vectors, so the
// inner product equals cosine similarity. It holds no durable state: it is
// rebuilt in full from the record store at startup and appended to as new
// records are registered. There is no delete or update path.
//
// IDs are caller-assigned. Re-inserting an ID creates a duplicate entry;
// the index does not enforce uniqueness.
type Index struct {
	mu        sync.RWMutex
	dimension int
	ids       []int64
	vectors   [][]float32
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dimension int) *Index {
	return &Index{dimension: dimension}
}

// Dimension returns the fixed vector dimensionality of the index.
func (x *Index) Dimension() int {
	return x.dimension
}

// Len returns the number of stored entries, duplicates included.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.ids)
}

// Insert L2-normalizes the vector and appends it under the given ID.
// Vectors of the wrong dimension and zero-norm vectors are rejected.
func (x *Index) Insert(id int64, vector []float32) error {
	if len(vector) != x.dimension {
		return errors.Errorf("vector dimension mismatch: got %d, want %d", len(vector), x.dimension)
	}
	normalized, ok := normalizeL2(vector)
	if !ok {
		return errors.New("cannot index zero-norm vector")
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.ids = append(x.ids, id)
	x.vectors = append(x.vectors, normalized)
	return nil
}

// Search returns up to k entries sorted descending by cosine similarity.
// An empty index yields an empty result, not an error. The order of
// entries with exactly equal scores is unspecified.
func (x *Index) Search(query []float32, k int) ([]SearchResult, error) {
	if len(query) != x.dimension {
		return nil, errors.Errorf("query dimension mismatch: got %d, want %d", len(query), x.dimension)
	}
	if k <= 0 {
		return []SearchResult{}, nil
	}
	normalized, ok := normalizeL2(query)
	if !ok {
		return []SearchResult{}, nil
	}

	x.mu.RLock()
	results := make([]SearchResult, len(x.ids))
	for i, vec := range x.vectors {
		results[i] = SearchResult{ID: x.ids[i], Score: dot(normalized, vec)}
	}
	x.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Clear resets the index to empty, ahead of a full rebuild from the store.
func (x *Index) Clear() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.ids = nil
	x.vectors = nil
}

// normalizeL2 returns an L2-normalized copy of v, accumulating in float64
// for stability. ok is false for a zero-norm vector.
func normalizeL2(v []float32) ([]float32, bool) {
	var norm2 float64
	for _, c := range v {
		norm2 += float64(c) * float64(c)
	}
	if norm2 == 0 {
		return nil, false
	}
	inv := 1 / math.Sqrt(norm2)
	out := make([]float32, len(v))
	for i, c := range v {
		out[i] = float32(float64(c) * inv)
	}
	return out, true
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float32 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return float32(sum)
}
