package match

import (
	"context"
	"log/slog"
	"sort"

	"github.com/pkg/errors"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/store"
)

const (
	// Dimension is the embedding length produced by the vision sidecar
	// (ResNet50 penultimate layer). Records with any other length are
	// skipped at admission, never indexed.
	Dimension = 2048

	// VisualWeight and GeoWeight fuse the two signals. Visual identity is
	// the primary signal; geography disambiguates visually similar animals
	// in different places but never zeroes a match, since an animal may
	// have traveled.
	VisualWeight = 0.6
	GeoWeight    = 0.4

	// AlertThreshold is the strict lower bound a fused score must exceed
	// to raise an identity alert. It doubles as the lower edge of the
	// "high" confidence tier so alerting and display stay consistent.
	AlertThreshold = 0.85

	// PossibleThreshold is the lower edge of the "possible" tier.
	PossibleThreshold = 0.60

	// RegisterTopN is how many candidates the registration path scans for
	// an alert.
	RegisterTopN = 3

	// SearchTopK is the default candidate count for the search path.
	SearchTopK = 5

	// UnknownDistance marks a candidate whose distance to the query could
	// not be computed (missing geodata on either side).
	UnknownDistance = -1.0
)

// Candidate is a query-scoped match: one record with its visual, geo and
// fused scores. Constructed fresh per query, discarded with the response.
type Candidate struct {
	Record      *store.Pet
	VisualScore float64
	GeoScore    float64
	FusedScore  float64
	// DistanceKm is the great-circle distance from the query cell centroid
	// to the candidate's true coordinates, for display only; it plays no
	// part in scoring. UnknownDistance when geodata is missing.
	DistanceKm float64
}

// Alert is the one-shot outcome of a registration-time match above the
// alert threshold. It is surfaced once to the caller, never persisted.
type Alert struct {
	// SourceID is the newly registered record. The engine decides alerts
	// before that record exists in the store, so the caller fills this in
	// after creation.
	SourceID    int64
	MatchedID   int64
	MatchedName string
	FusedScore  float64
}

// RecordSource is the slice of the record store the engine reads from.
type RecordSource interface {
	ListPets(ctx context.Context, find *store.FindPet) ([]*store.Pet, error)
}

// Engine orchestrates a match query: vector search, batched record fetch,
// geo scoring, score fusion, ranking and the alert decision.
type Engine struct {
	index   *Index
	records RecordSource
	scorer  *geo.Scorer
}

// NewEngine creates a match engine over the given index, record source and
// geo scorer.
func NewEngine(index *Index, records RecordSource, scorer *geo.Scorer) *Engine {
	return &Engine{
		index:   index,
		records: records,
		scorer:  scorer,
	}
}

// Index exposes the underlying vector index.
func (e *Engine) Index() *Index {
	return e.index
}

// Fuse combines a visual and a geo score into the fused ranking score.
func Fuse(visualScore, geoScore float64) float64 {
	return VisualWeight*visualScore + GeoWeight*geoScore
}

// shouldAlert reports whether a fused score raises an identity alert.
// The bound is strict: exactly AlertThreshold does not alert.
func shouldAlert(fusedScore float64) bool {
	return fusedScore > AlertThreshold
}

// Confidence maps a fused score to its display tier. The "high" tier edge
// equals AlertThreshold by design.
func Confidence(fusedScore float64) string {
	switch {
	case fusedScore > AlertThreshold:
		return "high"
	case fusedScore > PossibleThreshold:
		return "possible"
	default:
		return "low"
	}
}

// Rank runs a match query and returns up to k candidates sorted descending
// by fused score. A query against an empty index, or whose candidates have
// all vanished from the store, yields an empty list; missing geodata
// degrades that candidate's geo score to zero without failing the query.
func (e *Engine) Rank(ctx context.Context, query []float32, queryCell geo.Cell, k int) ([]*Candidate, error) {
	results, err := e.index.Search(query, k)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []*Candidate{}, nil
	}

	// Keep the best visual score per ID: duplicate index entries for a
	// re-registered record collapse into a single candidate.
	visual := make(map[int64]float64, len(results))
	ids := make([]int64, 0, len(results))
	for _, r := range results {
		score := float64(r.Score)
		if prev, ok := visual[r.ID]; !ok {
			ids = append(ids, r.ID)
			visual[r.ID] = score
		} else if score > prev {
			visual[r.ID] = score
		}
	}

	pets, err := e.records.ListPets(ctx, &store.FindPet{IDs: ids})
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch candidate records")
	}

	queryLat, queryLon, queryOK := geo.DecodeCell(queryCell)

	candidates := make([]*Candidate, 0, len(pets))
	for _, pet := range pets {
		visualScore := visual[pet.ID]
		geoScore := e.scorer.Score(queryCell, geo.Cell(pet.GeoCell))

		distanceKm := UnknownDistance
		if queryOK {
			distanceKm = geo.HaversineKm(queryLat, queryLon, pet.Lat, pet.Lon)
		}

		candidates = append(candidates, &Candidate{
			Record:      pet,
			VisualScore: visualScore,
			GeoScore:    geoScore,
			FusedScore:  Fuse(visualScore, geoScore),
			DistanceKm:  distanceKm,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].FusedScore > candidates[j].FusedScore
	})
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

// DecideAlert ranks the top-N candidates and returns an alert for the
// first one whose fused score exceeds the threshold, or nil when none
// does. Scanning stops at the first hit: at most one alert per
// registration. Because Rank sorts by fused score, the first candidate
// over the threshold is also the best-scoring one; the scan is still
// written first-match so the policy survives any future change to
// candidate ordering.
func (e *Engine) DecideAlert(ctx context.Context, query []float32, queryCell geo.Cell, topN int) (*Alert, error) {
	candidates, err := e.Rank(ctx, query, queryCell, topN)
	if err != nil {
		return nil, err
	}
	for _, cand := range candidates {
		if shouldAlert(cand.FusedScore) {
			return &Alert{
				MatchedID:   cand.Record.ID,
				MatchedName: cand.Record.Name,
				FusedScore:  cand.FusedScore,
			}, nil
		}
	}
	return nil, nil
}

// Admit inserts a record's embedding into the index, skipping records
// whose embedding does not match the index dimension. Returns whether the
// record was indexed.
func (e *Engine) Admit(pet *store.Pet) bool {
	if len(pet.Embedding) != e.index.Dimension() {
		slog.Warn("skipping record with mismatched embedding dimension",
			"id", pet.ID, "got", len(pet.Embedding), "want", e.index.Dimension())
		return false
	}
	if err := e.index.Insert(pet.ID, pet.Embedding); err != nil {
		slog.Warn("failed to index record", "id", pet.ID, "error", err)
		return false
	}
	return true
}

// Rebuild clears the index and reloads every admissible record from the
// store. The store is the single source of truth; the index never
// survives a restart without a rebuild.
func (e *Engine) Rebuild(ctx context.Context) error {
	pets, err := e.records.ListPets(ctx, &store.FindPet{})
	if err != nil {
		return errors.Wrap(err, "failed to load records for rebuild")
	}

	e.index.Clear()
	indexed := 0
	for _, pet := range pets {
		if e.Admit(pet) {
			indexed++
		}
	}
	slog.Info("vector index rebuilt", "records", len(pets), "indexed", indexed)
	return nil
}
