package geo

// Scorer turns the distance between two cells into a bounded [0,1] score.
type Scorer struct {
	// MaxRadiusKm is the hard cutoff: any pair of cells farther apart than
	// this scores 0. The score decays linearly from 1 to 0 over the radius.
	MaxRadiusKm float64
}

// NewScorer creates a Scorer with the given cutoff radius in kilometers.
func NewScorer(maxRadiusKm float64) *Scorer {
	return &Scorer{MaxRadiusKm: maxRadiusKm}
}

// Score returns the proximity score between two cells.
//
// An exact cell match scores 1.0 regardless of intra-cell offset. A null or
// undecodable cell on either side scores 0.0: absent geodata degrades to "no
// geo support for this match", never to a failure. score(null, null) is 0.0,
// not 1.0.
func (s *Scorer) Score(a, b Cell) float64 {
	if a == CellNone || b == CellNone {
		return 0.0
	}
	if a == b {
		return 1.0
	}

	lat1, lon1, ok := DecodeCell(a)
	if !ok {
		return 0.0
	}
	lat2, lon2, ok := DecodeCell(b)
	if !ok {
		return 0.0
	}

	distanceKm := HaversineKm(lat1, lon1, lat2, lon2)
	if distanceKm > s.MaxRadiusKm {
		return 0.0
	}
	score := 1 - distanceKm/s.MaxRadiusKm
	if score < 0 {
		return 0.0
	}
	return score
}
