package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreSelfSimilarity(t *testing.T) {
	scorer := NewScorer(20.0)
	cell := EncodeCell(-12.0464, -77.0428, DefaultResolution)
	require.NotEqual(t, CellNone, cell)
	require.Equal(t, 1.0, scorer.Score(cell, cell))
}

func TestScoreNullCells(t *testing.T) {
	scorer := NewScorer(20.0)
	cell := EncodeCell(-12.0464, -77.0428, DefaultResolution)

	require.Equal(t, 0.0, scorer.Score(CellNone, cell))
	require.Equal(t, 0.0, scorer.Score(cell, CellNone))
	// Two unknown locations carry no proximity evidence.
	require.Equal(t, 0.0, scorer.Score(CellNone, CellNone))
	require.Equal(t, 0.0, scorer.Score(Cell("garbage"), cell))
}

func TestScoreMonotonicDecay(t *testing.T) {
	scorer := NewScorer(20.0)
	// Lima Centro, Miraflores (~8km away), Villa El Salvador (~22km away).
	origin := EncodeCell(-12.0464, -77.0428, DefaultResolution)
	near := EncodeCell(-12.1211, -77.0297, DefaultResolution)
	far := EncodeCell(-12.2136, -76.9373, DefaultResolution)

	nearScore := scorer.Score(origin, near)
	farScore := scorer.Score(origin, far)
	require.Greater(t, nearScore, 0.0)
	require.Less(t, nearScore, 1.0)
	require.Greater(t, nearScore, farScore)
}

func TestScoreBeyondRadius(t *testing.T) {
	scorer := NewScorer(20.0)
	// Lima Centro to Ancon is ~37km, well past the cutoff.
	origin := EncodeCell(-12.0464, -77.0428, DefaultResolution)
	ancon := EncodeCell(-11.7767, -77.1763, DefaultResolution)

	require.Equal(t, 0.0, scorer.Score(origin, ancon))
}

func TestScoreCutoffBoundary(t *testing.T) {
	a := EncodeCell(-12.0464, -77.0428, DefaultResolution)
	b := EncodeCell(-12.1211, -77.0297, DefaultResolution)

	aLat, aLon, ok := DecodeCell(a)
	require.True(t, ok)
	bLat, bLon, ok := DecodeCell(b)
	require.True(t, ok)
	distance := HaversineKm(aLat, aLon, bLat, bLon)

	// A radius equal to the separation scores exactly zero.
	require.Equal(t, 0.0, NewScorer(distance).Score(a, b))
	// A slightly larger radius scores positive.
	require.Greater(t, NewScorer(distance*1.01).Score(a, b), 0.0)
}
