package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeCellDeterministic(t *testing.T) {
	lat, lon := -12.1211, -77.0297

	a := EncodeCell(lat, lon, DefaultResolution)
	b := EncodeCell(lat, lon, DefaultResolution)
	require.NotEqual(t, CellNone, a)
	require.Equal(t, a, b)
}

func TestEncodeCellInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		lat  float64
		lon  float64
	}{
		{"latitude too large", 91, 0},
		{"latitude too small", -91, 0},
		{"longitude too large", 0, 181},
		{"longitude too small", 0, -181},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, CellNone, EncodeCell(tt.lat, tt.lon, DefaultResolution))
		})
	}
}

func TestDecodeCellNone(t *testing.T) {
	_, _, ok := DecodeCell(CellNone)
	require.False(t, ok)

	_, _, ok = DecodeCell(Cell("not-a-cell"))
	require.False(t, ok)
}

// Quantization is idempotent: a cell centroid re-encodes to the same cell.
func TestSnapIdempotent(t *testing.T) {
	lat, lon := -12.0464, -77.0428

	cell := EncodeCell(lat, lon, DefaultResolution)
	require.NotEqual(t, CellNone, cell)

	snapLat, snapLon, ok := DecodeCell(cell)
	require.True(t, ok)
	require.Equal(t, cell, EncodeCell(snapLat, snapLon, DefaultResolution))

	againLat, againLon, ok := Snap(snapLat, snapLon, DefaultResolution)
	require.True(t, ok)
	require.InDelta(t, snapLat, againLat, 1e-9)
	require.InDelta(t, snapLon, againLon, 1e-9)
}

// Nearby points quantize into a nearby (often identical) cell: the centroid
// must stay within one cell edge of the input.
func TestSnapStaysClose(t *testing.T) {
	lat, lon := -12.0464, -77.0428

	snapLat, snapLon, ok := Snap(lat, lon, DefaultResolution)
	require.True(t, ok)
	require.Less(t, HaversineKm(lat, lon, snapLat, snapLon), 0.5)
}

func TestHaversineKm(t *testing.T) {
	// One degree of longitude on the equator.
	require.InDelta(t, 111.19, HaversineKm(0, 0, 0, 1), 0.05)
	require.Zero(t, HaversineKm(-12.0464, -77.0428, -12.0464, -77.0428))
	// Symmetric.
	require.InDelta(t,
		HaversineKm(-12.0464, -77.0428, -12.1211, -77.0297),
		HaversineKm(-12.1211, -77.0297, -12.0464, -77.0428),
		1e-9)
}
