// Package geo provides the geospatial primitives of the matching pipeline:
// H3 cell encoding for coarse location identity and privacy snapping, the
// bounded proximity scorer, and place-text geocoding.
package geo

import (
	"math"
	"strconv"

	h3 "github.com/uber/h3-go/v4"
)

// Cell is an H3 cell identifier in hex form, suitable for storage as text.
// The zero value marks an unknown or unencodable location; every consumer
// must treat it as "no geodata", never as an error.
type Cell string

// CellNone is the null cell sentinel.
const CellNone = Cell("")

// DefaultResolution is the H3 resolution used for all stored cells.
// At resolution 9 a cell edge is ~170m, roughly city-block granularity:
// coarse enough to anonymize an address, fine enough to score proximity.
const DefaultResolution = 9

// EarthRadiusKm is the spherical-earth approximation radius.
const EarthRadiusKm = 6371.0

// EncodeCell quantizes a coordinate to its H3 cell at the given resolution.
// Encoding is deterministic: the same coordinate always yields the same cell.
// Out-of-range coordinates yield CellNone.
func EncodeCell(lat, lon float64, resolution int) Cell {
	if !validCoordinate(lat, lon) {
		return CellNone
	}
	cell, err := h3.LatLngToCell(h3.NewLatLng(lat, lon), resolution)
	if err != nil {
		return CellNone
	}
	return Cell(strconv.FormatUint(uint64(cell), 16))
}

// DecodeCell returns the centroid of a cell, not any original coordinate:
// the codec is a lossy spatial quantizer, and decode(encode(p)) != p in
// general. ok is false for CellNone or a malformed identifier.
func DecodeCell(c Cell) (lat, lon float64, ok bool) {
	if c == CellNone {
		return 0, 0, false
	}
	raw, err := strconv.ParseUint(string(c), 16, 64)
	if err != nil {
		return 0, 0, false
	}
	latLng, err := h3.CellToLatLng(h3.Cell(raw))
	if err != nil {
		return 0, 0, false
	}
	return latLng.Lat, latLng.Lng, true
}

// Snap replaces a true coordinate with its cell centroid. Every rendering
// path (maps, heat overlays, search results) must go through Snap so that a
// reporter's exact location never leaves the service.
func Snap(lat, lon float64, resolution int) (float64, float64, bool) {
	return DecodeCell(EncodeCell(lat, lon, resolution))
}

// HaversineKm computes the great-circle distance between two coordinates in
// kilometers on a spherical earth.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
