package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/internal/match"
)

type matchResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	District    string  `json:"district"`
	VisualScore float64 `json:"visual_score"`
	GeoScore    float64 `json:"geo_score"`
	FusedScore  float64 `json:"fused_score"`
	Confidence  string  `json:"confidence"`
	DistanceKm  float64 `json:"distance_km"`
	// Lat/Lon are the candidate's cell centroid, never its true coordinate.
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type searchResponse struct {
	GeoSource string           `json:"geo_source"`
	CenterLat float64          `json:"center_lat"`
	CenterLon float64          `json:"center_lon"`
	Matches   []*matchResponse `json:"matches"`
}

// SearchReports runs a similarity search for an uploaded photo without
// registering anything. Unlike registration, the animal verdict is not
// enforced: a searcher with a poor photo still deserves best-effort results.
func (s *APIV1Service) SearchReports(c echo.Context) error {
	ctx := c.Request().Context()

	district := c.FormValue("district")
	reference := c.FormValue("reference")
	if district == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "district is required")
	}

	image, err := s.readPhoto(c)
	if err != nil {
		return err
	}
	verdict, err := s.embed(ctx, image)
	if err != nil {
		return err
	}

	resolution := s.Geocoder.Resolve(ctx, district, reference)
	cell := geo.EncodeCell(resolution.Lat, resolution.Lon, s.Profile.GeoCellResolution)

	candidates, err := s.Engine.Rank(ctx, verdict.Embedding, cell, match.SearchTopK)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to rank matches").SetInternal(err)
	}
	searchesServedCounter.Inc()

	// The search center is snapped to its cell centroid like every other
	// coordinate that leaves the service.
	centerLat, centerLon, ok := geo.DecodeCell(cell)
	if !ok {
		centerLat, centerLon = resolution.Lat, resolution.Lon
	}

	return c.JSON(http.StatusOK, &searchResponse{
		GeoSource: resolution.Source.String(),
		CenterLat: centerLat,
		CenterLon: centerLon,
		Matches:   s.renderMatches(candidates),
	})
}

// renderMatches converts engine candidates to the wire shape, replacing
// every true coordinate with its cell centroid.
func (s *APIV1Service) renderMatches(candidates []*match.Candidate) []*matchResponse {
	matches := make([]*matchResponse, 0, len(candidates))
	for _, cand := range candidates {
		lat, lon, _ := geo.DecodeCell(geo.Cell(cand.Record.GeoCell))
		matches = append(matches, &matchResponse{
			ID:          cand.Record.ID,
			Name:        cand.Record.Name,
			District:    cand.Record.District,
			VisualScore: cand.VisualScore,
			GeoScore:    cand.GeoScore,
			FusedScore:  cand.FusedScore,
			Confidence:  match.Confidence(cand.FusedScore),
			DistanceKm:  cand.DistanceKm,
			Lat:         lat,
			Lon:         lon,
		})
	}
	return matches
}
