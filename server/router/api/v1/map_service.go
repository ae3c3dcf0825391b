package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/store"
)

type mapPoint struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	District string  `json:"district"`
	// Lat/Lon are the report's cell centroid; true coordinates never leave
	// the service.
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Weight float64 `json:"weight"`
}

// ListMapPoints returns every report as a privacy-snapped point for the
// heat overlay. Reports whose cell cannot be decoded are omitted rather
// than rendered at their true location.
func (s *APIV1Service) ListMapPoints(c echo.Context) error {
	ctx := c.Request().Context()

	pets, err := s.Store.ListPets(ctx, &store.FindPet{})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list reports").SetInternal(err)
	}

	points := make([]*mapPoint, 0, len(pets))
	for _, pet := range pets {
		lat, lon, ok := geo.DecodeCell(geo.Cell(pet.GeoCell))
		if !ok {
			continue
		}
		points = append(points, &mapPoint{
			ID:       pet.ID,
			Name:     pet.Name,
			District: pet.District,
			Lat:      lat,
			Lon:      lon,
			Weight:   1.0,
		})
	}
	return c.JSON(http.StatusOK, points)
}
