package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Source tags how a Resolution was obtained, so callers can distinguish
// "found" from "degraded" without relying on error side channels.
type Source int

const (
	// SourceResolved means the geocoder found the exact reference.
	SourceResolved Source = iota
	// SourceFallback means the static district table supplied the coordinate.
	SourceFallback
)

func (s Source) String() string {
	if s == SourceResolved {
		return "resolved"
	}
	return "fallback"
}

// Resolution is the tagged outcome of geocoding a place description.
type Resolution struct {
	Lat    float64
	Lon    float64
	Source Source
}

// Geocoder resolves a free-text place description to a coordinate.
// Resolve never fails: the worst outcome is a district-level fallback.
type Geocoder interface {
	Resolve(ctx context.Context, district, reference string) Resolution
}

// NominatimGeocoder resolves references through the Nominatim search API,
// falling back to the static district table on any miss or failure.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

// NewNominatimGeocoder creates a geocoder against the given Nominatim
// endpoint. Requests are limited to one per second per the Nominatim usage
// policy.
func NewNominatimGeocoder(baseURL, userAgent string) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 5 * time.Second},
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve geocodes "reference, district, Lima, Peru". With an empty
// reference the district center is returned directly, tagged as fallback.
func (g *NominatimGeocoder) Resolve(ctx context.Context, district, reference string) Resolution {
	lat, lon := FallbackCoordinates(district)
	fallback := Resolution{Lat: lat, Lon: lon, Source: SourceFallback}

	if reference == "" {
		return fallback
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return fallback
	}

	query := fmt.Sprintf("%s, %s, Lima, Peru", reference, district)
	endpoint := g.baseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Debug("geocoding request failed, using district fallback", "district", district, "error", err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Debug("geocoding returned non-OK status, using district fallback", "district", district, "status", resp.StatusCode)
		return fallback
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil || len(places) == 0 {
		return fallback
	}

	rLat, latErr := strconv.ParseFloat(places[0].Lat, 64)
	rLon, lonErr := strconv.ParseFloat(places[0].Lon, 64)
	if latErr != nil || lonErr != nil || !validCoordinate(rLat, rLon) {
		return fallback
	}

	return Resolution{Lat: rLat, Lon: rLon, Source: SourceResolved}
}
