package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSuccess(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "-12.1203", "lon": "-77.0305"}]`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "patitas-test/1.0")
	res := g.Resolve(context.Background(), "Miraflores", "Parque Kennedy")

	require.Equal(t, SourceResolved, res.Source)
	require.InDelta(t, -12.1203, res.Lat, 1e-9)
	require.InDelta(t, -77.0305, res.Lon, 1e-9)
	require.Equal(t, "Parque Kennedy, Miraflores, Lima, Peru", gotQuery)
	require.Equal(t, "patitas-test/1.0", gotAgent)
}

func TestResolveEmptyReferenceSkipsHTTP(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	g := NewNominatimGeocoder(server.URL, "patitas-test/1.0")
	res := g.Resolve(context.Background(), "Miraflores", "")

	require.False(t, called)
	require.Equal(t, SourceFallback, res.Source)
	wantLat, wantLon := FallbackCoordinates("Miraflores")
	require.Equal(t, wantLat, res.Lat)
	require.Equal(t, wantLon, res.Lon)
}

func TestResolveFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"server error",
			func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		},
		{
			"empty result",
			func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`[]`)) },
		},
		{
			"malformed body",
			func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte(`not json`)) },
		},
		{
			"unparseable coordinates",
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"lat": "north", "lon": "west"}]`))
			},
		},
		{
			"out-of-range coordinates",
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"lat": "123.0", "lon": "-77.0"}]`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			g := NewNominatimGeocoder(server.URL, "patitas-test/1.0")
			res := g.Resolve(context.Background(), "San Borja", "Av. San Luis 2000")

			require.Equal(t, SourceFallback, res.Source)
			wantLat, wantLon := FallbackCoordinates("San Borja")
			require.Equal(t, wantLat, res.Lat)
			require.Equal(t, wantLon, res.Lon)
		})
	}
}

func TestFallbackCoordinatesUnknownDistrict(t *testing.T) {
	lat, lon := FallbackCoordinates("Narnia")
	require.Equal(t, limaCentro[0], lat)
	require.Equal(t, limaCentro[1], lon)
}
