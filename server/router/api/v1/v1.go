// Package v1 implements the REST handlers: pet report registration,
// similarity search, map points and poster digitization.
package v1

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/internal/match"
	"github.com/patitas/patitas/internal/ocr"
	"github.com/patitas/patitas/internal/profile"
	"github.com/patitas/patitas/internal/vision"
	"github.com/patitas/patitas/plugin/notifier"
	"github.com/patitas/patitas/store"
)

// maxConcurrentEmbeds caps in-flight sidecar calls so a burst of uploads
// cannot pile up on the GPU.
const maxConcurrentEmbeds = 3

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Engine   *match.Engine
	Embedder vision.Embedder
	Geocoder geo.Geocoder
	Notifier notifier.Notifier
	OCR      *ocr.Reader

	embedSemaphore *semaphore.Weighted
}

func NewAPIV1Service(
	profile *profile.Profile,
	store *store.Store,
	engine *match.Engine,
	embedder vision.Embedder,
	geocoder geo.Geocoder,
	alertNotifier notifier.Notifier,
	posterReader *ocr.Reader,
) *APIV1Service {
	return &APIV1Service{
		Profile:        profile,
		Store:          store,
		Engine:         engine,
		Embedder:       embedder,
		Geocoder:       geocoder,
		Notifier:       alertNotifier,
		OCR:            posterReader,
		embedSemaphore: semaphore.NewWeighted(maxConcurrentEmbeds),
	}
}

// RegisterRoutes mounts all v1 endpoints on the echo server.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/reports", s.CreateReport)
	g.POST("/search", s.SearchReports)
	g.GET("/map/points", s.ListMapPoints)
	g.POST("/posters", s.DigitizePoster)
}
