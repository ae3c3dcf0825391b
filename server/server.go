// Package server wires the HTTP surface over the matching engine and its
// collaborators.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/internal/match"
	"github.com/patitas/patitas/internal/ocr"
	"github.com/patitas/patitas/internal/profile"
	"github.com/patitas/patitas/internal/vision"
	"github.com/patitas/patitas/plugin/notifier"
	apiv1 "github.com/patitas/patitas/server/router/api/v1"
	"github.com/patitas/patitas/store"
)

type Server struct {
	Store *store.Store

	echoServer *echo.Echo
	profile    *profile.Profile
	apiV1      *apiv1.APIV1Service
}

// NewServer builds the full service: collaborator clients, the match
// engine with its index rebuilt from the store, and the echo routes.
func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})
	echoServer.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	imagesDir := filepath.Join(profile.Data, "images")
	if err := os.MkdirAll(imagesDir, 0770); err != nil {
		return nil, errors.Wrapf(err, "failed to create images directory %s", imagesDir)
	}

	embedder := vision.NewSidecarEmbedder(
		profile.VisionBaseURL,
		match.Dimension,
		time.Duration(profile.VisionTimeout)*time.Second,
	)
	geocoder := geo.NewNominatimGeocoder(profile.NominatimBaseURL, profile.GeocoderUserAgent)

	engine := match.NewEngine(
		match.NewIndex(match.Dimension),
		store,
		geo.NewScorer(profile.GeoMaxRadiusKm),
	)
	// The index is derived, disposable state: rebuild it from the store on
	// every process start.
	if err := engine.Rebuild(ctx); err != nil {
		return nil, err
	}

	var channels notifier.Multi
	if profile.IsNotifierEnabled() {
		tn, err := notifier.NewTelegramNotifier(profile.TelegramBotToken, profile.TelegramChatID)
		if err != nil {
			slog.Warn("failed to initialize telegram notifier, alerts will not be pushed", "error", err)
		} else {
			channels = append(channels, tn)
			slog.Info("telegram alert notifier enabled", "chat_id", profile.TelegramChatID)
		}
	}
	if profile.AlertWebhookURL != "" {
		channels = append(channels, notifier.NewWebhookNotifier(profile.AlertWebhookURL))
		slog.Info("webhook alert notifier enabled")
	}
	var alertNotifier notifier.Notifier
	if len(channels) > 0 {
		alertNotifier = channels
	}

	var posterReader *ocr.Reader
	if profile.OCREnabled {
		posterReader = ocr.NewReader(profile.TesseractPath, profile.TessdataPath, profile.OCRLanguages)
	}

	apiV1 := apiv1.NewAPIV1Service(profile, store, engine, embedder, geocoder, alertNotifier, posterReader)
	apiV1.RegisterRoutes(echoServer)

	s := &Server{
		Store:      store,
		echoServer: echoServer,
		profile:    profile,
		apiV1:      apiV1,
	}

	return s, nil
}

// Start begins serving in the background.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.profile.Addr, s.profile.Port)
	go func() {
		if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
		}
	}()
	return nil
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown complete")
}
