package v1

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/patitas/patitas/internal/geo"
	"github.com/patitas/patitas/internal/match"
	"github.com/patitas/patitas/internal/vision"
	"github.com/patitas/patitas/store"
)

// maxUploadBytes bounds a single photo upload.
const maxUploadBytes = 10 << 20

// savedImageMaxSize is the bounding box uploads are downscaled into before
// being written to disk. The embedding is computed from the original bytes;
// only the stored copy is resized.
const savedImageMaxSize = 1024

type createReportResponse struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	District   string           `json:"district"`
	Label      string           `json:"label"`
	GeoSource  string           `json:"geo_source"`
	Alert      *alertResponse   `json:"alert,omitempty"`
	Candidates []*matchResponse `json:"candidates"`
}

type alertResponse struct {
	SourceID    int64   `json:"source_id"`
	MatchedID   int64   `json:"matched_id"`
	MatchedName string  `json:"matched_name"`
	FusedScore  float64 `json:"fused_score"`
}

// CreateReport registers a lost or found pet report: it embeds the photo,
// geocodes the place description, decides the identity alert against the
// pre-existing population, persists the record and admits it to the index.
func (s *APIV1Service) CreateReport(c echo.Context) error {
	ctx := c.Request().Context()

	name := c.FormValue("name")
	district := c.FormValue("district")
	reference := c.FormValue("reference")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
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
	if !verdict.Animal {
		return echo.NewHTTPError(http.StatusBadRequest, "the photo does not appear to show an animal")
	}

	resolution := s.Geocoder.Resolve(ctx, district, reference)
	cell := geo.EncodeCell(resolution.Lat, resolution.Lon, s.Profile.GeoCellResolution)

	// The alert is decided against the population as it was before this
	// report existed, so the new record can never match itself.
	alert, err := s.Engine.DecideAlert(ctx, verdict.Embedding, cell, match.RegisterTopN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to evaluate matches").SetInternal(err)
	}
	candidates, err := s.Engine.Rank(ctx, verdict.Embedding, cell, match.RegisterTopN)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to rank matches").SetInternal(err)
	}

	imagePath, err := s.savePhoto(image)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save photo").SetInternal(err)
	}

	pet, err := s.Store.CreatePet(ctx, &store.Pet{
		Name:      name,
		District:  district,
		Reference: reference,
		Lat:       resolution.Lat,
		Lon:       resolution.Lon,
		GeoCell:   string(cell),
		Embedding: verdict.Embedding,
		ImagePath: imagePath,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create report").SetInternal(err)
	}
	s.Engine.Admit(pet)
	reportsRegisteredCounter.Inc()

	response := &createReportResponse{
		ID:         pet.ID,
		Name:       pet.Name,
		District:   pet.District,
		Label:      verdict.Label,
		GeoSource:  resolution.Source.String(),
		Candidates: s.renderMatches(candidates),
	}
	if alert != nil {
		alert.SourceID = pet.ID
		alertsRaisedCounter.Inc()
		response.Alert = &alertResponse{
			SourceID:    alert.SourceID,
			MatchedID:   alert.MatchedID,
			MatchedName: alert.MatchedName,
			FusedScore:  alert.FusedScore,
		}
		if s.Notifier != nil {
			if err := s.Notifier.NotifyAlert(ctx, alert, pet.Name); err != nil {
				slog.Warn("failed to deliver alert notification", "source_id", alert.SourceID, "error", err)
			}
		}
	}

	return c.JSON(http.StatusOK, response)
}

// readPhoto reads the multipart "photo" file, bounded by maxUploadBytes.
func (s *APIV1Service) readPhoto(c echo.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "photo is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds the upload limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to open photo").SetInternal(err)
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "failed to read photo").SetInternal(err)
	}
	if len(image) > maxUploadBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "photo exceeds the upload limit")
	}
	return image, nil
}

// embed acquires an embedding slot and calls the sidecar.
func (s *APIV1Service) embed(ctx context.Context, image []byte) (*vision.Verdict, error) {
	if err := s.embedSemaphore.Acquire(ctx, 1); err != nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "embedding capacity exhausted").SetInternal(err)
	}
	defer s.embedSemaphore.Release(1)

	verdict, err := s.Embedder.Embed(ctx, image)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadGateway, "failed to analyze photo").SetInternal(err)
	}
	return verdict, nil
}

// savePhoto downscales the upload and writes it under the data directory,
// returning the stored path.
func (s *APIV1Service) savePhoto(image []byte) (string, error) {
	decoded, err := imaging.Decode(bytes.NewReader(image), imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	resized := imaging.Fit(decoded, savedImageMaxSize, savedImageMaxSize, imaging.Lanczos)

	path := filepath.Join(s.Profile.Data, "images", uuid.New().String()+".jpg")
	if err := imaging.Save(resized, path, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}
	return path, nil
}
