package v1

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/patitas/patitas/internal/ocr"
)

type posterResponse struct {
	RawText string          `json:"raw_text"`
	Info    *ocr.PosterInfo `json:"info"`
}

// DigitizePoster extracts and parses the text of a lost-pet poster photo.
func (s *APIV1Service) DigitizePoster(c echo.Context) error {
	ctx := c.Request().Context()

	if s.OCR == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "poster digitization is not enabled")
	}

	image, err := s.readPhoto(c)
	if err != nil {
		return err
	}

	// tesseract reads from a file path, so the upload is staged in a temp
	// file for the duration of the call.
	tmp, err := os.CreateTemp("", "poster-*.img")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage poster").SetInternal(err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage poster").SetInternal(err)
	}
	if err := tmp.Close(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stage poster").SetInternal(err)
	}

	raw, err := s.OCR.ExtractText(ctx, tmp.Name())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to read poster text").SetInternal(err)
	}
	postersParsedCounter.Inc()

	return c.JSON(http.StatusOK, &posterResponse{
		RawText: raw,
		Info:    ocr.ParsePoster(raw),
	})
}
