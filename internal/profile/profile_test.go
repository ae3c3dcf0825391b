package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()

	require.Equal(t, "http://localhost:8501", p.VisionBaseURL)
	require.Equal(t, 30, p.VisionTimeout)
	require.Equal(t, "https://nominatim.openstreetmap.org", p.NominatimBaseURL)
	require.Equal(t, 9, p.GeoCellResolution)
	require.Equal(t, 20.0, p.GeoMaxRadiusKm)
	require.Equal(t, "spa+eng", p.OCRLanguages)
	require.False(t, p.OCREnabled)
	require.False(t, p.IsNotifierEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PATITAS_VISION_BASE_URL", "http://vision:9000")
	t.Setenv("PATITAS_GEO_CELL_RESOLUTION", "7")
	t.Setenv("PATITAS_GEO_MAX_RADIUS_KM", "35.5")
	t.Setenv("PATITAS_TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("PATITAS_TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("PATITAS_OCR_ENABLED", "true")

	p := &Profile{}
	p.FromEnv()

	require.Equal(t, "http://vision:9000", p.VisionBaseURL)
	require.Equal(t, 7, p.GeoCellResolution)
	require.Equal(t, 35.5, p.GeoMaxRadiusKm)
	require.Equal(t, int64(-100123), p.TelegramChatID)
	require.True(t, p.IsNotifierEnabled())
	require.True(t, p.OCREnabled)
}

func TestValidate(t *testing.T) {
	dataDir := t.TempDir()

	p := &Profile{
		Mode:              "nonsense",
		Data:              dataDir,
		Driver:            "sqlite",
		GeoCellResolution: 9,
		GeoMaxRadiusKm:    20.0,
	}
	require.NoError(t, p.Validate())

	// Unknown modes fall back to demo.
	require.Equal(t, "demo", p.Mode)
	require.Equal(t, filepath.Join(dataDir, "patitas_demo.db"), p.DSN)
}

func TestValidateRejectsBadResolution(t *testing.T) {
	p := &Profile{
		Mode:              "dev",
		Data:              t.TempDir(),
		Driver:            "sqlite",
		GeoCellResolution: 16,
		GeoMaxRadiusKm:    20.0,
	}
	require.Error(t, p.Validate())
}

func TestValidateRejectsNonPositiveRadius(t *testing.T) {
	p := &Profile{
		Mode:              "dev",
		Data:              t.TempDir(),
		Driver:            "sqlite",
		GeoCellResolution: 9,
	}
	require.Error(t, p.Validate())
}
