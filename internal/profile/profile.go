package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Profile is configuration to start main server.
type Profile struct {
	// Vision sidecar configuration. The sidecar hosts the image classifier and
	// feature extractor; the server only ever talks to it over HTTP.
	VisionBaseURL string // Base URL of the embedding sidecar
	VisionTimeout int    // Sidecar request timeout in seconds (default: 30)

	// Geocoding configuration
	NominatimBaseURL  string // Nominatim endpoint (default: https://nominatim.openstreetmap.org)
	GeocoderUserAgent string // User agent sent to Nominatim (usage policy requirement)
	GeoCellResolution int    // H3 resolution for geo cells (default: 9, ~170m cell edge)
	GeoMaxRadiusKm    float64

	// Alert notification (optional)
	TelegramBotToken string
	TelegramChatID   int64
	AlertWebhookURL  string

	// Poster OCR configuration
	OCREnabled    bool
	TesseractPath string
	TessdataPath  string
	OCRLanguages  string

	// Other configurations
	Mode        string
	Addr        string
	Port        int
	Data        string
	Driver      string
	DSN         string
	InstanceURL string
	Version     string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsNotifierEnabled returns true if a Telegram alert channel is configured.
func (p *Profile) IsNotifierEnabled() bool {
	return p.TelegramBotToken != "" && p.TelegramChatID != 0
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
func (p *Profile) FromEnv() {
	p.VisionBaseURL = getEnvOrDefault("PATITAS_VISION_BASE_URL", "http://localhost:8501")
	p.VisionTimeout = getEnvOrDefaultInt("PATITAS_VISION_TIMEOUT_SECONDS", 30)

	p.NominatimBaseURL = getEnvOrDefault("PATITAS_GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	p.GeocoderUserAgent = getEnvOrDefault("PATITAS_GEOCODER_USER_AGENT", "patitas/1.0")
	p.GeoCellResolution = getEnvOrDefaultInt("PATITAS_GEO_CELL_RESOLUTION", 9)
	if v := os.Getenv("PATITAS_GEO_MAX_RADIUS_KM"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			p.GeoMaxRadiusKm = f
		}
	}
	if p.GeoMaxRadiusKm == 0 {
		p.GeoMaxRadiusKm = 20.0
	}

	p.TelegramBotToken = getEnvOrDefault("PATITAS_TELEGRAM_BOT_TOKEN", "")
	if v := os.Getenv("PATITAS_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.TelegramChatID = id
		} else {
			slog.Warn("invalid telegram chat id, notifier disabled", "value", v)
		}
	}

	p.AlertWebhookURL = getEnvOrDefault("PATITAS_ALERT_WEBHOOK_URL", "")

	p.OCREnabled = getEnvOrDefault("PATITAS_OCR_ENABLED", "false") == "true"
	p.TesseractPath = getEnvOrDefault("PATITAS_OCR_TESSERACT_PATH", "tesseract")
	p.TessdataPath = getEnvOrDefault("PATITAS_OCR_TESSDATA_PATH", "")
	p.OCRLanguages = getEnvOrDefault("PATITAS_OCR_LANGUAGES", "spa+eng")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "patitas")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/patitas"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("patitas_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}

	if p.GeoCellResolution < 0 || p.GeoCellResolution > 15 {
		return errors.Errorf("geo cell resolution out of range: %d", p.GeoCellResolution)
	}
	if p.GeoMaxRadiusKm <= 0 {
		return errors.Errorf("geo max radius must be positive: %f", p.GeoMaxRadiusKm)
	}

	return nil
}
