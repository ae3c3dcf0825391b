// Package ocr digitizes lost-pet posters: it drives an external tesseract
// binary for text extraction and parses the raw text into structured
// contact and attribute data.
package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Reader extracts text from poster images via tesseract.
type Reader struct {
	tesseractPath string
	tessdataPath  string
	languages     string
}

// NewReader creates a Reader. tesseractPath is the binary to execute;
// tessdataPath may be empty to use the system default.
func NewReader(tesseractPath, tessdataPath, languages string) *Reader {
	return &Reader{
		tesseractPath: tesseractPath,
		tessdataPath:  tessdataPath,
		languages:     languages,
	}
}

// ExtractText runs tesseract on the image file and returns the raw text.
func (r *Reader) ExtractText(ctx context.Context, imagePath string) (string, error) {
	args := []string{imagePath, "stdout"}
	if r.languages != "" {
		args = append(args, "-l", r.languages)
	}
	if r.tessdataPath != "" {
		args = append(args, "--tessdata-dir", r.tessdataPath)
	}

	cmd := exec.CommandContext(ctx, r.tesseractPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "tesseract failed: %s", strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
