// Package vision is the client for the image embedding sidecar. The
// sidecar hosts the classifier and feature extractor; this package only
// speaks JSON over HTTP and validates what comes back.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// Verdict is the sidecar's judgement of one image: whether it shows an
// animal, the predicted label, and the feature vector.
type Verdict struct {
	Animal    bool      `json:"animal"`
	Label     string    `json:"label"`
	Embedding []float32 `json:"embedding"`
}

// Embedder produces a fixed-length feature vector for raw image bytes.
type Embedder interface {
	Embed(ctx context.Context, image []byte) (*Verdict, error)
	Dimensions() int
}

// SidecarEmbedder implements Embedder against the inference sidecar.
type SidecarEmbedder struct {
	baseURL    string
	dimensions int
	client     *http.Client
}

// NewSidecarEmbedder creates a sidecar client. dimensions is the embedding
// length the caller expects; responses of any other length are rejected at
// this boundary so a misconfigured sidecar can never poison the index.
func NewSidecarEmbedder(baseURL string, dimensions int, timeout time.Duration) *SidecarEmbedder {
	return &SidecarEmbedder{
		baseURL:    baseURL,
		dimensions: dimensions,
		client:     &http.Client{Timeout: timeout},
	}
}

func (e *SidecarEmbedder) Dimensions() int {
	return e.dimensions
}

// Embed posts the image to the sidecar and returns its verdict.
func (e *SidecarEmbedder) Embed(ctx context.Context, image []byte) (*Verdict, error) {
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/embed", bytes.NewReader(image))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build embed request")
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "embed request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("embed request returned %d: %s", resp.StatusCode, string(body))
	}

	var verdict Verdict
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		return nil, errors.Wrap(err, "failed to decode embed response")
	}
	if len(verdict.Embedding) != e.dimensions {
		return nil, errors.Errorf("unexpected embedding dimension: got %d, want %d", len(verdict.Embedding), e.dimensions)
	}

	return &verdict, nil
}
