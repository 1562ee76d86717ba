// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images fetches seeded background images with a flat-file cache.
package images

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yakirbe/lyricdeck/internal/httputil"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

// defaultBaseURL serves a reproducible image for a given seed.
const defaultBaseURL = "https://picsum.photos"

const (
	defaultWidth  = 1920
	defaultHeight = 1080
)

// Fetcher downloads background images into a cache directory keyed by
// seed. The same seed always yields the same file.
type Fetcher struct {
	client  *http.Client
	baseURL string
	cfg     types.ImageConfig
}

// NewFetcher creates a Fetcher from the image config. baseURL overrides
// the production image host for tests; empty means production.
func NewFetcher(cfg types.ImageConfig, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cfg:     cfg,
	}
}

// SeedForTitle derives a stable background seed from a song title.
// FNV-1a keeps it deterministic across runs.
func SeedForTitle(title string) int {
	h := fnv.New32a()
	h.Write([]byte(title))
	return int(h.Sum32() % 1000)
}

// cachePath returns the cache file for a seed.
func (f *Fetcher) cachePath(seed int) string {
	return filepath.Join(f.cfg.CacheDir, fmt.Sprintf("bg_%03d.jpg", seed))
}

// Background returns the path of the cached background image for seed,
// downloading it on a cache miss. A failed download returns an error; the
// caller treats it as a warning and renders the slide without an image.
func (f *Fetcher) Background(ctx context.Context, seed int) (string, error) {
	path := f.cachePath(seed)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(f.cfg.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	url := fmt.Sprintf("%s/seed/%d/%d/%d", f.baseURL, seed, f.cfg.Width, f.cfg.Height)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("fetching background: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d fetching background seed %d", resp.StatusCode, seed)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "image") {
		return "", fmt.Errorf("unexpected content type %q for background seed %d", ct, seed)
	}

	// Download to a temp file and rename so a cut connection never
	// leaves a truncated image in the cache.
	tmp, err := os.CreateTemp(f.cfg.CacheDir, ".bg-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing background: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}
