// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape finds songs on lyric sites and extracts their lyrics.
package scrape

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/yakirbe/lyricdeck/internal/songtext"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

const metadataDir = "metadata"

// Source searches a single lyric site and extracts lyrics from its pages.
// Each site implements this interface.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
	Lyrics(ctx context.Context, pageURL string) (*types.Song, error)
}

// PageFetcher retrieves the HTML of a page. The plain HTTP fetcher covers
// server-rendered pages; the browser fetcher covers pages that only render
// lyrics with JavaScript.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// invalidFilenameChars matches characters that cannot appear in filenames
// on common filesystems.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// Slug converts a song title to a filesystem-safe identifier: invalid
// characters removed, spaces mapped to underscores, capped at 100 runes.
func Slug(title string) string {
	s := invalidFilenameChars.ReplaceAllString(title, "")
	s = strings.ReplaceAll(s, " ", "_")
	runes := []rune(s)
	if len(runes) > 100 {
		runes = runes[:100]
	}
	return string(runes)
}

// BatchResult holds the outcome of a batch fetch run.
type BatchResult struct {
	Fetched int
	Skipped int
	Failed  int
	Songs   []*types.Song
}

// Total returns the total number of entries processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Skipped + r.Failed
}

// HasFailures reports whether any songs failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchSong scrapes a single lyric page and writes the lyric text file and
// YAML metadata sidecar. If the lyric file already exists, the fetch is
// skipped. The skipped return value indicates whether that happened.
func FetchSong(ctx context.Context, src Source, entry types.ListEntry, cfg types.ScrapeConfig, w io.Writer) (song *types.Song, skipped bool, err error) {
	name := entry.Title
	if name == "" {
		name = entry.URL
	}

	// Skip if the lyric file already exists.
	if entry.Title != "" {
		path := lyricPath(cfg.LyricsDir, Slug(entry.Title))
		if _, statErr := os.Stat(path); statErr == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", entry.Title)
			return nil, true, nil
		}
	}

	song, err = src.Lyrics(ctx, entry.URL)
	if err != nil {
		return nil, false, err
	}

	// The scraped title wins; the list entry is the fallback.
	if song.Title == "" {
		song.Title = entry.Title
	}
	if song.Artist == "" {
		song.Artist = entry.Artist
	}
	song.ID = Slug(song.Title)

	if err := writeSong(song, cfg.LyricsDir); err != nil {
		return nil, false, err
	}
	fmt.Fprintf(w, "fetched: %s\n", song.Title)
	return song, false, nil
}

// FetchBatch processes multiple list entries, printing per-item status and
// returning a summary. It continues after individual failures and applies
// a delay between consecutive fetches.
func FetchBatch(ctx context.Context, src Source, entries []types.ListEntry, cfg types.ScrapeConfig, w io.Writer) BatchResult {
	var result BatchResult
	for i, entry := range entries {
		if i > 0 && cfg.FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return result
			case <-time.After(cfg.FetchDelay):
			}
		}
		song, wasSkipped, err := FetchSong(ctx, src, entry, cfg, w)
		if err != nil {
			name := entry.Title
			if name == "" {
				name = entry.URL
			}
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		if wasSkipped {
			result.Skipped++
		} else {
			result.Fetched++
			result.Songs = append(result.Songs, song)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		result.Fetched, result.Skipped, result.Failed, result.Total())
	return result
}

// lyricPath returns the lyric text file path for a slug.
func lyricPath(dir, slug string) string {
	return filepath.Join(dir, slug+".txt")
}

// writeSong writes the lyric text file ("# Title" header plus lines) and a
// YAML metadata sidecar under dir/metadata/.
func writeSong(song *types.Song, dir string) error {
	for _, d := range []string{dir, filepath.Join(dir, metadataDir)} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", song.Title)
	sb.WriteString(strings.Join(song.Lines, "\n"))
	sb.WriteString("\n")
	if err := os.WriteFile(lyricPath(dir, song.ID), []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing lyrics for %s: %w", song.ID, err)
	}

	meta := *song
	meta.Lines = nil // the text file is the source of truth for lines
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata for %s: %w", song.ID, err)
	}
	metaPath := filepath.Join(dir, metadataDir, song.ID+".yaml")
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("writing metadata for %s: %w", song.ID, err)
	}
	return nil
}

// ReadSong loads a lyric text file written by writeSong (or by hand):
// the title comes from the "# " header line or the filename, every other
// line is kept verbatim, then the block is normalized and cleaned.
func ReadSong(path string) (*types.Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lyrics file: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := strings.ReplaceAll(base, "_", " ")

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(line[2:])
			continue
		}
		lines = append(lines, line)
	}

	cleaned := songtext.Lines(strings.Join(lines, "\n"))
	return &types.Song{
		ID:    base,
		Title: title,
		Lines: cleaned,
		RTL:   songtext.IsRTLSong(title, cleaned),
	}, nil
}
