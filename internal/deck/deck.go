// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deck renders songs into a slide deck: a self-contained HTML
// file sized for 16:9 pages, optionally printed to PDF.
package deck

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yakirbe/lyricdeck/internal/layout"
	"github.com/yakirbe/lyricdeck/internal/songtext"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

//go:embed deck.html.tmpl
var templateFS embed.FS

var deckTemplate = template.Must(template.ParseFS(templateFS, "deck.html.tmpl"))

// DefaultTitle is the opening-slide heading when the config has none.
const DefaultTitle = "🎵 Song Lyrics Collection"

// lineView is one rendered lyric line.
type lineView struct {
	Text  string
	Color string
	Blank bool
}

// slideView is one rendered song slide.
type slideView struct {
	Title      string
	RTL        bool
	FontSize   int
	Columns    [][]lineView
	Background template.URL
	HasImage   bool
}

// deckView is the data the deck template renders.
type deckView struct {
	DeckTitle string
	SongCount int
	Slides    []slideView
}

// Build renders songs into deck HTML. backgrounds maps song IDs to image
// file paths; songs without an entry fall back to the solid background.
func Build(songs []*types.Song, backgrounds map[string]string, cfg types.DeckConfig) ([]byte, error) {
	title := cfg.DeckTitle
	if title == "" {
		title = DefaultTitle
	}

	view := deckView{
		DeckTitle: title,
		SongCount: len(songs),
	}

	for _, song := range songs {
		slide, err := buildSlide(song, backgrounds[song.ID])
		if err != nil {
			return nil, fmt.Errorf("building slide for %s: %w", song.Title, err)
		}
		view.Slides = append(view.Slides, slide)
	}

	var buf bytes.Buffer
	if err := deckTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering deck: %w", err)
	}
	return buf.Bytes(), nil
}

// buildSlide lays out one song: sections get their palette colors, the
// flattened line count picks the column/font layout, and the lines flow
// into columns.
func buildSlide(song *types.Song, imagePath string) (slideView, error) {
	sections := songtext.SplitSections(song.Lines)
	flat := songtext.Flatten(sections)
	l := layout.ForLineCount(len(flat))
	cols := layout.SplitColumns(flat, l.Columns)

	slide := slideView{
		Title:    song.Title,
		RTL:      song.RTL,
		FontSize: l.FontSize,
	}
	for _, col := range cols {
		lines := make([]lineView, 0, len(col))
		for _, cl := range col {
			lines = append(lines, lineView{
				Text:  cl.Text,
				Color: cl.Color.Hex(),
				Blank: cl.Text == "",
			})
		}
		slide.Columns = append(slide.Columns, lines)
	}

	if imagePath != "" {
		uri, err := inlineImage(imagePath)
		if err != nil {
			return slideView{}, err
		}
		slide.Background = uri
		slide.HasImage = true
	}
	return slide, nil
}

// inlineImage reads an image file into a data URI so the deck stays a
// single self-contained file.
func inlineImage(path string) (template.URL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading background image: %w", err)
	}
	mime := "image/jpeg"
	if filepath.Ext(path) == ".png" {
		mime = "image/png"
	}
	return template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)), nil
}

// Write builds the deck and writes it to cfg.OutputPath, creating parent
// directories as needed.
func Write(songs []*types.Song, backgrounds map[string]string, cfg types.DeckConfig) error {
	html, err := Build(songs, backgrounds, cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(cfg.OutputPath, html, 0o644); err != nil {
		return fmt.Errorf("writing deck: %w", err)
	}
	return nil
}
