// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakirbe/lyricdeck/internal/deck"
	"github.com/yakirbe/lyricdeck/internal/images"
	"github.com/yakirbe/lyricdeck/internal/scrape"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

const (
	defaultDeckOutput = "output/deck.html"
	defaultCacheDir   = "backgrounds"
)

var deckCmd = &cobra.Command{
	Use:   "deck [lyric files...]",
	Short: "Render lyric files into a slide deck",
	Long: `Deck reads lyric text files and renders them into a self-contained HTML
slide deck: a cover slide followed by one slide per song, with per-section
colors, automatic column layout, and a seeded background image per song.

With no arguments every lyric file under the lyrics directory is included.
Use --pdf to additionally print the deck to PDF with headless Chrome.`,
	RunE: runDeck,
}

func init() {
	deckCmd.Flags().String("lyrics-dir", "", "directory holding lyric files (default lyrics)")
	deckCmd.Flags().StringP("output", "o", "", "deck output path (default output/deck.html)")
	deckCmd.Flags().String("title", "", "cover slide title")
	deckCmd.Flags().Bool("no-images", false, "skip background images")
	deckCmd.Flags().String("cache-dir", "", "background image cache directory (default backgrounds)")
	deckCmd.Flags().Bool("pdf", false, "also print the deck to PDF")

	rootCmd.AddCommand(deckCmd)
}

func runDeck(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		var err error
		paths, err = lyricFiles(cmd)
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no lyric files found; fetch some songs first")
	}

	songs := make([]*types.Song, 0, len(paths))
	for _, path := range paths {
		song, err := scrape.ReadSong(path)
		if err != nil {
			return err
		}
		if len(song.Lines) == 0 {
			fmt.Fprintf(os.Stderr, "skipping %s: no lyric lines\n", path)
			continue
		}
		songs = append(songs, song)
	}
	if len(songs) == 0 {
		return fmt.Errorf("none of the lyric files contained lyrics")
	}

	cfg := deckConfigFromFlags(cmd)

	var backgrounds map[string]string
	if cfg.Images {
		backgrounds = fetchBackgrounds(cmd, songs)
	}

	if err := deck.Write(songs, backgrounds, cfg); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deck with %d song(s) written to %s\n", len(songs), cfg.OutputPath)

	if cfg.PDF {
		pdfPath := strings.TrimSuffix(cfg.OutputPath, filepath.Ext(cfg.OutputPath)) + ".pdf"
		if err := deck.PrintPDF(context.Background(), cfg.OutputPath, pdfPath); err != nil {
			return fmt.Errorf("printing PDF: %w", err)
		}
		fmt.Fprintf(os.Stdout, "PDF written to %s\n", pdfPath)
	}
	return nil
}

// lyricFiles lists the lyric text files under the lyrics directory in a
// stable order.
func lyricFiles(cmd *cobra.Command) ([]string, error) {
	dir, _ := cmd.Flags().GetString("lyrics-dir")
	if dir == "" {
		dir = viper.GetString("scrape.lyrics_dir")
	}
	if dir == "" {
		dir = defaultLyricsDir
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("listing lyric files in %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func deckConfigFromFlags(cmd *cobra.Command) types.DeckConfig {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = viper.GetString("deck.output_path")
	}
	if output == "" {
		output = defaultDeckOutput
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = viper.GetString("deck.deck_title")
	}

	noImages, _ := cmd.Flags().GetBool("no-images")
	pdf, _ := cmd.Flags().GetBool("pdf")

	return types.DeckConfig{
		OutputPath: output,
		DeckTitle:  title,
		Images:     !noImages,
		PDF:        pdf,
	}
}

// fetchBackgrounds downloads (or reuses from cache) one background per song.
// A failed download drops the image for that song rather than failing the
// deck.
func fetchBackgrounds(cmd *cobra.Command, songs []*types.Song) map[string]string {
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	if cacheDir == "" {
		cacheDir = viper.GetString("images.cache_dir")
	}
	if cacheDir == "" {
		cacheDir = defaultCacheDir
	}

	fetcher := images.NewFetcher(types.ImageConfig{CacheDir: cacheDir}, "")

	backgrounds := make(map[string]string, len(songs))
	for _, song := range songs {
		seed := images.SeedForTitle(song.Title)
		path, err := fetcher.Background(context.Background(), seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "background for %s unavailable: %v\n", song.Title, err)
			continue
		}
		backgrounds[song.ID] = path
	}
	return backgrounds
}
