// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yakirbe/lyricdeck/internal/library"
	"github.com/yakirbe/lyricdeck/internal/scrape"
	"github.com/yakirbe/lyricdeck/internal/songlist"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download lyrics from Shironet pages",
	Long: `Fetch scrapes one or more Shironet lyric pages, cleans the text, and
writes each song as a lyric file with a YAML metadata sidecar. Songs whose
lyric file already exists are skipped.

Pages can be given as URL arguments or collected from a markdown song list
with --list. Fetched songs are also indexed into the local song library
unless --no-index is set.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("list", "", "markdown song list to fetch from")
	fetchCmd.Flags().String("lyrics-dir", "", "directory for lyric files (default lyrics)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive fetches (default 2s)")
	fetchCmd.Flags().Bool("browser", false, "fetch pages through headless Chrome")
	fetchCmd.Flags().Bool("no-index", false, "skip indexing fetched songs into the library")
	fetchCmd.Flags().String("library", "", "song library database path (default library/songs.db)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	listPath, _ := cmd.Flags().GetString("list")

	entries := make([]types.ListEntry, 0, len(args))
	for _, url := range args {
		entries = append(entries, types.ListEntry{URL: url})
	}
	if listPath != "" {
		listed, err := songlist.ParseFile(listPath)
		if err != nil {
			return err
		}
		entries = append(entries, listed...)
	}
	if len(entries) == 0 {
		return fmt.Errorf("provide one or more lyric page URLs, or --list with a song list file")
	}

	cfg := scrapeConfigFromFlags(cmd)
	src, closeSource := newSource(cfg)
	defer closeSource()

	result := scrape.FetchBatch(context.Background(), src, entries, cfg, os.Stdout)

	noIndex, _ := cmd.Flags().GetBool("no-index")
	if !noIndex && len(result.Songs) > 0 {
		if err := indexSongs(cmd, result.Songs); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d song(s) failed to fetch", result.Failed)
	}
	return nil
}

func indexSongs(cmd *cobra.Command, songs []*types.Song) error {
	store, err := library.Open(libraryConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	for _, song := range songs {
		if err := store.Put(song); err != nil {
			return fmt.Errorf("indexing %s: %w", song.Title, err)
		}
	}
	fmt.Fprintf(os.Stdout, "Indexed %d song(s) into the library\n", len(songs))
	return nil
}
