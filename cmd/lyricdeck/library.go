// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakirbe/lyricdeck/internal/library"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Query the local song library",
	Long: `Library manages the SQLite index of fetched songs. Use subcommands to
list indexed songs, run full-text search over titles and lyrics, or show a
single song.`,
}

// --- list subcommand ---

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all songs in the library",
	RunE:  runLibraryList,
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	store, err := library.Open(libraryConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.List()
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSongs(songs, jsonOutput)
}

// --- search subcommand ---

var librarySearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Full-text search over indexed titles and lyrics",
	RunE:  runLibrarySearch,
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}

	store, err := library.Open(libraryConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	songs, err := store.Search(strings.Join(args, " "))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSongs(songs, jsonOutput)
}

// --- show subcommand ---

var libraryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a single song with its lyrics",
	RunE:  runLibraryShow,
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one song ID")
	}

	store, err := library.Open(libraryConfigFromFlags(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	song, err := store.Get(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("# %s\n", song.Title)
	if song.Artist != "" {
		fmt.Printf("Artist: %s\n", song.Artist)
	}
	if song.SourceURL != "" {
		fmt.Printf("Source: %s\n", song.SourceURL)
	}
	fmt.Println()
	fmt.Println(strings.Join(song.Lines, "\n"))
	return nil
}

// --- shared helpers ---

func libraryConfigFromFlags(cmd *cobra.Command) types.LibraryConfig {
	path, _ := cmd.Flags().GetString("library")
	if path == "" {
		path = viper.GetString("library.path")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("library.max_results")
	}
	return types.LibraryConfig{
		Path:       path,
		MaxResults: maxResults,
	}
}

func formatSongs(songs []*types.Song, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(songs)
	}

	if len(songs) == 0 {
		fmt.Println("No songs found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-20s  %s\n", "ID", "Title", "Artist", "Lines")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, s := range songs {
		id := s.ID
		if len([]rune(id)) > 30 {
			id = string([]rune(id)[:27]) + "..."
		}
		title := s.Title
		if len([]rune(title)) > 30 {
			title = string([]rune(title)[:27]) + "..."
		}
		artist := s.Artist
		if len([]rune(artist)) > 20 {
			artist = string([]rune(artist)[:17]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-30s  %-20s  %d\n", id, title, artist, len(s.Lines))
	}

	fmt.Fprintf(os.Stdout, "\n%d songs\n", len(songs))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	libraryCmd.PersistentFlags().String("library", "", "song library database path (default library/songs.db)")
	libraryCmd.PersistentFlags().Int("max-results", 0, "maximum number of search hits (default 20)")
	libraryCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySearchCmd)
	libraryCmd.AddCommand(libraryShowCmd)

	rootCmd.AddCommand(libraryCmd)
}
