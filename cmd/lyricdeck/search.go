package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakirbe/lyricdeck/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search Shironet for songs",
	Long: `Search queries the Shironet song index for titles matching the given
text. Results are printed as a table with the lyric page URL for each hit,
which can be passed straight to the fetch command.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("max-results", 0, "maximum number of results (default 10)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	searchCmd.Flags().Bool("browser", false, "fetch pages through headless Chrome")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a search query")
	}
	query := strings.Join(args, " ")

	cfg := scrapeConfigFromFlags(cmd)
	src, closeSource := newSource(cfg)
	defer closeSource()

	results, err := src.Search(context.Background(), query)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchResults(results, jsonOutput)
}

func formatSearchResults(results []types.SearchResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-40s  %-25s  %s\n", "#", "Title", "Artist", "URL")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		title := r.Title
		if len([]rune(title)) > 40 {
			title = string([]rune(title)[:37]) + "..."
		}
		artist := r.Artist
		if len([]rune(artist)) > 25 {
			artist = string([]rune(artist)[:22]) + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-40s  %-25s  %s\n", i+1, title, artist, r.URL)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}
