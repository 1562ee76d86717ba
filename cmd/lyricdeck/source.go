// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakirbe/lyricdeck/internal/scrape"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

const (
	defaultBaseURL    = "https://shironet.mako.co.il"
	defaultTimeout    = 30 * time.Second
	defaultFetchDelay = 2 * time.Second
	defaultMaxResults = 10
	defaultLyricsDir  = "lyrics"
)

// scrapeConfigFromFlags assembles the scrape configuration from command
// flags, falling back to config-file values and built-in defaults.
func scrapeConfigFromFlags(cmd *cobra.Command) types.ScrapeConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("scrape.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("scrape.fetch_delay")
	}
	if delay == 0 {
		delay = defaultFetchDelay
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("scrape.max_results")
	}
	if maxResults == 0 {
		maxResults = defaultMaxResults
	}

	lyricsDir, _ := cmd.Flags().GetString("lyrics-dir")
	if lyricsDir == "" {
		lyricsDir = viper.GetString("scrape.lyrics_dir")
	}
	if lyricsDir == "" {
		lyricsDir = defaultLyricsDir
	}

	useBrowser, _ := cmd.Flags().GetBool("browser")

	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: viper.GetString("scrape.user_agent"),
		},
		MaxResults: maxResults,
		FetchDelay: delay,
		LyricsDir:  lyricsDir,
		UseBrowser: useBrowser,
	}
}

// newSource builds the Shironet source from the scrape config. The returned
// cleanup function releases the headless browser when one was started.
func newSource(cfg types.ScrapeConfig) (*scrape.Shironet, func() error) {
	baseURL := viper.GetString("scrape.base_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if cfg.UseBrowser {
		f := scrape.NewBrowserFetcher(cfg.UserAgent)
		return scrape.NewShironet(f, baseURL, cfg.MaxResults), f.Close
	}

	f := scrape.NewHTTPFetcher(cfg.HTTPConfig)
	return scrape.NewShironet(f, baseURL, cfg.MaxResults), func() error { return nil }
}
