// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakirbe/lyricdeck/internal/images"
	"github.com/yakirbe/lyricdeck/internal/server"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

const defaultAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search and deck-generation API over HTTP",
	Long: `Serve starts the HTTP API: POST /api/search finds songs on Shironet and
POST /api/generate scrapes a lyric page and returns a rendered single-song
deck. The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Duration("timeout", 0, "HTTP request timeout for outgoing scrapes (default 30s)")
	serveCmd.Flags().Bool("browser", false, "fetch pages through headless Chrome")
	serveCmd.Flags().Bool("no-images", false, "render generated decks without background images")
	serveCmd.Flags().String("cache-dir", "", "background image cache directory (default backgrounds)")
	serveCmd.Flags().String("title", "", "cover slide title for generated decks")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("server.addr")
	}
	if addr == "" {
		addr = defaultAddr
	}

	scrapeCfg := scrapeConfigFromFlags(cmd)
	src, closeSource := newSource(scrapeCfg)
	defer closeSource()

	var imgs *images.Fetcher
	if noImages, _ := cmd.Flags().GetBool("no-images"); !noImages {
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		if cacheDir == "" {
			cacheDir = viper.GetString("images.cache_dir")
		}
		if cacheDir == "" {
			cacheDir = defaultCacheDir
		}
		imgs = images.NewFetcher(types.ImageConfig{CacheDir: cacheDir}, "")
	}

	title, _ := cmd.Flags().GetString("title")

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := server.New(
		types.ServerConfig{
			Addr:            addr,
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		server.Options{
			Source:  src,
			Images:  imgs,
			Deck:    types.DeckConfig{DeckTitle: title, Images: imgs != nil},
			Version: version,
			Logger:  logger,
		},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return s.Run(ctx)
}
