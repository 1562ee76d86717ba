// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lyricdeck CLI.
// Subcommands cover the pipeline stages: search, fetch, deck, library,
// and serve.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the lyricdeck CLI.
var rootCmd = &cobra.Command{
	Use:   "lyricdeck",
	Short: "Turn song lyrics into presentation slide decks",
	Long: `lyricdeck scrapes song lyrics from Shironet, cleans and segments the
text, and renders it into a slide deck with per-section colors, automatic
column layout, and optional seeded background images.

Each pipeline stage is a subcommand: search finds songs, fetch downloads
lyrics, deck renders slides, library queries the local song index, and
serve exposes search and generation over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; absence is not an error.
		if err := godotenv.Load(); err == nil {
			fmt.Fprintln(os.Stderr, "Loaded environment from .env")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lyricdeck.yaml or ~/.config/lyricdeck/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lyricdeck")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lyricdeck"))
		}
	}

	viper.SetEnvPrefix("LYRICDECK")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
