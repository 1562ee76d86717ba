package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Lyric sites refuse obvious bots, so the default is a browser string.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the scrape stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the maximum number of search results to return (default 10).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// FetchDelay is the delay between consecutive page fetches (default 2s).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// LyricsDir is the directory lyric text files and metadata sidecars
	// are written to.
	LyricsDir string `json:"lyrics_dir" yaml:"lyrics_dir"`

	// UseBrowser fetches pages through headless Chrome instead of a plain
	// HTTP client. Needed for pages that render lyrics with JavaScript.
	UseBrowser bool `json:"use_browser" yaml:"use_browser"`
}

// ImageConfig holds settings for background image fetching.
type ImageConfig struct {
	HTTPConfig `yaml:",inline"`

	// CacheDir is the flat-file cache for downloaded backgrounds.
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// Width and Height are the requested image dimensions in pixels.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DeckConfig holds settings for deck generation.
type DeckConfig struct {
	// OutputPath is where the deck file is written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// DeckTitle is the heading on the opening slide.
	DeckTitle string `json:"deck_title" yaml:"deck_title"`

	// Images controls whether slides get seeded background images.
	Images bool `json:"images" yaml:"images"`

	// PDF additionally prints the deck to PDF via headless Chrome.
	PDF bool `json:"pdf" yaml:"pdf"`
}

// LibraryConfig holds settings for the SQLite song library.
type LibraryConfig struct {
	// Path is the SQLite database file (default "library/songs.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults is the default maximum number of search hits (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Images  ImageConfig   `json:"images" yaml:"images"`
	Deck    DeckConfig    `json:"deck" yaml:"deck"`
	Library LibraryConfig `json:"library" yaml:"library"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}
