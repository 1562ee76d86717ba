// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lyricdeck pipeline.
package types

import "time"

// Song holds a scraped song: its metadata and the cleaned lyric lines.
// Blank lines inside Lines are meaningful; they separate sections
// (verses and choruses).
type Song struct {
	// ID is a filesystem-safe slug derived from the title.
	ID string `json:"id" yaml:"id"`

	// Title is the song title as shown on the lyric page.
	Title string `json:"title" yaml:"title"`

	// Artist is the performing artist, empty when unknown.
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`

	// SourceURL is the lyric page the song was scraped from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Lines are the lyric lines in page order, punctuation-cleaned,
	// with blank lines preserved as section separators.
	Lines []string `json:"lines" yaml:"lines"`

	// RTL reports whether the song reads right-to-left (Hebrew script
	// in the title or the opening lines).
	RTL bool `json:"rtl" yaml:"rtl"`

	// FetchedAt is when the lyrics were scraped.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// SearchResult represents a candidate song returned by a lyric site search.
type SearchResult struct {
	// Title is the song title as shown in the search listing.
	Title string `json:"title" yaml:"title"`

	// Artist is the performing artist, empty when the listing has none.
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`

	// URL is the absolute lyric page URL.
	URL string `json:"url" yaml:"url"`
}

// ListEntry is one row of a markdown song list: a title, an optional
// artist, and the lyric page URL to fetch.
type ListEntry struct {
	Number int    `json:"number" yaml:"number"`
	Title  string `json:"title" yaml:"title"`
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`
	URL    string `json:"url" yaml:"url"`
}
