// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/yakirbe/lyricdeck/internal/songtext"
	"github.com/yakirbe/lyricdeck/pkg/types"
)

const (
	shironetBase = "https://shironet.mako.co.il"

	// minLyricRunes is the threshold below which an extraction is treated
	// as a miss and the fallback selector is tried.
	minLyricRunes = 50
)

var (
	// brTag eats the whitespace around the tag too: sources put a literal
	// newline after each <br>, and keeping it would double every line break.
	brTag   = regexp.MustCompile(`(?i)\s*<br\s*/?>\s*`)
	anyTag  = regexp.MustCompile(`<[^>]+>`)
	wrkidRe = regexp.MustCompile(`wrkid`)
)

// Shironet scrapes shironet.mako.co.il. Lyric pages carry the text inside
// span.artist_lyrics_text with <br> separators; search pages list songs as
// links whose href carries type=lyrics and a wrkid parameter.
type Shironet struct {
	fetcher    PageFetcher
	baseURL    string
	maxResults int
}

// NewShironet creates a Shironet source using the given page fetcher.
// baseURL overrides the production site for tests; empty means production.
func NewShironet(fetcher PageFetcher, baseURL string, maxResults int) *Shironet {
	if baseURL == "" {
		baseURL = shironetBase
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Shironet{fetcher: fetcher, baseURL: baseURL, maxResults: maxResults}
}

// Name implements Source.
func (s *Shironet) Name() string { return "shironet" }

// Search implements Source. It queries the site search page and collects
// lyric page links, splitting "Title - Artist" listing text.
func (s *Shironet) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, url.QueryEscape(query))
	html, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetching search page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing search page: %w", err)
	}

	var results []types.SearchResult
	doc.Find(`a[href*="type=lyrics"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())
		if !ok || text == "" || !wrkidRe.MatchString(href) {
			return true
		}

		title, artist := text, ""
		if idx := strings.Index(text, " - "); idx >= 0 {
			title = strings.TrimSpace(text[:idx])
			artist = strings.TrimSpace(text[idx+3:])
		}

		full := href
		if strings.HasPrefix(href, "/") {
			full = s.baseURL + href
		}
		results = append(results, types.SearchResult{Title: title, Artist: artist, URL: full})
		return len(results) < s.maxResults
	})

	return results, nil
}

// Lyrics implements Source. It extracts the lyric text, title, and artist
// from a lyric page and returns a cleaned Song.
func (s *Shironet) Lyrics(ctx context.Context, pageURL string) (*types.Song, error) {
	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetching lyric page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing lyric page: %w", err)
	}

	text := extractLyricText(doc.Find("span.artist_lyrics_text"))
	if len([]rune(text)) < minLyricRunes {
		// Some page variants mark the lyric block with itemprop instead.
		if alt := extractLyricText(doc.Find(`[itemprop="Lyrics"]`)); len([]rune(alt)) > len([]rune(text)) {
			text = alt
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no lyrics found on %s", pageURL)
	}

	title := strings.TrimSpace(doc.Find("h1.artist_song_name_txt").First().Text())
	artist := strings.TrimSpace(doc.Find("a.artist_singer_title").First().Text())
	if title == "" {
		title, artist = titleFromTitleTag(doc, artist)
	}

	lines := songtext.Lines(text)
	return &types.Song{
		Title:     title,
		Artist:    artist,
		SourceURL: pageURL,
		Lines:     lines,
		RTL:       songtext.IsRTLSong(title, lines),
		FetchedAt: time.Now(),
	}, nil
}

// extractLyricText renders a lyric block selection to plain text: <br>
// tags become newlines, remaining tags are stripped, and the block is
// normalized.
func extractLyricText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	raw, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	text := brTag.ReplaceAllString(raw, "\n")
	text = anyTag.ReplaceAllString(text, "")
	return songtext.Normalize(text)
}

// titleFromTitleTag falls back to the page <title>, which looks like
// "מילים לשיר Title - Artist שירונט". It strips the site boilerplate and
// splits off the artist when one was not already found.
func titleFromTitleTag(doc *goquery.Document, artist string) (string, string) {
	text := strings.TrimSpace(doc.Find("title").First().Text())
	text = strings.TrimSpace(strings.ReplaceAll(text, "מילים לשיר", ""))
	if idx := strings.Index(text, " - "); idx >= 0 {
		title := strings.TrimSpace(text[:idx])
		rest := strings.TrimSpace(strings.ReplaceAll(text[idx+3:], "שירונט", ""))
		if artist == "" {
			artist = rest
		}
		return title, artist
	}
	return text, artist
}
