// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakirbe/lyricdeck/pkg/types"
)

const lyricPageHTML = `<!DOCTYPE html>
<html><head><title>מילים לשיר שיר לדוגמה - זמרת שירונט</title></head>
<body>
<h1 class="artist_song_name_txt">שיר לדוגמה</h1>
<a class="artist_singer_title" href="/artist?prfid=1">זמרת</a>
<span class="artist_lyrics_text">
שורה ראשונה, עם פסיק.<br>
שורה שנייה<BR/>
<br>
הפזמון מתחיל כאן<br>
והוא ממשיך עוד שורה<br>
וגם עוד אחת בשביל אורך<br>
</span>
</body></html>`

const searchPageHTML = `<!DOCTYPE html>
<html><body>
<a href="/artist?type=lyrics&lang=1&prfid=2&wrkid=100">שיר אחד - אמן אחד</a>
<a href="/artist?type=lyrics&lang=1&prfid=3&wrkid=200">שיר שני - אמן שני</a>
<a href="/artist?type=lyrics&lang=1&prfid=4">ללא מזהה יצירה</a>
<a href="/news/something">לא שיר</a>
<a href="https://other.example.com/page?type=lyrics&wrkid=300">External Song</a>
</body></html>`

// fixtureFetcher serves canned HTML keyed by URL suffix.
type fixtureFetcher struct {
	pages map[string]string
}

func (f *fixtureFetcher) Fetch(_ context.Context, url string) (string, error) {
	for suffix, html := range f.pages {
		if len(url) >= len(suffix) && url[len(url)-len(suffix):] == suffix {
			return html, nil
		}
	}
	return "", fmt.Errorf("no fixture for %s", url)
}

func TestShironet_Lyrics(t *testing.T) {
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/song": lyricPageHTML}}, "http://x", 0)

	song, err := s.Lyrics(context.Background(), "http://x/song")
	require.NoError(t, err)

	assert.Equal(t, "שיר לדוגמה", song.Title)
	assert.Equal(t, "זמרת", song.Artist)
	assert.Equal(t, "http://x/song", song.SourceURL)
	assert.True(t, song.RTL)
	assert.False(t, song.FetchedAt.IsZero())

	want := []string{
		"שורה ראשונה עם פסיק",
		"שורה שנייה",
		"",
		"הפזמון מתחיל כאן",
		"והוא ממשיך עוד שורה",
		"וגם עוד אחת בשביל אורך",
	}
	assert.Equal(t, want, song.Lines)
}

func TestShironet_LyricsSourceNewlinesAroundBr(t *testing.T) {
	// Pages put a literal newline after each <br>. A single <br> is still
	// one line break; only an explicit double <br> separates verses.
	page := `<html><body><span class="artist_lyrics_text">first line of the verse<br>
second line of the verse<br>
<br>
opening line of the second verse<br>
closing line of the second verse<br>
</span></body></html>`
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/nl": page}}, "http://x", 0)

	song, err := s.Lyrics(context.Background(), "http://x/nl")
	require.NoError(t, err)

	want := []string{
		"first line of the verse",
		"second line of the verse",
		"",
		"opening line of the second verse",
		"closing line of the second verse",
	}
	assert.Equal(t, want, song.Lines)
}

func TestShironet_LyricsFallbackSelector(t *testing.T) {
	// The primary span is too short; the itemprop block has the real text.
	page := `<html><head><title>מילים לשיר Fallback Song - Some Artist שירונט</title></head><body>
<span class="artist_lyrics_text">stub</span>
<div itemprop="Lyrics">first line of the real lyrics<br>second line with more words<br>third line keeps it over the threshold</div>
</body></html>`
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/f": page}}, "http://x", 0)

	song, err := s.Lyrics(context.Background(), "http://x/f")
	require.NoError(t, err)

	// No h1 on this variant: title comes from the <title> tag.
	assert.Equal(t, "Fallback Song", song.Title)
	assert.Equal(t, "Some Artist", song.Artist)
	assert.False(t, song.RTL)
	require.Len(t, song.Lines, 3)
	assert.Equal(t, "first line of the real lyrics", song.Lines[0])
}

func TestShironet_LyricsMissing(t *testing.T) {
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/empty": "<html><body>nothing here</body></html>"}}, "http://x", 0)

	_, err := s.Lyrics(context.Background(), "http://x/empty")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no lyrics found")
}

func TestShironet_Search(t *testing.T) {
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/search?q=%D7%A9%D7%99%D7%A8": searchPageHTML}}, "http://x", 0)

	results, err := s.Search(context.Background(), "שיר")
	require.NoError(t, err)
	require.Len(t, results, 3, "links without wrkid or type=lyrics are dropped")

	assert.Equal(t, "שיר אחד", results[0].Title)
	assert.Equal(t, "אמן אחד", results[0].Artist)
	assert.Equal(t, "http://x/artist?type=lyrics&lang=1&prfid=2&wrkid=100", results[0].URL)

	// Absolute hrefs pass through untouched.
	assert.Equal(t, "https://other.example.com/page?type=lyrics&wrkid=300", results[2].URL)
	assert.Equal(t, "External Song", results[2].Title)
	assert.Empty(t, results[2].Artist)
}

func TestShironet_SearchCapsResults(t *testing.T) {
	var body string
	for i := 0; i < 20; i++ {
		body += fmt.Sprintf(`<a href="/artist?type=lyrics&wrkid=%d">Song %d - Artist</a>`, i, i)
	}
	page := "<html><body>" + body + "</body></html>"
	s := NewShironet(&fixtureFetcher{pages: map[string]string{"/search?q=q": page}}, "http://x", 0)

	results, err := s.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, results, 10)
}

func TestShironet_WithHTTPFetcher(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			fmt.Fprint(w, searchPageHTML)
		default:
			fmt.Fprint(w, lyricPageHTML)
		}
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(types.HTTPConfig{})
	s := NewShironet(fetcher, ts.URL, 0)

	results, err := s.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, 3)

	song, err := s.Lyrics(context.Background(), ts.URL+"/song")
	require.NoError(t, err)
	assert.Equal(t, "שיר לדוגמה", song.Title)
}

func TestHTTPFetcher_Non200(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(types.HTTPConfig{})
	_, err := fetcher.Fetch(context.Background(), ts.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestHTTPFetcher_SendsBrowserHeaders(t *testing.T) {
	var ua string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.UserAgent()
		fmt.Fprint(w, "<html></html>")
	}))
	defer ts.Close()

	fetcher := NewHTTPFetcher(types.HTTPConfig{})
	_, err := fetcher.Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, ua)
}
