// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPunctuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"commas and periods", "hello, world.", "hello world"},
		{"nothing to clean", "la la la", "la la la"},
		{"only punctuation", ",.,.", ""},
		{"hebrew line", "שלום, עולם.", "שלום עולם"},
		{"keeps other punctuation", "don't stop! (really?)", "don't stop! (really?)"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPunctuation(tt.input)
			if got != tt.want {
				t.Errorf("CleanPunctuation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanPunctuation_Idempotent(t *testing.T) {
	inputs := []string{"hello, world.", "a.b.c,d", "no punct", ""}
	for _, in := range inputs {
		once := CleanPunctuation(in)
		twice := CleanPunctuation(once)
		assert.Equal(t, once, twice, "cleaning twice must equal cleaning once for %q", in)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses triple newlines", "a\n\n\nb", "a\n\nb"},
		{"keeps double newlines", "a\n\nb", "a\n\nb"},
		{"trims line edges", "  a  \n\tb\t", "a\nb"},
		{"drops edge blanks", "\n\na\nb\n\n", "a\nb"},
		{"empty", "", ""},
		{"only whitespace", "  \n \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"a\n\n\n\nb\n", "  x \n\n y ", "", "one line"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestLines(t *testing.T) {
	text := "\nVerse one, line one.\nVerse one line two\n\n\n\nChorus here.\n\n"
	got := Lines(text)
	want := []string{"Verse one line one", "Verse one line two", "", "Chorus here"}
	assert.Equal(t, want, got)
}

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  [][]string
	}{
		{
			"two sections",
			[]string{"a", "b", "", "c"},
			[][]string{{"a", "b"}, {"c"}},
		},
		{
			"consecutive blanks count once",
			[]string{"a", "", "", "b"},
			[][]string{{"a"}, {"b"}},
		},
		{
			"edge blanks ignored",
			[]string{"", "a", ""},
			[][]string{{"a"}},
		},
		{"no lines", nil, nil},
		{"all blank", []string{"", "  ", ""}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSections(tt.lines))
		})
	}
}

func TestFlatten_RoundTripsContent(t *testing.T) {
	lines := []string{"a", "b", "", "c", "", "d", "e", "f"}
	sections := SplitSections(lines)
	flat := Flatten(sections)

	// Same non-blank content in the same order.
	var got []string
	for _, cl := range flat {
		if cl.Text != "" {
			got = append(got, cl.Text)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, got)

	// Exactly one separator between sections.
	var blanks int
	for _, cl := range flat {
		if cl.Text == "" {
			blanks++
		}
	}
	assert.Equal(t, len(sections)-1, blanks)
}

func TestFlatten_ColorsCycle(t *testing.T) {
	// Eight one-line sections: colors must wrap after six.
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "line", "")
	}
	sections := SplitSections(lines)
	require.Len(t, sections, 8)

	flat := Flatten(sections)
	var sectionColors []Color
	for _, cl := range flat {
		if cl.Text != "" {
			sectionColors = append(sectionColors, cl.Color)
		}
	}
	require.Len(t, sectionColors, 8)
	assert.Equal(t, Palette[0], sectionColors[0])
	assert.Equal(t, Palette[5], sectionColors[5])
	assert.Equal(t, Palette[0], sectionColors[6])
	assert.Equal(t, Palette[1], sectionColors[7])

	// Separator lines carry the default color.
	for _, cl := range flat {
		if cl.Text == "" {
			assert.Equal(t, Palette[0], cl.Color)
		}
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#f0f0ff", Color{240, 240, 255}.Hex())
	assert.Equal(t, "#000000", Color{}.Hex())
	assert.Equal(t, "#ffffff", Color{255, 255, 255}.Hex())
}

func TestIsHebrew(t *testing.T) {
	assert.True(t, IsHebrew("שלום"))
	assert.True(t, IsHebrew("mixed שיר text"))
	assert.False(t, IsHebrew("hello world"))
	assert.False(t, IsHebrew(""))
	assert.False(t, IsHebrew("русский текст"))
}

func TestIsRTLSong(t *testing.T) {
	hebrewLines := []string{"שורה אחת", "שורה שתיים", "שורה שלוש"}
	englishLines := []string{"line one", "line two", "line three"}

	assert.True(t, IsRTLSong("שיר", englishLines), "hebrew title wins")
	assert.True(t, IsRTLSong("Song", hebrewLines), "two hebrew opening lines")
	assert.False(t, IsRTLSong("Song", englishLines))

	// A single Hebrew line is not enough.
	oneHebrew := []string{"שורה", "line", "line", "line", "line"}
	assert.False(t, IsRTLSong("Song", oneHebrew))

	// Hebrew lines past the first five do not count.
	lateHebrew := append(append([]string{}, englishLines...), "x", "y", "שש", "שבע")
	assert.False(t, IsRTLSong("Song", lateHebrew))
}

func TestLines_LongLyricStaysIntact(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("la la la\n")
	}
	got := Lines(sb.String())
	require.Len(t, got, 40)
}
