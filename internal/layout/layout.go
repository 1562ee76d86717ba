// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout chooses slide column counts and font sizes from line counts.
package layout

// Layout holds the column count and font size (in points) for one slide.
type Layout struct {
	Columns  int `json:"columns"`
	FontSize int `json:"font_size"`
}

// breakpoint maps a maximum line count to a layout. Entries are ordered by
// ascending MaxLines; the first row whose MaxLines is >= n wins.
type breakpoint struct {
	MaxLines int
	Layout   Layout
}

var breakpoints = []breakpoint{
	{15, Layout{Columns: 1, FontSize: 22}},
	{28, Layout{Columns: 2, FontSize: 18}},
	{42, Layout{Columns: 3, FontSize: 16}},
	{56, Layout{Columns: 4, FontSize: 14}},
	{72, Layout{Columns: 4, FontSize: 12}},
}

// overflow is the layout for line counts past the last breakpoint.
var overflow = Layout{Columns: 5, FontSize: 10}

// ForLineCount returns the layout for a slide holding n lines. The mapping
// is a pure function of n: more lines mean more columns and smaller type.
func ForLineCount(n int) Layout {
	for _, bp := range breakpoints {
		if n <= bp.MaxLines {
			return bp.Layout
		}
	}
	return overflow
}

// SplitColumns distributes lines across k columns in reading order, filling
// each column before starting the next. Every column holds at most
// ceil(len(lines)/k) lines; concatenating the columns in order reproduces
// the input.
func SplitColumns[T any](lines []T, k int) [][]T {
	if k < 1 {
		k = 1
	}
	perCol := (len(lines) + k - 1) / k
	cols := make([][]T, 0, k)
	for i := 0; i < k; i++ {
		start := i * perCol
		if start > len(lines) {
			start = len(lines)
		}
		end := start + perCol
		if end > len(lines) {
			end = len(lines)
		}
		cols = append(cols, lines[start:end])
	}
	return cols
}
