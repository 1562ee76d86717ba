// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songtext

import "strings"

// Color is a 24-bit RGB slide text color.
type Color struct {
	R, G, B uint8
}

// Hex returns the CSS hex form, e.g. "#f0f0ff".
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	b := make([]byte, 0, 7)
	b = append(b, '#')
	for _, v := range []uint8{c.R, c.G, c.B} {
		b = append(b, digits[v>>4], digits[v&0xf])
	}
	return string(b)
}

// Palette holds the alternating section colors. Section i is drawn in
// Palette[i mod len(Palette)]; the first entry doubles as the separator
// line color.
var Palette = []Color{
	{240, 240, 255}, // white-blue (default)
	{255, 220, 180}, // warm peach
	{180, 255, 200}, // mint green
	{255, 200, 220}, // soft pink
	{200, 220, 255}, // light blue
	{255, 255, 180}, // soft yellow
}

// SplitSections splits lyric lines into sections: maximal runs of
// non-blank lines. Blank lines delimit verses and choruses.
func SplitSections(lines []string) [][]string {
	var sections [][]string
	var current []string

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sections = append(sections, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		sections = append(sections, current)
	}
	return sections
}

// ColoredLine is a lyric line tagged with its section color.
type ColoredLine struct {
	Text  string
	Color Color
}

// Flatten rebuilds the line stream from sections, tagging each line with
// its section's palette color and inserting one blank separator line
// (default color) between consecutive sections.
func Flatten(sections [][]string) []ColoredLine {
	var out []ColoredLine
	for i, section := range sections {
		color := Palette[i%len(Palette)]
		for _, line := range section {
			out = append(out, ColoredLine{Text: line, Color: color})
		}
		if i < len(sections)-1 {
			out = append(out, ColoredLine{Text: "", Color: Palette[0]})
		}
	}
	return out
}
