// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package songtext cleans and segments scraped lyric text.
package songtext

import (
	"regexp"
	"strings"
)

var excessiveBreaks = regexp.MustCompile(`\n{3,}`)

// CleanPunctuation removes commas and periods from a lyric line. Sung text
// reads better on a slide without them. The function is idempotent.
func CleanPunctuation(line string) string {
	line = strings.ReplaceAll(line, ",", "")
	return strings.ReplaceAll(line, ".", "")
}

// Normalize tidies a raw lyric block: runs of three or more newlines
// collapse to a single blank line, each line loses its edge whitespace,
// and leading and trailing blank lines are dropped. Interior blank lines
// survive because they mark section boundaries. Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = excessiveBreaks.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Lines splits a normalized lyric block into lines with punctuation
// removed, ready for section splitting and layout.
func Lines(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	lines := strings.Split(norm, "\n")
	for i, line := range lines {
		lines[i] = CleanPunctuation(line)
	}
	return lines
}
