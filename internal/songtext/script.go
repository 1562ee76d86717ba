// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package songtext

// IsHebrew reports whether the text contains any Hebrew-block rune
// (U+0590 through U+05FF).
func IsHebrew(text string) bool {
	for _, r := range text {
		if r >= 0x0590 && r <= 0x05FF {
			return true
		}
	}
	return false
}

// IsRTLSong reports whether a song reads right-to-left: a Hebrew title,
// or at least two Hebrew lines among the first five lyric lines.
func IsRTLSong(title string, lines []string) bool {
	if IsHebrew(title) {
		return true
	}
	hebrew := 0
	for i, line := range lines {
		if i >= 5 {
			break
		}
		if IsHebrew(line) {
			hebrew++
		}
	}
	return hebrew >= 2
}
