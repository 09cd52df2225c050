package services

import (
	"regexp"
	"strings"
)

// quotedBy collapses a quote sitting directly before the "by" separator,
// so `"Song Title" by Artist` normalizes to `Song Title by Artist`.
var quotedBy = regexp.MustCompile(`["']\s*by `)

// SanitizeSlogan cleans a raw model slogan: trims whitespace and strips
// surrounding quote characters. Idempotent: applying it twice yields the
// same string as applying it once.
func SanitizeSlogan(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// SanitizeSongs splits a raw single-line playlist response on commas and
// cleans each fragment. Fragments without the literal " by " separator
// are discarded; quote variants around the separator are normalized and
// residual quotes and spaces stripped from both ends. Idempotent on its
// own output joined back with commas.
func SanitizeSongs(raw string) []string {
	fragments := strings.Split(raw, ",")
	songs := make([]string, 0, len(fragments))

	for _, fragment := range fragments {
		song := strings.TrimSpace(fragment)
		if !strings.Contains(song, " by ") {
			continue
		}
		song = quotedBy.ReplaceAllString(song, " by ")
		song = strings.Trim(song, ` "'`)
		songs = append(songs, song)
	}
	return songs
}
