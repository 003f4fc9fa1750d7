package game

import "strings"

// Normalize canonicalizes raw message text into a comparable word token:
// lowercased, surrounding whitespace trimmed, and backticks replaced with
// apostrophes so the token is safe inside code-formatted replies.
func Normalize(raw string) string {
	word := strings.ToLower(strings.TrimSpace(raw))
	return strings.ReplaceAll(word, "`", "'")
}
