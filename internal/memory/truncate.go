package memory

// Two distinct truncation policies are kept on purpose: stored exchange
// responses are cut without a marker, while file snippets get a "..." suffix
// when (and only when) content was actually cut. Limits are in runes so a
// cut never splits a multi-byte character.

// truncatePlain returns the first limit characters of s, nothing appended.
func truncatePlain(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// truncateWithEllipsis returns the first limit characters of s with a "..."
// suffix when truncation occurred; s unchanged otherwise.
func truncateWithEllipsis(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}
