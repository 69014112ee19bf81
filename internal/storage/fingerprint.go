package storage

import "strings"

// ParserRevision must be bumped by hand whenever the parser or builder output
// changes shape, so that every existing cache artifact is invalidated.
const ParserRevision = "1"

// Fingerprint identifies a snapshot by source content and parser revision.
func Fingerprint(token, revision string) string {
	return token + "@" + revision
}

// CacheKey derives a filesystem-safe key from a fingerprint. Non-empty
// suffixes (codec, compression) are appended with dots.
func CacheKey(fingerprint string, suffixes ...string) string {
	var b strings.Builder
	b.WriteString("emojidb-")
	for _, r := range fingerprint {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	for _, s := range suffixes {
		if s != "" {
			b.WriteByte('.')
			b.WriteString(s)
		}
	}
	return b.String()
}
