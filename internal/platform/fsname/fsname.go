package fsname

import (
	"strings"
	"time"
	"unicode"
)

// Sanitize maps a note to a filesystem-safe name. Alphanumerics, '-', '_'
// and '.' pass through unchanged; every other rune becomes '_'. The mapping
// is part of the on-disk contract: existing log files must stay discoverable.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// CompactStamp renders a Unix second as the compact UTC timestamp used for
// fallback log names and collision suffixes.
func CompactStamp(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("20060102T150405Z")
}
