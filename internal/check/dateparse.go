package check

import (
	"strings"
	"time"
)

// expiryLayouts are tried in order against the trimmed input; the first
// successful parse wins. No timezone reconciliation happens beyond what the
// layout itself encodes — downstream day arithmetic uses the local clock,
// a known simplification.
var expiryLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseExpiry parses a provider expiration timestamp.
func ParseExpiry(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, NewDateParseError(trimmed)
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, NewDateParseError(trimmed)
}
