package domain

import (
	"fmt"
	"regexp"
	"time"
)

// timestampRe matches the data logger prefix stamped on every telemetry line,
// e.g. "2024/06/01 00:04:17.322". Date and clock may be separated by one or
// more spaces depending on logger firmware.
var timestampRe = regexp.MustCompile(`(\d{4}/\d{2}/\d{2})\s*(\d{2}:\d{2}:\d{2}\.\d+)`)

// extractTimestamp finds the first logger timestamp in line, returning the
// parsed UTC instant and the exact text matched so callers can cut it out.
func extractTimestamp(line string) (time.Time, string, error) {
	m := timestampRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, "", ErrNoTimestamp
	}
	ts, err := time.ParseInLocation("2006/01/02 15:04:05", m[1]+" "+m[2], time.UTC)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("timestamp %q: %w", m[0], ErrMalformed)
	}
	return ts, m[0], nil
}
