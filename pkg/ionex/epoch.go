package ionex

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseEpoch parses a six-field UTC datetime "YYYY MM DD hh mm ss" as
// found in EPOCH OF FIRST/LAST MAP and EPOCH OF CURRENT MAP lines.
// Fields are whitespace separated; trailing content is ignored.
func parseEpoch(content string) (time.Time, error) {
	fields := strings.Fields(content)
	if len(fields) < 6 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrEpochParsing, content)
	}

	vals := make([]int, 6)
	for i := 0; i < 6; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrEpochParsing, fields[i])
		}
		vals[i] = v
	}

	return time.Date(vals[0], time.Month(vals[1]), vals[2], vals[3], vals[4], vals[5], 0, time.UTC), nil
}

// formatEpoch formats an epoch using the 6I6 fixed-column layout.
func formatEpoch(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%6d%6d%6d%6d%6d%6d",
		t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}
