package gtfs

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTimeToSeconds converts a wall-clock-of-day string like "08:23:45"
// into seconds since the start of the service day. Hours past 24 are valid
// and denote post-midnight service ("25:10:00" is 01:10 the next day).
func ClockTimeToSeconds(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed clock time %q", clock)
	}

	hr, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q: %w", clock, err)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q: %w", clock, err)
	}
	sec, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("malformed clock time %q: %w", clock, err)
	}

	if hr < 0 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("malformed clock time %q", clock)
	}

	return sec + min*60 + hr*3600, nil
}

// SecondsToClockTime is the inverse of ClockTimeToSeconds.
func SecondsToClockTime(secs int) string {
	hr := secs / 3600
	secs %= 3600
	min := secs / 60
	secs %= 60

	return fmt.Sprintf("%02d:%02d:%02d", hr, min, secs)
}
