package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

var durationRegexp = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatISO8601Duration converts a YouTube ISO-8601 duration into a
// human-readable H:MM:SS or M:SS string, e.g. PT1H2M10S -> 1:02:10.
func FormatISO8601Duration(duration string) string {
	match := durationRegexp.FindStringSubmatch(duration)
	if match == nil {
		return "0:00"
	}

	hours := atoi(match[1])
	minutes := atoi(match[2])
	seconds := atoi(match[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}

	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}

	n, _ := strconv.Atoi(s)
	return n
}
