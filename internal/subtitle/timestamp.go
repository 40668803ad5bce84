package subtitle

import (
	"fmt"
	"regexp"
	"strings"
)

var timestampRe = regexp.MustCompile(`(\d{2}:\d{2}:\d{2}[.,]\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2}[.,]\d{3})`)

// ParseTime converts an SRT or VTT timestamp (HH:MM:SS,mmm or HH:MM:SS.mmm)
// to seconds.
func ParseTime(ts string) (float64, error) {
	ts = strings.Replace(strings.TrimSpace(ts), ",", ".", 1)
	var h, m, s, ms int
	if _, err := fmt.Sscanf(ts, "%d:%d:%d.%d", &h, &m, &s, &ms); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTimestamp, ts)
	}
	return float64(h*3600+m*60+s) + float64(ms)/1000.0, nil
}

// FormatSRTTime renders seconds as an SRT timestamp (HH:MM:SS,mmm)
func FormatSRTTime(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// FormatVTTTime renders seconds as a WebVTT timestamp (HH:MM:SS.mmm)
func FormatVTTTime(seconds float64) string {
	h, m, s, ms := splitTime(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func splitTime(seconds float64) (h, m, s, ms int) {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(seconds*1000 + 0.5)
	h = totalMs / 3600000
	totalMs %= 3600000
	m = totalMs / 60000
	totalMs %= 60000
	s = totalMs / 1000
	ms = totalMs % 1000
	return
}
