package throughput

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders d according to layout, where
//
//	%D  days
//	%H  hours of the day, two digits
//	%M  minutes of the day, at least two digits
//	%S  seconds of the minute, two digits
//	%Z  milliseconds, three digits
//	%h, %m, %s  as %H, %M, %S without zero padding
//	%%  a literal '%'
//
// Minutes are counted from the start of the day (so 1h2m renders as "62"
// with %M), which keeps "%M:%S.%Z" readable for runs longer than an hour.
// Negative durations are rendered as their absolute value with a '-' prefix.
func FormatDuration(d time.Duration, layout string) string {
	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}

	days := int64(d / (24 * time.Hour))
	secondsOfDay := int64(d%(24*time.Hour)) / int64(time.Second)
	hours := secondsOfDay / 3600
	minutes := secondsOfDay / 60
	seconds := secondsOfDay % 60
	milliseconds := int64(d%time.Second) / int64(time.Millisecond)

	for i := 0; i < len(layout); i++ {
		c := layout[i]
		if c != '%' || i+1 == len(layout) {
			b.WriteByte(c)
			continue
		}
		i++
		switch layout[i] {
		case 'D':
			fmt.Fprintf(&b, "%d", days)
		case 'H':
			fmt.Fprintf(&b, "%02d", hours)
		case 'M':
			fmt.Fprintf(&b, "%02d", minutes)
		case 'S':
			fmt.Fprintf(&b, "%02d", seconds)
		case 'Z':
			fmt.Fprintf(&b, "%03d", milliseconds)
		case 'h':
			fmt.Fprintf(&b, "%d", hours)
		case 'm':
			fmt.Fprintf(&b, "%2d", minutes)
		case 's':
			fmt.Fprintf(&b, "%2d", seconds)
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(layout[i])
		}
	}
	return b.String()
}
