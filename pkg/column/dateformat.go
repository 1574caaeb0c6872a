package column

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/nleeper/goment"

	"github.com/oakwood-commons/colkit/pkg/textfilter"
)

// DefaultDateFormat is used when the "format" property is empty.
const DefaultDateFormat = "YYYY-MM-DDTHH:mm:ssZ"

var extraDateLayouts = []string{
	"2006/1/2",
	"2006/1/2 15:4:5",
	"2006.1.2",
	"1/2/2006",
	"2 Jan 2006",
	"2 Jan, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.RFC1123,
	time.RFC1123Z,
}

var dateParser = &now.Config{
	WeekStartDay: time.Monday,
	TimeLocation: time.UTC,
	TimeFormats:  append(append([]string{}, now.TimeFormats...), extraDateLayouts...),
}

// parseDate reads a cell value as a point in time. Numbers are Unix
// milliseconds; strings are tried as RFC 3339 and then leniently.
func parseDate(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, !x.IsZero()
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, !x.IsZero()
	case string:
		return parseDateString(x)
	case nil, bool:
		return time.Time{}, false
	}
	if f, ok := textfilter.AsFloat(v); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Time{}, false
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	t, err := dateParser.Parse(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// formatDate renders t with a moment-style pattern such as "YYYY-MM-DD HH:mm".
// Text inside square brackets is copied literally.
func formatDate(t time.Time, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultDateFormat
	}
	g, err := goment.New(t)
	if err != nil {
		return "", fmt.Errorf("format date: %w", err)
	}
	return g.Format(pattern), nil
}
