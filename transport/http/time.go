package http

import (
	"fmt"
	"time"
)

// httpTimeFormats are the date layouts accepted from HTTP response headers
// such as Date, Last-Modified, and Expires. Services are not always strict
// about zero-padding the day field, so both variants are tried.
var httpTimeFormats = []string{
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"Mon, 2 Jan 2006 15:04:05 GMT",
	"Monday, 02-Jan-06 15:04:05 MST",
	"Mon Jan 02 15:04:05 2006",
	"Mon Jan 2 15:04:05 2006",
}

// ParseTime attempts to parse the provided value using the set of date
// layouts HTTP servers in the wild are known to emit, returning the first
// successful match.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range httpTimeFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse time %q", value)
}
