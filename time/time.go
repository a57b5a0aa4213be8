package time

import (
	"time"
)

const (
	// dateTimeFormat is a date time defined by RFC3339 section 5.6 with no UTC offset.
	dateTimeFormat = "2006-01-02T15:04:05.99Z"

	// httpDateFormat is a IMF-fixdate formatted time https://tools.ietf.org/html/rfc7231.html#section-7.1.1.1
	httpDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// FormatDateTime format value as a date-time
func FormatDateTime(value time.Time) string {
	return value.Format(dateTimeFormat)
}

// ParseDateTime parse a string as a date-time
func ParseDateTime(value string) (time.Time, error) {
	return time.Parse(dateTimeFormat, value)
}

// FormatHTTPDate format value as a http-date
func FormatHTTPDate(value time.Time) string {
	return value.Format(httpDateFormat)
}

// ParseHTTPDate parse a string as a http-date
func ParseHTTPDate(value string) (time.Time, error) {
	return time.Parse(httpDateFormat, value)
}

// FormatEpochSeconds returns value as a Unix time in seconds, truncated to
// millisecond precision.
func FormatEpochSeconds(value time.Time) float64 {
	ms := value.UnixNano() / int64(time.Millisecond)
	return float64(ms) / 1e3
}

// ParseEpochSeconds returns the time for value, a Unix time in seconds,
// truncated to millisecond precision.
func ParseEpochSeconds(value float64) time.Time {
	ms := int64(value * 1e3)
	return time.Unix(ms/1e3, (ms%1e3)*int64(time.Millisecond))
}
