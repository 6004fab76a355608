package views

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned when publishedAt is missing or not an ISO date.
var ErrInvalidDate = errors.New("views: invalid date")

// Layouts follow ISO 8601, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses an ISO 8601 date or timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// CardDate formats s as shown on listing cards, e.g. "May 01, 2021".
func CardDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("Jan 02, 2006"), nil
}

// ArticleDate formats s as shown under an article title, e.g. "June 01, 2021".
func ArticleDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format("January 02, 2006"), nil
}

// ISODate formats s as an RFC3339 UTC timestamp for machine-readable tags.
func ISODate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}
