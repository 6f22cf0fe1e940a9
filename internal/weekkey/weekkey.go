// Package weekkey maps calendar time to the canonical week identifier
// used as the persistence key, and back to display ranges. The key is
// "YYYY-WW" with a zero-padded ISO week number, so lexicographic order
// of keys matches calendar order.
package weekkey

import (
	"fmt"
	"time"
)

// Info is everything derivable from a week key alone.
type Info struct {
	WeekKey    string
	Year       int
	WeekNumber int
	DateRange  string // "6–12 января"
}

var monthNames = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Format builds the canonical key for an ISO year and week number.
func Format(year, week int) string {
	return fmt.Sprintf("%d-%02d", year, week)
}

// Parse splits a week key into ISO year and week number. Only the
// canonical form is accepted: an unpadded or suffixed key would let the
// same calendar week live under two distinct store keys.
func Parse(key string) (year, week int, err error) {
	if _, err = fmt.Sscanf(key, "%d-%d", &year, &week); err != nil {
		return 0, 0, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if year < 1 || week < 1 || week > 53 || Format(year, week) != key {
		return 0, 0, fmt.Errorf("invalid week key %q", key)
	}
	return year, week, nil
}

// IsValid reports whether key is a well-formed week key.
func IsValid(key string) bool {
	_, _, err := Parse(key)
	return err == nil
}

// FromTime returns the key of the ISO week containing t.
func FromTime(t time.Time) string {
	y, w := t.ISOWeek()
	return Format(y, w)
}

// mondayOf returns the Monday of the given ISO week. January 4th is
// always in ISO week 1.
func mondayOf(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, 1-wd)
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// Next returns the key of the week after key, crossing year boundaries
// correctly (52- and 53-week years).
func Next(key string) (string, error) {
	year, week, err := Parse(key)
	if err != nil {
		return "", err
	}
	return FromTime(mondayOf(year, week).AddDate(0, 0, 7)), nil
}

// Previous returns the key of the week before key.
func Previous(key string) (string, error) {
	year, week, err := Parse(key)
	if err != nil {
		return "", err
	}
	return FromTime(mondayOf(year, week).AddDate(0, 0, -7)), nil
}

// InfoFor expands a week key into its display metadata.
func InfoFor(key string) (Info, error) {
	year, week, err := Parse(key)
	if err != nil {
		return Info{}, err
	}
	monday := mondayOf(year, week)
	sunday := monday.AddDate(0, 0, 6)

	var dateRange string
	if monday.Month() == sunday.Month() {
		dateRange = fmt.Sprintf("%d–%d %s", monday.Day(), sunday.Day(), monthNames[monday.Month()-1])
	} else {
		dateRange = fmt.Sprintf("%d %s – %d %s",
			monday.Day(), monthNames[monday.Month()-1],
			sunday.Day(), monthNames[sunday.Month()-1])
	}

	return Info{
		WeekKey:    key,
		Year:       year,
		WeekNumber: week,
		DateRange:  dateRange,
	}, nil
}
