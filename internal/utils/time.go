package utils

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
)

var (
	// ErrInvalidRange is returned when a date range ends before it starts.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidDate is returned for day keys that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
)

// DateKey returns the YYYY-MM-DD key of the calendar day t falls on in its own location.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// DayOfWeek returns 0 for Sunday through 6 for Saturday.
func DayOfWeek(t time.Time) int {
	return int(t.Weekday())
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// AddDays shifts t by n calendar days, keeping the wall clock time.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SubtractDays shifts t back by n calendar days.
func SubtractDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// DaysApart returns the number of calendar days from a to b (negative when b is earlier).
// Both days are projected onto UTC midnights so DST transitions never skew the count.
func DaysApart(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// DaysBetween returns every calendar day from start to end inclusive, ascending.
// The sequence is lazy and can be ranged over any number of times.
func DaysBetween(start, end time.Time) (iter.Seq[time.Time], error) {
	first := StartOfDay(start)
	last := StartOfDay(end.In(start.Location()))
	if last.Before(first) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidRange, DateKey(last), DateKey(first))
	}

	return func(yield func(time.Time) bool) {
		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			if !yield(day) {
				return
			}
		}
	}, nil
}

// LastNDays returns the window of n days ending on (and including) today.
// A non-positive n yields an empty sequence.
func LastNDays(today time.Time, n int) iter.Seq[time.Time] {
	if n <= 0 {
		return func(func(time.Time) bool) {}
	}
	seq, _ := DaysBetween(SubtractDays(today, n-1), today)
	return seq
}

// WeekBounds returns the Sunday that starts t's week and the Saturday that ends it.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	start := SubtractDays(StartOfDay(t), DayOfWeek(t))
	return start, AddDays(start, 6)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, key)
	}
	return t, nil
}

// ValidateDateKey checks if the string is a canonical day key.
func ValidateDateKey(key string) error {
	_, err := ParseDateKey(key, time.UTC)
	return err
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
