package agecalc

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	apperrors "github.com/yanqian/agemaster/pkg/errors"
)

const (
	// DateLayout is the only accepted input format.
	DateLayout = "2006-01-02"
	// DisplayLayout renders dates for humans, e.g. "January 02, 2006".
	DisplayLayout = "January 02, 2006"

	MinYear          = 1900
	MaxYear          = 2100
	MaxMilestoneYear = 2200
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate validates a YYYY-MM-DD string and returns it as UTC midnight.
// Each rejection names the rule that was broken.
func ParseDate(raw string) (time.Time, error) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, invalidDate("Date must be in YYYY-MM-DD format")
	}
	year, _ := strconv.Atoi(raw[0:4])
	month, _ := strconv.Atoi(raw[5:7])
	day, _ := strconv.Atoi(raw[8:10])

	switch {
	case year < MinYear:
		return time.Time{}, invalidDate(fmt.Sprintf("Date cannot be before %d", MinYear))
	case year > MaxYear:
		return time.Time{}, invalidDate(fmt.Sprintf("Date cannot be after %d", MaxYear))
	case month < 1 || month > 12:
		return time.Time{}, invalidDate("Invalid month")
	case day < 1 || day > 31:
		return time.Time{}, invalidDate("Invalid day")
	case day > daysIn(year, time.Month(month)):
		return time.Time{}, invalidDate("Invalid date: " + raw)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func invalidDate(msg string) error {
	return apperrors.Wrap(CodeInvalidInput, msg, nil)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// anniversary returns birth's month/day in the given year. Feb 29 falls back
// to Feb 28 when year is not a leap year.
func anniversary(birth time.Time, year int) time.Time {
	month, day := birth.Month(), birth.Day()
	if month == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// wholeDays floors the distance between two instants to whole days.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
