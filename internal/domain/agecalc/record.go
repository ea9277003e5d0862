package agecalc

import (
	"math"
	"time"

	apperrors "github.com/yanqian/agemaster/pkg/errors"
)

const (
	// DaysPerYear is the mean Julian year used for fractional ages.
	DaysPerYear = 365.25
	// MaxAgeYears bounds exact_years of a valid record.
	MaxAgeYears = 150
	// MaxTotalDays is the hard ceiling on elapsed days (200 years).
	MaxTotalDays = DaysPerYear * 200
)

// AgeRecord is the full age summary between a birth date and a reference date.
type AgeRecord struct {
	Years        int     `json:"years"`
	Months       int     `json:"months"`
	Days         int     `json:"days"`
	Hours        int     `json:"hours"`
	Minutes      int     `json:"minutes"`
	Seconds      int     `json:"seconds"`
	TotalDays    int     `json:"total_days"`
	TotalHours   int64   `json:"total_hours"`
	TotalMinutes int64   `json:"total_minutes"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalWeeks   int     `json:"total_weeks"`
	TotalMonths  int     `json:"total_months"`
	ExactYears   float64 `json:"exact_years"`
}

// BuildAgeRecord validates the inputs against now and assembles the record.
// The 150 year cap and the 200 year day ceiling are checked independently.
func BuildAgeRecord(birth, target, now time.Time) (AgeRecord, error) {
	if birth.After(now) {
		return AgeRecord{}, apperrors.Wrap(CodeFutureBirthDate, "Birth date cannot be in the future", nil)
	}
	if birth.After(target) {
		return AgeRecord{}, apperrors.Wrap(CodeDateOrder, "Birth date cannot be after target date", nil)
	}

	delta, err := CalendarDelta(birth, target)
	if err != nil {
		return AgeRecord{}, apperrors.Wrap(CodeDateOrder, "Birth date cannot be after target date", err)
	}

	elapsed := target.Sub(birth)
	totalDays := int(elapsed / (24 * time.Hour))
	totalSeconds := int64(elapsed / time.Second)
	exactYears := float64(totalDays) / DaysPerYear

	if exactYears < 0 || exactYears > MaxAgeYears {
		return AgeRecord{}, apperrors.Wrap(CodeAgeRangeExceeded, "Age exceeds 150 years", nil)
	}
	if totalDays < 0 || float64(totalDays) > MaxTotalDays {
		return AgeRecord{}, apperrors.Wrap(CodeAgeRangeExceeded, "Invalid age range", nil)
	}

	return AgeRecord{
		Years:        delta.Years,
		Months:       delta.Months,
		Days:         delta.Days,
		Hours:        delta.Hours,
		Minutes:      delta.Minutes,
		Seconds:      delta.Seconds,
		TotalDays:    totalDays,
		TotalHours:   totalSeconds / 3600,
		TotalMinutes: totalSeconds / 60,
		TotalSeconds: totalSeconds,
		TotalWeeks:   totalDays / 7,
		TotalMonths:  delta.Years*12 + delta.Months,
		ExactYears:   exactYears,
	}, nil
}

// TimePerceptionFactor is a presentational heuristic for how fast a year
// feels at a given age. Inputs outside [0, 150] get the neutral 1.0.
func TimePerceptionFactor(age float64) float64 {
	if math.IsNaN(age) || math.IsInf(age, 0) || age < 0 || age > MaxAgeYears {
		return 1.0
	}
	switch {
	case age < 10:
		return 0.3
	case age < 20:
		return 0.6
	case age < 30:
		return 0.8
	case age < 50:
		return 1.2
	case age < 70:
		return 1.5
	default:
		return 2.0
	}
}
