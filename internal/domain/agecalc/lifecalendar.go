package agecalc

import "math"

const (
	// WeeksPerYear approximates 365.25 / 7.
	WeeksPerYear = 52.143
	// DefaultLifeExpectancy is used when no positive expectancy is configured.
	DefaultLifeExpectancy = 80
)

// LifeCalendar expresses lived time as weeks against a life expectancy.
type LifeCalendar struct {
	WeeksLived      int     `json:"weeks_lived"`
	WeeksRemaining  int     `json:"weeks_remaining"`
	PercentageLived float64 `json:"percentage_lived"`
	LifeExpectancy  int     `json:"life_expectancy"`
}

// EstimateLifeCalendar never fails: out of range inputs collapse to an empty
// calendar instead of an error so the surrounding summary still renders.
func EstimateLifeCalendar(exactYears float64, lifeExpectancy int) LifeCalendar {
	if lifeExpectancy <= 0 {
		lifeExpectancy = DefaultLifeExpectancy
	}
	totalWeeks := float64(lifeExpectancy) * WeeksPerYear

	weeksLived := 0
	if !math.IsNaN(exactYears) && !math.IsInf(exactYears, 0) {
		weeksLived = int(math.Floor(exactYears * WeeksPerYear))
	}
	if weeksLived < 0 || float64(weeksLived) > totalWeeks {
		weeksLived = 0
		totalWeeks = 0
	}

	remaining := int(totalWeeks - float64(weeksLived))
	if remaining < 0 {
		remaining = 0
	}

	pct := 0.0
	if totalWeeks > 0 {
		pct = float64(weeksLived) / totalWeeks * 100
	}
	pct = math.Min(100, math.Max(0, pct))

	return LifeCalendar{
		WeeksLived:      weeksLived,
		WeeksRemaining:  remaining,
		PercentageLived: math.Round(pct*10) / 10,
		LifeExpectancy:  lifeExpectancy,
	}
}
