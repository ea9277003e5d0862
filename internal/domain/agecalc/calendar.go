package agecalc

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Delta is a calendar decomposition where each field is bounded by the next
// larger unit: "2 years, 3 months, 10 days", not a flat duration.
type Delta struct {
	Years   int
	Months  int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// CalendarDelta decomposes the time between birth and target. Whole months
// are added to birth with end-of-month clamping (Jan 31 + 1 month = Feb 28/29)
// and the remainder is split into days, hours, minutes and seconds.
func CalendarDelta(birth, target time.Time) (Delta, error) {
	if birth.After(target) {
		return Delta{}, ErrInvalidDateOrder
	}
	months := (target.Year()-birth.Year())*12 + int(target.Month()-birth.Month())
	anchor := addMonths(birth, months)
	for months > 0 && anchor.After(target) {
		months--
		anchor = addMonths(birth, months)
	}

	rem := target.Sub(anchor)
	days := int(rem / (24 * time.Hour))
	rem -= time.Duration(days) * 24 * time.Hour
	hours := int(rem / time.Hour)
	rem -= time.Duration(hours) * time.Hour
	minutes := int(rem / time.Minute)
	rem -= time.Duration(minutes) * time.Minute

	return Delta{
		Years:   months / 12,
		Months:  months % 12,
		Days:    days,
		Hours:   hours,
		Minutes: minutes,
		Seconds: int(rem / time.Second),
	}, nil
}

func addMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

type zodiacWindow struct {
	sign       string
	startMonth time.Month
	startDay   int
	endMonth   time.Month
	endDay     int
}

var zodiacWindows = []zodiacWindow{
	{"Capricorn", time.January, 1, time.January, 19},
	{"Aquarius", time.January, 20, time.February, 18},
	{"Pisces", time.February, 19, time.March, 20},
	{"Aries", time.March, 21, time.April, 19},
	{"Taurus", time.April, 20, time.May, 20},
	{"Gemini", time.May, 21, time.June, 20},
	{"Cancer", time.June, 21, time.July, 22},
	{"Leo", time.July, 23, time.August, 22},
	{"Virgo", time.August, 23, time.September, 22},
	{"Libra", time.September, 23, time.October, 22},
	{"Scorpio", time.October, 23, time.November, 21},
	{"Sagittarius", time.November, 22, time.December, 21},
	{"Capricorn", time.December, 22, time.December, 31},
}

// ZodiacSign returns the western sign for a birth month and day.
func ZodiacSign(month time.Month, day int) string {
	key := int(month)*100 + day
	for _, w := range zodiacWindows {
		if key >= int(w.startMonth)*100+w.startDay && key <= int(w.endMonth)*100+w.endDay {
			return w.sign
		}
	}
	return "Unknown"
}

var chineseAnimals = [12]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

// ChineseZodiac maps a year onto the twelve-animal cycle anchored at 1900.
// Years outside the accepted input range report "Unknown".
func ChineseZodiac(year int) string {
	if year < MinYear || year > MaxYear {
		return "Unknown"
	}
	return chineseAnimals[(year-MinYear)%12]
}

// OrbitalPeriods holds each planet's year length in Earth days.
var OrbitalPeriods = map[string]float64{
	"mercury": 87.97,
	"venus":   224.70,
	"earth":   365.25,
	"mars":    686.98,
	"jupiter": 4332.82,
	"saturn":  10755.70,
	"uranus":  30687.15,
	"neptune": 60190.03,
	"pluto":   90520.00,
}

// Planets lists the bodies reported in a calculation, innermost first.
var Planets = []string{"mercury", "venus", "mars", "jupiter", "saturn", "uranus", "neptune", "pluto"}

// PlanetAge is the number of the planet's years elapsed between birth and
// asOf, rounded to two decimals. Unknown planets and elapsed spans that are
// non-positive or longer than 200 Earth years yield 0.
func PlanetAge(birth, asOf time.Time, planet string) float64 {
	period, ok := OrbitalPeriods[strings.ToLower(strings.TrimSpace(planet))]
	if !ok {
		return 0
	}
	days := wholeDays(birth, asOf)
	if days <= 0 || float64(days) > MaxTotalDays {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(float64(days) / period).Round(2).Float64()
	return rounded
}

// PlanetaryAges evaluates PlanetAge for every entry of Planets.
func PlanetaryAges(birth, asOf time.Time) map[string]float64 {
	out := make(map[string]float64, len(Planets))
	for _, p := range Planets {
		out[p] = PlanetAge(birth, asOf, p)
	}
	return out
}

// NextBirthday counts days from today to the next anniversary of birth,
// today included, clamped to [0, 365].
func NextBirthday(birth, today time.Time) int {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	next := anniversary(birth, y)
	if next.Before(start) {
		next = anniversary(birth, y+1)
	}
	days := wholeDays(start, next)
	switch {
	case days < 0:
		return 0
	case days > 365:
		return 365
	}
	return days
}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayOfBirth names the weekday of the birth date, Monday first.
func WeekdayOfBirth(birth time.Time) string {
	y, m, d := birth.Date()
	wd := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday()
	return weekdayNames[(int(wd)+6)%7]
}
