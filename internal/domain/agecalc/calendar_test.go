package agecalc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalendarDelta(t *testing.T) {
	tests := []struct {
		name   string
		birth  time.Time
		target time.Time
		want   Delta
	}{
		{"same instant", day(2000, 1, 1), day(2000, 1, 1), Delta{}},
		{"end of month clamp", day(2000, 1, 31), day(2000, 2, 29), Delta{Months: 1}},
		{"leap birthday in common year", day(2000, 2, 29), day(2001, 2, 28), Delta{Years: 1}},
		{"day after leap fallback", day(2000, 2, 29), day(2001, 3, 1), Delta{Years: 1, Days: 1}},
		{"month borrow", day(1990, 5, 15), day(2025, 6, 1), Delta{Years: 35, Days: 17}},
		{"with clock time", day(1990, 5, 15), time.Date(2025, 6, 1, 10, 20, 30, 0, time.UTC), Delta{Years: 35, Days: 17, Hours: 10, Minutes: 20, Seconds: 30}},
		{"december to january", day(1999, 12, 25), day(2000, 1, 5), Delta{Days: 11}},
		{"eleven months", day(2020, 1, 10), day(2020, 12, 31), Delta{Months: 11, Days: 21}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CalendarDelta(tc.birth, tc.target)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestCalendarDeltaRejectsReversedDates(t *testing.T) {
	_, err := CalendarDelta(day(2001, 1, 1), day(2000, 1, 1))
	require.True(t, errors.Is(err, ErrInvalidDateOrder))
}

func TestCalendarDeltaComponentsStayBounded(t *testing.T) {
	birth := day(1988, 8, 31)
	for target := birth; target.Year() < 1992; target = target.AddDate(0, 0, 3) {
		got, err := CalendarDelta(birth, target)
		require.NoError(t, err)
		require.GreaterOrEqual(t, got.Months, 0)
		require.Less(t, got.Months, 12)
		require.GreaterOrEqual(t, got.Days, 0)
		require.Less(t, got.Days, 31)
		require.Equal(t, 0, got.Hours)
	}
}

func TestZodiacSignBoundaries(t *testing.T) {
	tests := []struct {
		month time.Month
		day   int
		sign  string
	}{
		{time.January, 1, "Capricorn"},
		{time.January, 19, "Capricorn"},
		{time.January, 20, "Aquarius"},
		{time.February, 18, "Aquarius"},
		{time.February, 19, "Pisces"},
		{time.February, 29, "Pisces"},
		{time.March, 20, "Pisces"},
		{time.March, 21, "Aries"},
		{time.April, 20, "Taurus"},
		{time.May, 21, "Gemini"},
		{time.June, 21, "Cancer"},
		{time.July, 22, "Cancer"},
		{time.July, 23, "Leo"},
		{time.August, 23, "Virgo"},
		{time.September, 23, "Libra"},
		{time.October, 23, "Scorpio"},
		{time.November, 21, "Scorpio"},
		{time.November, 22, "Sagittarius"},
		{time.December, 21, "Sagittarius"},
		{time.December, 22, "Capricorn"},
		{time.December, 31, "Capricorn"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.sign, ZodiacSign(tc.month, tc.day), "%s %d", tc.month, tc.day)
	}
}

func TestZodiacSignLateJanuaryIsAquarius(t *testing.T) {
	for d := 20; d <= 31; d++ {
		require.Equal(t, "Aquarius", ZodiacSign(time.January, d), "January %d", d)
	}
	for d := 1; d <= 19; d++ {
		require.Equal(t, "Capricorn", ZodiacSign(time.January, d), "January %d", d)
	}
}

func TestZodiacSignIsTotal(t *testing.T) {
	signs := make(map[string]struct{})
	for d := day(2000, 1, 1); d.Year() == 2000; d = d.AddDate(0, 0, 1) {
		sign := ZodiacSign(d.Month(), d.Day())
		require.NotEqual(t, "Unknown", sign, d.Format(DateLayout))
		signs[sign] = struct{}{}
	}
	require.Len(t, signs, 12)
}

func TestChineseZodiac(t *testing.T) {
	require.Equal(t, "Horse", ChineseZodiac(1990))
	require.Equal(t, "Rat", ChineseZodiac(1900))
	require.Equal(t, "Dragon", ChineseZodiac(2000))
	require.Equal(t, "Monkey", ChineseZodiac(2100))
	require.Equal(t, "Unknown", ChineseZodiac(1899))
	require.Equal(t, "Unknown", ChineseZodiac(2101))
}

func TestPlanetAge(t *testing.T) {
	asOf := day(2025, 6, 1)
	birth := asOf.AddDate(0, 0, -365)

	require.InDelta(t, 0.53, PlanetAge(birth, asOf, "mars"), 1e-9)
	require.InDelta(t, 0.53, PlanetAge(birth, asOf, "MARS"), 1e-9)
	require.InDelta(t, 4.15, PlanetAge(birth, asOf, "mercury"), 1e-9)
	require.Zero(t, PlanetAge(birth, asOf, "vulcan"))
	require.Zero(t, PlanetAge(asOf, asOf, "mars"))
	require.Zero(t, PlanetAge(asOf.AddDate(0, 0, 1), asOf, "mars"))
	require.Zero(t, PlanetAge(day(1800, 1, 1), asOf, "mars"))
}

func TestPlanetaryAgesCoversAllPlanets(t *testing.T) {
	ages := PlanetaryAges(day(1990, 1, 1), day(2020, 1, 1))
	require.Len(t, ages, 8)
	require.NotContains(t, ages, "earth")
	require.Greater(t, ages["mercury"], ages["pluto"])
}

func TestNextBirthday(t *testing.T) {
	tests := []struct {
		name  string
		birth time.Time
		today time.Time
		want  int
	}{
		{"today", day(1990, 6, 1), time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC), 0},
		{"tomorrow", day(1990, 6, 2), day(2025, 6, 1), 1},
		{"yesterday", day(1990, 5, 31), day(2025, 6, 1), 364},
		{"leap birthday in common year", day(2000, 2, 29), day(2025, 2, 1), 27},
		{"leap birthday in leap year", day(2000, 2, 29), day(2028, 2, 1), 28},
		{"leap birthday across years", day(2000, 2, 29), day(2027, 3, 1), 365},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NextBirthday(tc.birth, tc.today))
		})
	}
}

func TestWeekdayOfBirth(t *testing.T) {
	require.Equal(t, "Saturday", WeekdayOfBirth(day(2000, 1, 1)))
	require.Equal(t, "Monday", WeekdayOfBirth(day(2024, 1, 1)))
	require.Equal(t, "Tuesday", WeekdayOfBirth(day(1990, 5, 15)))
	require.Equal(t, "Sunday", WeekdayOfBirth(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)))
}
