package agecalc

import "time"

// MilestoneStatus classifies a milestone relative to today.
type MilestoneStatus string

const (
	StatusPassed   MilestoneStatus = "passed"
	StatusUpcoming MilestoneStatus = "upcoming"
)

// Milestone is a named age projected onto a calendar date.
type Milestone struct {
	Name          string          `json:"name"`
	Years         int             `json:"years"`
	Date          string          `json:"date"`
	DateFormatted string          `json:"date_formatted"`
	Status        MilestoneStatus `json:"status"`
	DaysAgo       *int            `json:"days_ago,omitempty"`
	DaysUntil     *int            `json:"days_until,omitempty"`
}

type milestoneOffset struct {
	years int
	name  string
}

// Ascending by age; output keeps this order.
var milestoneOffsets = []milestoneOffset{
	{1, "First Birthday"},
	{5, "5 Years Old"},
	{10, "10 Years Old"},
	{13, "13 Years Old (Teenager)"},
	{16, "16 Years Old"},
	{18, "18 Years Old (Adult)"},
	{21, "21 Years Old"},
	{25, "25 Years Old (Quarter Life)"},
	{30, "30 Years Old"},
	{40, "40 Years Old"},
	{50, "50 Years Old"},
	{65, "65 Years Old (Retirement)"},
	{100, "100 Years Old (Centenarian)"},
	{110, "110 Years Old (Supercentenarian)"},
	{116, "116 Years Old (Oldest Man)"},
	{118, "118 Years Old (As of 2025)"},
	{120, "120 Years Old (Near record)"},
	{122, "122 Years Old (World Record)"},
	{150, "150 Years Old (Theoretical Max)"},
}

// ProjectMilestones adds each fixed age offset to birth and classifies the
// result against today. Milestones landing after year 2200 are dropped.
func ProjectMilestones(birth, today time.Time) []Milestone {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	out := make([]Milestone, 0, len(milestoneOffsets))
	for _, off := range milestoneOffsets {
		year := birth.Year() + off.years
		if year > MaxMilestoneYear {
			continue
		}
		at := anniversary(birth, year)
		ms := Milestone{
			Name:          off.name,
			Years:         off.years,
			Date:          at.Format(DateLayout),
			DateFormatted: at.Format(DisplayLayout),
		}
		if at.Before(start) {
			days := wholeDays(at, start)
			ms.Status = StatusPassed
			ms.DaysAgo = &days
		} else {
			days := wholeDays(start, at)
			ms.Status = StatusUpcoming
			ms.DaysUntil = &days
		}
		out = append(out, ms)
	}
	return out
}
