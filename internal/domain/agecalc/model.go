package agecalc

import "github.com/yanqian/agemaster/internal/domain/enrichment"

// Config holds calculator knobs.
type Config struct {
	LifeExpectancy int
	MaxCompare     int
}

// CalculateRequest is the payload of a full age calculation.
type CalculateRequest struct {
	BirthDate  string `json:"birth_date"`
	TargetDate string `json:"target_date"`
}

// CalculateResponse is the full age summary.
type CalculateResponse struct {
	Success             bool               `json:"success"`
	AgeData             AgeRecord          `json:"age_data"`
	ZodiacSign          string             `json:"zodiac_sign"`
	ChineseZodiac       string             `json:"chinese_zodiac"`
	NextBirthday        int                `json:"next_birthday"`
	WeekdayBorn         string             `json:"weekday_born"`
	PlanetaryAges       map[string]float64 `json:"planetary_ages"`
	LifeCalendar        LifeCalendar       `json:"life_calendar"`
	TimePerception      float64            `json:"time_perception"`
	HistoricalEvents    []string           `json:"historical_events"`
	Quote               enrichment.Quote   `json:"quote"`
	FunFact             enrichment.FunFact `json:"fun_fact"`
	BirthDateFormatted  string             `json:"birth_date_formatted"`
	TargetDateFormatted string             `json:"target_date_formatted"`
}

// PersonInput is one entry of a comparison request.
type PersonInput struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
}

// CompareRequest lists the people to compare.
type CompareRequest struct {
	Persons []PersonInput `json:"persons"`
}

// Comparison is the computed view of one person.
type Comparison struct {
	Name          string    `json:"name"`
	AgeData       AgeRecord `json:"age_data"`
	Zodiac        string    `json:"zodiac"`
	ChineseZodiac string    `json:"chinese_zodiac"`
	BirthYear     int       `json:"birth_year"`
}

// CompareResponse carries only the valid persons, in input order.
type CompareResponse struct {
	Success    bool         `json:"success"`
	Comparison []Comparison `json:"comparison"`
}

// MilestonesRequest asks for the milestone projection of a birth date.
type MilestonesRequest struct {
	BirthDate string `json:"birth_date"`
}

// MilestonesResponse wraps the ordered milestones.
type MilestonesResponse struct {
	Success    bool        `json:"success"`
	Milestones []Milestone `json:"milestones"`
}
