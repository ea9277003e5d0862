package agecalc

import "fmt"

var historicalEvents = map[int][]string{
	1990: {"World Wide Web invented", "Hubble Space Telescope launched"},
	2000: {"Y2K bug concern", "Human genome sequenced"},
	2010: {"iPad released", "Instagram launched"},
	2020: {"COVID-19 pandemic", "Mars Perseverance rover launched"},
}

// HistoricalEvents returns notable events of a birth year, or a generic line.
func HistoricalEvents(year int) []string {
	if events, ok := historicalEvents[year]; ok {
		out := make([]string, len(events))
		copy(out, events)
		return out
	}
	return []string{fmt.Sprintf("Born in %d - a year of change and growth", year)}
}
