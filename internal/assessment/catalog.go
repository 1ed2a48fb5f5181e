package assessment

import "fmt"

// Supported instrument identifiers.
const (
	InstrumentPHQ9     = "phq9"
	InstrumentGAD7     = "gad7"
	InstrumentWhiteley = "whiteley"
)

func itemKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("q%d", i+1)
	}
	return keys
}

// PHQ9 is the 9-item depression screen, items scored 0-3 (total 0-27).
var PHQ9 = &Instrument{
	ID:       InstrumentPHQ9,
	Name:     "PHQ-9 Depression Assessment",
	ItemKeys: itemKeys(9),
	ItemMin:  0,
	ItemMax:  3,
	Bands: []SeverityBand{
		{MinScore: 0, Label: "minimal", Interpretation: "Minimal depression"},
		{MinScore: 5, Label: "mild", Interpretation: "Mild depression"},
		{MinScore: 10, Label: "moderate", Interpretation: "Moderate depression"},
		{MinScore: 15, Label: "moderately_severe", Interpretation: "Moderately severe depression"},
		{MinScore: 20, Label: "severe", Interpretation: "Severe depression"},
	},
}

// GAD7 is the 7-item anxiety screen, items scored 0-3 (total 0-21).
var GAD7 = &Instrument{
	ID:       InstrumentGAD7,
	Name:     "GAD-7 Anxiety Assessment",
	ItemKeys: itemKeys(7),
	ItemMin:  0,
	ItemMax:  3,
	Bands: []SeverityBand{
		{MinScore: 0, Label: "minimal", Interpretation: "Minimal anxiety"},
		{MinScore: 5, Label: "mild", Interpretation: "Mild anxiety"},
		{MinScore: 10, Label: "moderate", Interpretation: "Moderate anxiety"},
		{MinScore: 15, Label: "severe", Interpretation: "Severe anxiety"},
	},
}

// Whiteley is the Whiteley-7 health anxiety index, items scored 0-4 (total 0-28).
var Whiteley = &Instrument{
	ID:       InstrumentWhiteley,
	Name:     "Whiteley 7 Health Anxiety Assessment",
	ItemKeys: itemKeys(7),
	ItemMin:  0,
	ItemMax:  4,
	Bands: []SeverityBand{
		{MinScore: 0, Label: "minimal", Interpretation: "Minimal health anxiety - within normal range"},
		{MinScore: 7, Label: "mild", Interpretation: "Mild health anxiety - minimal hypochondriacal concerns"},
		{MinScore: 14, Label: "moderate", Interpretation: "Moderate health anxiety - some hypochondriacal concerns"},
		{MinScore: 21, Label: "severe", Interpretation: "High health anxiety - significant hypochondriacal concerns"},
	},
}

var catalog = map[string]*Instrument{
	InstrumentPHQ9:     PHQ9,
	InstrumentGAD7:     GAD7,
	InstrumentWhiteley: Whiteley,
}

// Lookup returns the instrument for an identifier.
func Lookup(id string) (*Instrument, bool) {
	inst, ok := catalog[id]
	return inst, ok
}
