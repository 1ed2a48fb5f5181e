package assessment

import (
	"fmt"
	"sort"

	"psyfind/internal/apperr"
)

// SeverityBand labels a contiguous score range. Bands are listed in ascending
// minScore order and partition the instrument's full score range.
type SeverityBand struct {
	MinScore       int
	Label          string
	Interpretation string
}

// Instrument is a standardized questionnaire with fixed sum scoring.
type Instrument struct {
	ID       string
	Name     string
	ItemKeys []string
	// Answer domain, inclusive, shared by all items.
	ItemMin int
	ItemMax int
	Bands   []SeverityBand
}

// MaxScore is the highest total the instrument can produce.
func (inst *Instrument) MaxScore() int {
	return len(inst.ItemKeys) * inst.ItemMax
}

// Result is the outcome of scoring a complete answer set.
type Result struct {
	InstrumentID   string         `json:"instrument_id"`
	Total          int            `json:"score"`
	MaxScore       int            `json:"max_score"`
	Severity       string         `json:"severity"`
	Interpretation string         `json:"interpretation"`
	Answers        map[string]int `json:"responses"`
}

// Score validates the answer map against the instrument and computes the
// total, severity band and interpretation. Pure; no side effects.
func Score(inst *Instrument, answers map[string]int) (*Result, error) {
	var missing, outOfRange []string
	total := 0
	for _, key := range inst.ItemKeys {
		v, ok := answers[key]
		if !ok {
			missing = append(missing, key)
			continue
		}
		if v < inst.ItemMin || v > inst.ItemMax {
			outOfRange = append(outOfRange, key)
			continue
		}
		total += v
	}
	var extra []string
	for key := range answers {
		if !containsKey(inst.ItemKeys, key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 || len(outOfRange) > 0 || len(extra) > 0 {
		return nil, apperr.Validation(fmt.Sprintf("incomplete or invalid answers for %s", inst.ID)).
			WithDetails(map[string]interface{}{
				"missing":      missing,
				"out_of_range": outOfRange,
				"unknown":      extra,
			})
	}

	band := inst.bandFor(total)
	return &Result{
		InstrumentID:   inst.ID,
		Total:          total,
		MaxScore:       inst.MaxScore(),
		Severity:       band.Label,
		Interpretation: band.Interpretation,
		Answers:        answers,
	}, nil
}

// bandFor picks the highest band whose minScore does not exceed the total.
func (inst *Instrument) bandFor(total int) SeverityBand {
	band := inst.Bands[0]
	for _, b := range inst.Bands {
		if total >= b.MinScore {
			band = b
		}
	}
	return band
}

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
