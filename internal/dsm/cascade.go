package dsm

import (
	"psyfind/internal/assessment"
)

// scoreRule maps an instrument score pattern to one candidate disorder.
// Rules are evaluated independently; a single score can trigger several
// overlapping candidates. Confidence rises linearly through the triggering
// range and is capped per rule (never above 95 on this path).
type scoreRule struct {
	criterionKey string
	evidence     []string
	evidenceZH   []string
	criteria     map[string]string
	trigger      func(total int, answers map[string]int) bool
	confidence   func(total int, answers map[string]int) float64
}

func capAt(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}

var scoreCascade = map[string][]scoreRule{
	assessment.InstrumentPHQ9: {
		{
			criterionKey: "major_depressive_disorder",
			evidence:     []string{"depression", "low mood", "anhedonia", "sleep disturbance"},
			evidenceZH:   []string{"憂鬱", "情緒低落", "失樂症", "睡眠障礙"},
			criteria: map[string]string{
				"A": "Five or more symptoms present during 2-week period",
				"B": "Symptoms cause significant distress or impairment",
				"C": "Not attributable to substance use or medical condition",
			},
			trigger: func(total int, _ map[string]int) bool { return total >= 10 },
			confidence: func(total int, _ map[string]int) float64 {
				return capAt(float64(total-10)/17*100+60, 95)
			},
		},
		{
			criterionKey: "persistent_depressive_disorder",
			evidence:     []string{"chronic depression", "persistent low mood", "dysthymia"},
			evidenceZH:   []string{"慢性憂鬱", "持續低落情緒", "輕鬱症"},
			criteria: map[string]string{
				"A": "Depressed mood for most days for at least 2 years",
				"B": "Two or more additional symptoms present",
				"C": "Symptoms cause significant distress or impairment",
			},
			trigger: func(total int, _ map[string]int) bool { return total >= 5 },
			confidence: func(total int, _ map[string]int) float64 {
				return capAt(float64(total-5)/22*80+40, 85)
			},
		},
	},
	assessment.InstrumentGAD7: {
		{
			criterionKey: "generalized_anxiety_disorder",
			evidence:     []string{"anxiety", "worry", "restlessness", "muscle tension"},
			evidenceZH:   []string{"焦慮", "擔心", "不安", "肌肉緊張"},
			criteria: map[string]string{
				"A": "Excessive anxiety and worry for at least 6 months",
				"B": "Difficult to control the worry",
				"C": "Associated with physical symptoms",
			},
			trigger: func(total int, _ map[string]int) bool { return total >= 10 },
			confidence: func(total int, _ map[string]int) float64 {
				return capAt(float64(total-10)/11*100+70, 95)
			},
		},
		{
			criterionKey: "panic_disorder",
			evidence:     []string{"panic attacks", "fear", "physical symptoms", "avoidance"},
			evidenceZH:   []string{"恐慌發作", "恐懼", "身體症狀", "迴避"},
			criteria: map[string]string{
				"A": "Recurrent unexpected panic attacks",
				"B": "Persistent concern about additional attacks",
				"C": "Significant behavioral changes",
			},
			trigger: func(total int, _ map[string]int) bool { return total >= 8 },
			confidence: func(total int, _ map[string]int) float64 {
				return capAt(float64(total-8)/13*85+50, 90)
			},
		},
	},
	assessment.InstrumentWhiteley: {
		{
			criterionKey: "illness_anxiety_disorder",
			evidence:     []string{"health anxiety", "somatic concerns", "illness preoccupation"},
			evidenceZH:   []string{"健康焦慮", "身體症狀關注", "疾病專注"},
			criteria: map[string]string{
				"A": "Preoccupation with having or acquiring a serious illness",
				"B": "Somatic symptoms are not present or mild in intensity",
				"C": "High level of anxiety about health",
			},
			trigger: func(total int, _ map[string]int) bool { return total >= 14 },
			confidence: func(total int, _ map[string]int) float64 {
				return capAt(float64(total-14)/14*100+50, 95)
			},
		},
		{
			criterionKey: "somatic_symptom_disorder",
			evidence:     []string{"multiple symptoms", "body awareness", "aches and pains"},
			evidenceZH:   []string{"多種症狀", "身體覺察", "疼痛不適"},
			criteria: map[string]string{
				"A": "One or more somatic symptoms that are distressing",
				"B": "Excessive thoughts, feelings, or behaviors related to symptoms",
				"C": "Symptoms persist for more than 6 months",
			},
			trigger: func(_ int, answers map[string]int) bool {
				return answers["q2"] >= 3 || answers["q6"] >= 3 || answers["q7"] >= 3
			},
			confidence: func(_ int, answers map[string]int) float64 {
				sum := answers["q2"] + answers["q6"] + answers["q7"]
				return capAt(float64(sum)/12*100, 90)
			},
		},
		{
			criterionKey: "generalized_anxiety_disorder",
			evidence:     []string{"excessive worry", "health concerns", "anxiety"},
			evidenceZH:   []string{"過度擔憂", "健康關注", "焦慮"},
			criteria: map[string]string{
				"A": "Excessive anxiety and worry for at least 6 months",
				"B": "Difficult to control worry",
				"C": "Associated with physical symptoms",
			},
			trigger: func(_ int, answers map[string]int) bool { return answers["q1"] >= 3 },
			confidence: func(_ int, answers map[string]int) float64 {
				return capAt(float64(answers["q1"])/4*80, 85)
			},
		},
	},
}

// MatchScores runs the fixed rule cascade for a scored instrument. Each rule
// is evaluated on its own; overlapping candidates are expected (a high
// depression score triggers both the acute and the persistent-course
// disorder). Output is ranked and truncated to topN.
func (m *Matcher) MatchScores(result *assessment.Result, topN int) []Candidate {
	rules, ok := scoreCascade[result.InstrumentID]
	if !ok {
		return nil
	}

	var candidates []Candidate
	for _, rule := range rules {
		if !rule.trigger(result.Total, result.Answers) {
			continue
		}
		cand := Candidate{
			Confidence:        rule.confidence(result.Total, result.Answers),
			MatchedKeywords:   rule.evidence,
			MatchedKeywordsZH: rule.evidenceZH,
			Criteria:          rule.criteria,
		}
		if crit, found := m.catalog.Get(rule.criterionKey); found {
			cand.Disorder = crit.Name
			cand.DisorderZH = crit.NameZH
			cand.Code = crit.Code
		}
		candidates = append(candidates, cand)
	}

	return rank(candidates, topN)
}
