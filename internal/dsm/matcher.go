package dsm

import (
	"sort"
	"strings"
)

// Candidate is a ranked, confidence-scored hypothesis about which pattern
// matches the observed evidence. Confidence is 0-100.
type Candidate struct {
	Disorder          string            `json:"disorder"`
	DisorderZH        string            `json:"disorder_zh,omitempty"`
	Code              string            `json:"code"`
	Confidence        float64           `json:"confidence"`
	MatchedKeywords   []string          `json:"matched_keywords"`
	MatchedKeywordsZH []string          `json:"matched_keywords_zh,omitempty"`
	Criteria          map[string]string `json:"criteria"`
}

// Matcher produces differential candidates from scored instruments or from
// free-text symptom descriptions, against the static criteria catalog.
type Matcher struct {
	catalog *Catalog
}

func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// MatchText scores free text against every catalog criterion by counting
// case-insensitive keyword hits from the language-appropriate set. Confidence
// is the matched share of that criterion's keywords, at most 100. Empty text
// yields an empty list.
func (m *Matcher) MatchText(text, lang string, topN int) []Candidate {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var candidates []Candidate
	for _, crit := range m.catalog.All() {
		keywords := crit.Keywords
		if lang == "zh" && len(crit.KeywordsZH) > 0 {
			keywords = crit.KeywordsZH
		}

		var matched []string
		for _, kw := range keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, kw)
			}
		}
		if len(matched) == 0 {
			continue
		}

		confidence := float64(len(matched)) / float64(len(keywords)) * 100
		if confidence > 100 {
			confidence = 100
		}

		cand := Candidate{
			Disorder:        crit.Name,
			DisorderZH:      crit.NameZH,
			Code:            crit.Code,
			Confidence:      confidence,
			MatchedKeywords: matched,
			Criteria:        crit.Criteria,
		}
		if lang == "zh" {
			cand.MatchedKeywordsZH = matched
		} else {
			n := len(matched)
			if n > len(crit.KeywordsZH) {
				n = len(crit.KeywordsZH)
			}
			cand.MatchedKeywordsZH = crit.KeywordsZH[:n]
		}
		candidates = append(candidates, cand)
	}

	return rank(candidates, topN)
}

// rank stable-sorts by confidence descending (ties keep catalog order) and
// truncates to topN.
func rank(candidates []Candidate, topN int) []Candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}
