package referral

import (
	"sort"
	"strings"

	"psyfind/internal/dsm"
)

// Matcher ranks the roster against differential candidates.
type Matcher struct {
	roster []Psychiatrist
}

func NewMatcher(roster []Psychiatrist) *Matcher {
	return &Matcher{roster: roster}
}

// Match scores every roster entry and returns the top five. Specialty
// alignment with the leading candidate weighs 3, language preference 2,
// location preference 1. With no candidates the first three generalists
// are returned unscored.
func (m *Matcher) Match(candidates []dsm.Candidate, locationPref, languagePref string) []Psychiatrist {
	if len(candidates) == 0 {
		top := m.roster
		if len(top) > 3 {
			top = top[:3]
		}
		return clone(top)
	}

	topDisorder := strings.ToLower(candidates[0].Disorder)

	scored := make([]Psychiatrist, 0, len(m.roster))
	for _, p := range m.roster {
		score := 0
		sub := strings.ToLower(p.Subspecialty)

		switch {
		case matchesMood(topDisorder, sub):
			score += 3
		case strings.Contains(topDisorder, "trauma") && strings.Contains(sub, "trauma"):
			score += 3
		case strings.Contains(topDisorder, "adhd") && strings.Contains(sub, "adhd"):
			score += 3
		case strings.Contains(topDisorder, "bipolar") && strings.Contains(sub, "bipolar"):
			score += 3
		}

		if languagePref != "" && hasLanguage(p.Languages, languagePref) {
			score += 2
		}
		if locationPref != "" && strings.Contains(strings.ToLower(p.Location), strings.ToLower(locationPref)) {
			score += 1
		}

		p.MatchScore = score
		scored = append(scored, p)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if len(scored) > 5 {
		scored = scored[:5]
	}
	return scored
}

// matchesMood checks whether a depression or anxiety keyword occurs in
// both the leading disorder and the subspecialty.
func matchesMood(disorder, subspecialty string) bool {
	for _, keyword := range []string{"depression", "anxiety"} {
		if strings.Contains(disorder, keyword) && strings.Contains(subspecialty, keyword) {
			return true
		}
	}
	return false
}

func hasLanguage(languages []string, pref string) bool {
	for _, lang := range languages {
		if lang == pref {
			return true
		}
	}
	return false
}

func clone(in []Psychiatrist) []Psychiatrist {
	out := make([]Psychiatrist, len(in))
	copy(out, in)
	return out
}
