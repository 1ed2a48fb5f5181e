package dsm

import "strings"

// Recommendations derives clinical guidance from ranked candidates. The
// leading candidate determines which condition-specific advice is added.
func Recommendations(candidates []Candidate) []string {
	recommendations := []string{
		"This analysis is for informational purposes only and does not constitute a medical diagnosis.",
		"Please consult with a qualified mental health professional for proper evaluation.",
		"Consider keeping a mood/symptom diary to track patterns.",
	}

	if len(candidates) == 0 {
		return recommendations
	}

	top := strings.ToLower(candidates[0].Disorder)
	switch {
	case strings.Contains(top, "depression"):
		recommendations = append(recommendations,
			"Consider screening for suicidal ideation if depressive symptoms are present.",
			"Evaluate for medical conditions that may contribute to mood symptoms.")
	case strings.Contains(top, "anxiety"):
		recommendations = append(recommendations,
			"Consider ruling out medical causes of anxiety (thyroid, cardiac issues).",
			"Assess for substance use that may contribute to anxiety symptoms.")
	case strings.Contains(top, "trauma"), strings.Contains(top, "ptsd"):
		recommendations = append(recommendations,
			"Trauma-informed care approach is essential.",
			"Consider specialized trauma therapy (EMDR, CPT, PE).")
	}
	return recommendations
}
