package dsm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfind/internal/assessment"
)

func scoredResult(t *testing.T, inst *assessment.Instrument, answers map[string]int) *assessment.Result {
	t.Helper()
	result, err := assessment.Score(inst, answers)
	require.NoError(t, err)
	return result
}

func flatAnswers(inst *assessment.Instrument, total int) map[string]int {
	answers := make(map[string]int, len(inst.ItemKeys))
	remaining := total
	for _, key := range inst.ItemKeys {
		v := remaining
		if v > inst.ItemMax {
			v = inst.ItemMax
		}
		answers[key] = v
		remaining -= v
	}
	return answers
}

func TestMatchScoresPHQ9ModerateTriggersBothDepressiveRules(t *testing.T) {
	m := newTestMatcher(t)
	result := scoredResult(t, assessment.PHQ9, flatAnswers(assessment.PHQ9, 15))

	candidates := m.MatchScores(result, 3)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Major Depressive Disorder", candidates[0].Disorder)
	// 60 + (15-10)/17*100
	assert.InDelta(t, 89.41, candidates[0].Confidence, 0.01)

	assert.Equal(t, "Persistent Depressive Disorder", candidates[1].Disorder)
	// 40 + (15-5)/22*80
	assert.InDelta(t, 76.36, candidates[1].Confidence, 0.01)
}

func TestMatchScoresPHQ9ConfidenceCap(t *testing.T) {
	m := newTestMatcher(t)
	result := scoredResult(t, assessment.PHQ9, flatAnswers(assessment.PHQ9, 27))

	candidates := m.MatchScores(result, 3)
	require.NotEmpty(t, candidates)
	assert.Equal(t, 95.0, candidates[0].Confidence)
}

func TestMatchScoresPHQ9BelowThreshold(t *testing.T) {
	m := newTestMatcher(t)
	result := scoredResult(t, assessment.PHQ9, flatAnswers(assessment.PHQ9, 4))

	assert.Empty(t, m.MatchScores(result, 3))
}

func TestMatchScoresGAD7(t *testing.T) {
	m := newTestMatcher(t)
	result := scoredResult(t, assessment.GAD7, flatAnswers(assessment.GAD7, 12))

	candidates := m.MatchScores(result, 3)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Generalized Anxiety Disorder", candidates[0].Disorder)
	// 70 + (12-10)/11*100
	assert.InDelta(t, 88.18, candidates[0].Confidence, 0.01)

	assert.Equal(t, "Panic Disorder", candidates[1].Disorder)
	// 50 + (12-8)/13*85
	assert.InDelta(t, 76.15, candidates[1].Confidence, 0.01)
}

func TestMatchScoresGAD7PanicOnly(t *testing.T) {
	m := newTestMatcher(t)
	result := scoredResult(t, assessment.GAD7, flatAnswers(assessment.GAD7, 8))

	candidates := m.MatchScores(result, 3)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Panic Disorder", candidates[0].Disorder)
	assert.InDelta(t, 50.0, candidates[0].Confidence, 0.001)
}

func TestMatchScoresWhiteleyItemRules(t *testing.T) {
	m := newTestMatcher(t)

	// q1 drives the worry rule, q2/q6/q7 the somatic rule.
	answers := map[string]int{"q1": 4, "q2": 3, "q3": 0, "q4": 0, "q5": 0, "q6": 3, "q7": 3}
	result := scoredResult(t, assessment.Whiteley, answers)

	candidates := m.MatchScores(result, 3)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Generalized Anxiety Disorder", candidates[0].Disorder)
	assert.InDelta(t, 80.0, candidates[0].Confidence, 0.001)

	assert.Equal(t, "Somatic Symptom Disorder", candidates[1].Disorder)
	// (3+3+3)/12*100
	assert.InDelta(t, 75.0, candidates[1].Confidence, 0.001)
}

func TestMatchScoresWhiteleyIllnessAnxiety(t *testing.T) {
	m := newTestMatcher(t)

	answers := map[string]int{"q1": 2, "q2": 2, "q3": 2, "q4": 2, "q5": 2, "q6": 2, "q7": 2}
	result := scoredResult(t, assessment.Whiteley, answers)
	require.Equal(t, 14, result.Total)

	candidates := m.MatchScores(result, 3)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Illness Anxiety Disorder", candidates[0].Disorder)
	assert.Equal(t, "疾病焦慮症", candidates[0].DisorderZH)
	assert.InDelta(t, 50.0, candidates[0].Confidence, 0.001)
}

func TestMatchScoresUnknownInstrument(t *testing.T) {
	m := newTestMatcher(t)
	result := &assessment.Result{InstrumentID: "isi", Total: 20}

	assert.Nil(t, m.MatchScores(result, 3))
}
