package referral

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfind/internal/dsm"
)

func TestMatchNoCandidatesReturnsGeneralists(t *testing.T) {
	m := NewMatcher(SampleRoster())

	matched := m.Match(nil, "", "")
	require.Len(t, matched, 3)
	assert.Equal(t, "Dr. Sarah Chen", matched[0].Name)
	assert.Zero(t, matched[0].MatchScore)
}

func TestMatchSpecialtyAlignment(t *testing.T) {
	m := NewMatcher(SampleRoster())

	candidates := []dsm.Candidate{{Disorder: "Major Depressive Disorder", Code: "296.2x", Confidence: 85}}
	matched := m.Match(candidates, "", "")
	require.NotEmpty(t, matched)

	// "Major Depressive Disorder" contains neither "depression" nor
	// "anxiety", so the mood rule does not fire on the name alone.
	assert.Zero(t, matched[0].MatchScore)
}

func TestMatchDepressionKeywordInDisorderName(t *testing.T) {
	m := NewMatcher(SampleRoster())

	candidates := []dsm.Candidate{{Disorder: "Persistent Depression Disorder", Confidence: 70}}
	matched := m.Match(candidates, "", "")
	require.NotEmpty(t, matched)

	assert.Equal(t, "Dr. Sarah Chen", matched[0].Name)
	assert.Equal(t, 3, matched[0].MatchScore)
}

func TestMatchLanguageAndLocationPreferences(t *testing.T) {
	m := NewMatcher(SampleRoster())

	candidates := []dsm.Candidate{{Disorder: "Generalized Anxiety Disorder", Confidence: 80}}
	matched := m.Match(candidates, "downtown", "Mandarin")
	require.NotEmpty(t, matched)

	top := matched[0]
	assert.Equal(t, "Dr. Sarah Chen", top.Name)
	// Specialty 3 + language 2 + location 1.
	assert.Equal(t, 6, top.MatchScore)
}

func TestMatchADHDSpecialty(t *testing.T) {
	m := NewMatcher(SampleRoster())

	candidates := []dsm.Candidate{{Disorder: "Attention-Deficit/Hyperactivity Disorder (ADHD)", Confidence: 65}}
	matched := m.Match(candidates, "", "")
	require.NotEmpty(t, matched)

	assert.Equal(t, "Dr. Michael Rodriguez", matched[0].Name)
	assert.Equal(t, 3, matched[0].MatchScore)
}

func TestMatchTruncatesToFive(t *testing.T) {
	roster := make([]Psychiatrist, 0, 8)
	for i := 0; i < 8; i++ {
		roster = append(roster, Psychiatrist{
			Name:         "Dr. Example",
			Specialty:    "General Psychiatry",
			Subspecialty: "Depression",
			Languages:    []string{"English"},
		})
	}
	m := NewMatcher(roster)

	candidates := []dsm.Candidate{{Disorder: "Depression", Confidence: 60}}
	assert.Len(t, m.Match(candidates, "", ""), 5)
}

func TestParseRosterCSV(t *testing.T) {
	csvData := `name,specialty,subspecialty,languages,location,phone,experience,approach
Dr. A,General Psychiatry,"Depression, Anxiety","English, Mandarin",Clinic One,(555) 111-2222,10 years,CBT
,General Psychiatry,Depression,English,Clinic Two,(555) 222-3333,5 years,CBT
Dr. C,,Depression,English,Clinic Three,(555) 333-4444,7 years,CBT
Dr. D,General Psychiatry,Depression,,Clinic Four,(555) 444-5555,9 years,CBT
Dr. E,Geriatric Psychiatry,Dementia,"English,Polish",Clinic Five,(555) 555-6666,12 years,Supportive
`
	roster, err := parseRoster(strings.NewReader(csvData))
	require.NoError(t, err)

	// Rows lacking a name, a specialty or languages are skipped.
	require.Len(t, roster, 2)
	assert.Equal(t, "Dr. A", roster[0].Name)
	assert.Equal(t, []string{"English", "Mandarin"}, roster[0].Languages)
	assert.Equal(t, "Dr. E", roster[1].Name)
	assert.Equal(t, []string{"English", "Polish"}, roster[1].Languages)
}
