package screening

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"psyfind/internal/apperr"
	"psyfind/internal/chat"
	"psyfind/internal/dsm"
	"psyfind/internal/platform/logger"
	"psyfind/internal/referral"
	"psyfind/internal/report"
)

const testSessionID = "screening-session-001"

type recordingGenerator struct {
	completion string
	prompts    []string
}

func (g *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.completion, nil
}

type memResults struct {
	saved []StoredResult
}

func (m *memResults) Save(ctx context.Context, r *StoredResult) error {
	m.saved = append(m.saved, *r)
	return nil
}

func (m *memResults) BySession(ctx context.Context, sessionID string) ([]StoredResult, error) {
	var out []StoredResult
	for _, r := range m.saved {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestService(t *testing.T, gen *recordingGenerator) (*Service, *memResults, chat.SessionStore) {
	t.Helper()

	catalog, err := dsm.LoadCatalog()
	require.NoError(t, err)
	matcher := dsm.NewMatcher(catalog)

	log := logger.NewNop()
	sessions := chat.NewMemoryStore()
	results := &memResults{}

	var composer *report.Composer
	var engine *chat.Engine
	if gen != nil {
		composer = report.NewComposer(gen, log)
		engine = chat.NewEngine(sessions, gen, log, 100, 6)
	} else {
		composer = report.NewComposer(nil, log)
		engine = chat.NewEngine(sessions, nil, log, 100, 6)
	}

	referrals := referral.NewMatcher(referral.SampleRoster())
	svc := NewService(matcher, composer, referrals, engine, sessions, results, report.NewPDFExporter(), log)
	return svc, results, sessions
}

func whiteleyAnswers(v int) map[string]int {
	answers := make(map[string]int, 7)
	for i := 1; i <= 7; i++ {
		answers[key(i)] = v
	}
	return answers
}

func key(i int) string {
	return "q" + string(rune('0'+i))
}

func TestAnalyzeWhiteleyPipeline(t *testing.T) {
	svc, results, _ := newTestService(t, nil)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		SessionID:      testSessionID,
		AssessmentType: "whiteley",
		Responses:      whiteleyAnswers(2),
		Age:            30,
		Duration:       "6 months",
		Language:       "English",
	})
	require.NoError(t, err)

	assert.Equal(t, 14, resp.Analysis.Total)
	assert.Equal(t, "moderate", resp.Analysis.Severity)
	require.NotEmpty(t, resp.Analysis.Candidates)
	assert.Equal(t, "Illness Anxiety Disorder", resp.Analysis.Candidates[0].Disorder)
	assert.NotEmpty(t, resp.Analysis.Recommendations)
	assert.NotEmpty(t, resp.Psychiatrists)
	assert.Contains(t, resp.DetailedReport, "Mental Health Assessment Report")
	assert.False(t, resp.Timestamp.IsZero())

	require.Len(t, results.saved, 1)
	stored := results.saved[0]
	assert.Equal(t, testSessionID, stored.SessionID)
	assert.Equal(t, "whiteley", stored.AssessmentType)
	assert.Equal(t, 14, stored.Score)
}

func TestAnalyzeStoresUnredactedReturnsRedacted(t *testing.T) {
	gen := &recordingGenerator{completion: "Clinical impression noted. Consider starting sertraline 50mg daily. Continue therapy."}
	svc, results, _ := newTestService(t, gen)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		SessionID:      testSessionID,
		AssessmentType: "phq9",
		Responses: map[string]int{
			"q1": 3, "q2": 3, "q3": 2, "q4": 2, "q5": 2, "q6": 2, "q7": 2, "q8": 1, "q9": 1,
		},
		Language: "English",
	})
	require.NoError(t, err)

	assert.NotContains(t, resp.DetailedReport, "sertraline")

	require.Len(t, results.saved, 1)
	assert.Contains(t, results.saved[0].ClinicalReport, "sertraline")
}

func TestAnalyzeIncompleteResponses(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		AssessmentType: "gad7",
		Responses:      map[string]int{"q1": 2, "q2": 2},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestAnalyzeDefaultsToWhiteley(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		Responses: whiteleyAnswers(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "whiteley", resp.Analysis.InstrumentID)
}

func TestAnalyzeIncludesChatHistoryInPrompt(t *testing.T) {
	gen := &recordingGenerator{completion: "Report body."}
	svc, _, sessions := newTestService(t, gen)

	require.NoError(t, sessions.Create(context.Background(), &chat.Session{
		ID:       testSessionID,
		Language: "en",
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: "I keep worrying about my heart"},
		},
	}))

	_, err := svc.Analyze(context.Background(), AnalyzeRequest{
		SessionID:      testSessionID,
		AssessmentType: "whiteley",
		Responses:      whiteleyAnswers(2),
	})
	require.NoError(t, err)

	require.NotEmpty(t, gen.prompts)
	prompt := gen.prompts[len(gen.prompts)-1]
	assert.Contains(t, prompt, "Patient Conversation History")
	assert.Contains(t, prompt, "I keep worrying about my heart")
}

func TestAnalyzeTextDifferential(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	resp, err := svc.AnalyzeText(context.Background(), TextAnalyzeRequest{
		Symptoms: "I feel hopeless and depressed, cannot sleep",
		Age:      28,
		Language: "English",
	})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Analysis.Candidates)
	assert.Equal(t, "Major Depressive Disorder", resp.Analysis.Candidates[0].Disorder)
	assert.Contains(t, resp.Analysis.Recommendations[0], "informational purposes only")
	assert.NotEmpty(t, resp.Psychiatrists)
}

func TestAnalyzeTextEmptySymptoms(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.AnalyzeText(context.Background(), TextAnalyzeRequest{Symptoms: "   "})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestChatTurn(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	resp := svc.Chat(context.Background(), ChatRequest{
		SessionID: testSessionID,
		Message:   "hello, I need someone to talk to",
		Language:  "en",
	})

	assert.NotEmpty(t, resp.Message)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestExportPDFNoResults(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.ExportPDF(context.Background(), testSessionID, "en")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestLangCode(t *testing.T) {
	assert.Equal(t, "zh", langCode("Traditional Chinese"))
	assert.Equal(t, "zh", langCode("zh"))
	assert.Equal(t, "en", langCode("English"))
	assert.Equal(t, "en", langCode(""))
}

func TestSymptomSummaryWithoutHistory(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	resp, err := svc.Analyze(context.Background(), AnalyzeRequest{
		AssessmentType: "gad7",
		Responses: map[string]int{
			"q1": 2, "q2": 2, "q3": 2, "q4": 2, "q5": 2, "q6": 1, "q7": 1,
		},
	})
	require.NoError(t, err)
	assert.False(t, strings.Contains(resp.DetailedReport, "Patient Conversation History"))
}
