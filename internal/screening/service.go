package screening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"psyfind/internal/apperr"
	"psyfind/internal/assessment"
	"psyfind/internal/chat"
	"psyfind/internal/dsm"
	"psyfind/internal/platform/logger"
	"psyfind/internal/referral"
	"psyfind/internal/report"
	"psyfind/internal/safety"
)

// Service orchestrates the screening pipeline: score, match, compose,
// redact, refer, persist.
type Service struct {
	matcher   *dsm.Matcher
	composer  *report.Composer
	referrals *referral.Matcher
	engine    *chat.Engine
	sessions  chat.SessionStore
	results   ResultRepository
	exporter  *report.PDFExporter
	log       *logger.Logger
}

func NewService(
	matcher *dsm.Matcher,
	composer *report.Composer,
	referrals *referral.Matcher,
	engine *chat.Engine,
	sessions chat.SessionStore,
	results ResultRepository,
	exporter *report.PDFExporter,
	log *logger.Logger,
) *Service {
	return &Service{
		matcher:   matcher,
		composer:  composer,
		referrals: referrals,
		engine:    engine,
		sessions:  sessions,
		results:   results,
		exporter:  exporter,
		log:       log,
	}
}

func langCode(language string) string {
	if language == "Traditional Chinese" || language == "zh" {
		return "zh"
	}
	return "en"
}

// Analyze scores a completed questionnaire and produces the full
// screening outcome. The stored report keeps medication text; the
// returned report is redacted.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	instrumentID := req.AssessmentType
	if instrumentID == "" {
		instrumentID = assessment.InstrumentWhiteley
	}
	inst, ok := assessment.Lookup(instrumentID)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("unknown assessment type %q", instrumentID))
	}

	result, err := assessment.Score(inst, req.Responses)
	if err != nil {
		return nil, err
	}

	candidates := s.matcher.MatchScores(result, 3)
	lang := langCode(req.Language)

	summary := s.symptomSummary(ctx, req.SessionID, inst, result)
	age := req.Age
	if age == 0 {
		age = 25
	}
	rep := s.composer.Compose(ctx, report.PatientContext{
		Symptoms: summary,
		Age:      age,
		Duration: req.Duration,
	}, candidates, lang)

	psychiatrists := s.referrals.Match(candidates, req.Location, req.Language)

	if req.SessionID != "" && s.results != nil {
		stored := &StoredResult{
			SessionID:      req.SessionID,
			AssessmentType: inst.ID,
			Responses:      result.Answers,
			Score:          result.Total,
			Severity:       result.Severity,
			Interpretation: result.Interpretation,
			Candidates:     candidates,
			ClinicalReport: rep.Unredacted,
		}
		if err := s.results.Save(ctx, stored); err != nil {
			s.log.Error("failed to persist assessment result", "session_id", req.SessionID, "error", err)
		} else {
			s.log.Info("assessment result stored",
				"session_id", req.SessionID,
				"assessment_type", inst.ID,
				"report_length", len(rep.Unredacted),
				"redacted_length", len(rep.Redacted))
		}
	}

	return &AnalyzeResponse{
		Analysis: Analysis{
			Result:          *result,
			Candidates:      candidates,
			Recommendations: assessment.Recommendations(result),
		},
		Psychiatrists:  psychiatrists,
		DetailedReport: rep.Redacted,
		Timestamp:      time.Now(),
	}, nil
}

// AnalyzeText runs the keyword differential over a free-text symptom
// description.
func (s *Service) AnalyzeText(ctx context.Context, req TextAnalyzeRequest) (*TextAnalyzeResponse, error) {
	if strings.TrimSpace(req.Symptoms) == "" {
		return nil, apperr.Validation("symptoms text must not be empty")
	}

	lang := langCode(req.Language)
	candidates := s.matcher.MatchText(req.Symptoms, lang, 5)

	age := req.Age
	if age == 0 {
		age = 25
	}
	rep := s.composer.Compose(ctx, report.PatientContext{
		Symptoms: req.Symptoms,
		Age:      age,
		Duration: req.Duration,
	}, candidates, lang)

	psychiatrists := s.referrals.Match(candidates, req.Location, req.Language)

	return &TextAnalyzeResponse{
		Analysis: TextAnalysis{
			Candidates:      candidates,
			Recommendations: dsm.Recommendations(candidates),
		},
		Psychiatrists:  psychiatrists,
		DetailedReport: rep.Redacted,
		Timestamp:      time.Now(),
	}, nil
}

// Chat runs one conversation turn.
func (s *Service) Chat(ctx context.Context, req ChatRequest) *ChatResponse {
	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	reply := s.engine.Converse(ctx, req.SessionID, req.Message, lang)
	return &ChatResponse{Reply: reply, Timestamp: time.Now()}
}

// ExportPDF renders a session's stored assessment outcomes as a PDF.
// Reports are redacted on the way out; the unredacted text never leaves
// the database.
func (s *Service) ExportPDF(ctx context.Context, sessionID, language string) ([]byte, error) {
	if s.results == nil {
		return nil, apperr.Capability("assessment storage is not configured")
	}
	stored, err := s.results.BySession(ctx, sessionID)
	if err != nil {
		return nil, apperr.Internal("failed to load assessment results").WithCause(err)
	}
	if len(stored) == 0 {
		return nil, apperr.NotFound(fmt.Sprintf("assessment results for session %s", sessionID))
	}

	lang := langCode(language)
	latest := stored[len(stored)-1]

	doc := report.PDFDocument{
		SessionID:   sessionID,
		Language:    lang,
		GeneratedAt: time.Now(),
		Candidates:  latest.Candidates,
		ReportText:  safety.Redact(latest.ClinicalReport, lang),
	}
	for _, res := range stored {
		doc.Results = append(doc.Results, assessment.Result{
			InstrumentID:   res.AssessmentType,
			Total:          res.Score,
			MaxScore:       maxScoreFor(res.AssessmentType),
			Severity:       res.Severity,
			Interpretation: res.Interpretation,
		})
	}
	return s.exporter.Export(doc)
}

func maxScoreFor(instrumentID string) int {
	if inst, ok := assessment.Lookup(instrumentID); ok {
		return inst.MaxScore()
	}
	return 0
}

// symptomSummary folds the instrument outcome and recent conversation
// into the context handed to report composition.
func (s *Service) symptomSummary(ctx context.Context, sessionID string, inst *assessment.Instrument, result *assessment.Result) string {
	summary := fmt.Sprintf("%s completed. Total score: %d/%d. Severity: %s. %s",
		inst.Name, result.Total, result.MaxScore, result.Severity, result.Interpretation)

	if sessionID == "" || s.sessions == nil {
		return summary
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.log.Warn("failed to load chat history for report", "session_id", sessionID, "error", err)
		return summary
	}
	if session == nil || len(session.Messages) == 0 {
		return summary
	}

	messages := session.Messages
	if len(messages) > 10 {
		messages = messages[len(messages)-10:]
	}
	var lines []string
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(m.Role[:1])+m.Role[1:], m.Content))
	}
	s.log.Info("including chat history in clinical report", "session_id", sessionID, "messages", len(lines))

	return summary + "\n\nPatient Conversation History:\n" + strings.Join(lines, "\n") +
		"\n\nPlease incorporate insights from both the assessment scores and the conversation history to provide a comprehensive clinical analysis."
}
