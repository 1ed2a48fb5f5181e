package screening

import (
	"time"

	"psyfind/internal/assessment"
	"psyfind/internal/chat"
	"psyfind/internal/dsm"
	"psyfind/internal/referral"
)

// AnalyzeRequest carries a completed questionnaire.
type AnalyzeRequest struct {
	SessionID      string         `json:"session_id" validate:"omitempty,min=10,max=100"`
	AssessmentType string         `json:"assessment_type" validate:"omitempty,oneof=phq9 gad7 whiteley"`
	Responses      map[string]int `json:"responses" validate:"required"`
	Age            int            `json:"age" validate:"omitempty,gte=0,lte=120"`
	Duration       string         `json:"duration"`
	Location       string         `json:"location"`
	Language       string         `json:"language"`
}

// TextAnalyzeRequest carries a free-text symptom description.
type TextAnalyzeRequest struct {
	SessionID string `json:"session_id" validate:"omitempty,min=10,max=100"`
	Symptoms  string `json:"symptoms" validate:"required"`
	Age       int    `json:"age" validate:"omitempty,gte=0,lte=120"`
	Duration  string `json:"duration"`
	Location  string `json:"location"`
	Language  string `json:"language"`
}

// Analysis is the instrument outcome combined with the differential.
type Analysis struct {
	assessment.Result
	Candidates      []dsm.Candidate `json:"analysis"`
	Recommendations []string        `json:"recommendations"`
}

// TextAnalysis is the differential for free-text input, with no
// instrument scores attached.
type TextAnalysis struct {
	Candidates      []dsm.Candidate `json:"analysis"`
	Recommendations []string        `json:"recommendations"`
}

type AnalyzeResponse struct {
	Analysis       Analysis                `json:"analysis"`
	Psychiatrists  []referral.Psychiatrist `json:"psychiatrists"`
	DetailedReport string                  `json:"detailed_report"`
	Timestamp      time.Time               `json:"timestamp"`
}

type TextAnalyzeResponse struct {
	Analysis       TextAnalysis            `json:"analysis"`
	Psychiatrists  []referral.Psychiatrist `json:"psychiatrists"`
	DetailedReport string                  `json:"detailed_report"`
	Timestamp      time.Time               `json:"timestamp"`
}

type ChatRequest struct {
	SessionID string `json:"session_id" validate:"required,min=10,max=100"`
	Message   string `json:"message" validate:"required"`
	Language  string `json:"language"`
}

type ChatResponse struct {
	chat.Reply
	Timestamp time.Time `json:"timestamp"`
}
