package report

import (
	"context"
	"fmt"
	"strings"

	"psyfind/internal/dsm"
	"psyfind/internal/llm"
	"psyfind/internal/platform/logger"
	"psyfind/internal/safety"
)

// PatientContext carries the non-questionnaire facts embedded in the
// analysis prompt.
type PatientContext struct {
	Symptoms string
	Age      int
	Duration string
}

// Report pairs the two variants of a composed clinical report. Both are
// derived together; only the redacted form may be shown to end users.
type Report struct {
	Unredacted string
	Redacted   string
}

// Composer assembles clinical analysis reports. Generation is optional: with
// no client, or on any generation failure, the deterministic template is
// used instead. Compose never fails.
type Composer struct {
	gen llm.Client
	log *logger.Logger
}

func NewComposer(gen llm.Client, log *logger.Logger) *Composer {
	return &Composer{gen: gen, log: log}
}

// Compose builds the prompt, delegates to the generation capability and
// always returns both report variants.
func (c *Composer) Compose(ctx context.Context, patient PatientContext, candidates []dsm.Candidate, lang string) Report {
	unredacted := c.generate(ctx, patient, candidates, lang)
	return Report{
		Unredacted: unredacted,
		Redacted:   safety.Redact(unredacted, lang),
	}
}

func (c *Composer) generate(ctx context.Context, patient PatientContext, candidates []dsm.Candidate, lang string) string {
	if c.gen == nil {
		return fallbackReport(candidates, lang)
	}

	prompt := buildAnalysisPrompt(patient, candidates, lang)
	text, err := c.gen.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		c.log.Warn("report generation failed, using template", "error", err)
		return fallbackReport(candidates, lang)
	}
	return text
}

func buildAnalysisPrompt(patient PatientContext, candidates []dsm.Candidate, lang string) string {
	var b strings.Builder

	langInstruction := ""
	if lang == "zh" {
		langInstruction = "Please respond in Traditional Chinese (繁體中文)."
	}

	fmt.Fprintf(&b, "You are a clinical psychiatrist providing a comprehensive mental health assessment report. %s\n\n", langInstruction)
	fmt.Fprintf(&b, "PATIENT INFORMATION:\n- Age: %d years old\n- Symptom Duration: %s\n- Reported Symptoms: %s\n\n", patient.Age, patient.Duration, patient.Symptoms)

	if len(candidates) > 0 {
		b.WriteString("DSM-5-TR Analysis Results:\n")
		top := candidates
		if len(top) > 3 {
			top = top[:3]
		}
		for _, cand := range top {
			fmt.Fprintf(&b, "- %s (Code: %s) - %.1f%% match\n", cand.Disorder, cand.Code, cand.Confidence)
			fmt.Fprintf(&b, "  Matched keywords: %s\n", strings.Join(cand.MatchedKeywords, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString(`Please provide a detailed psychiatric analysis report including:

1. **Clinical Impression**: Professional assessment of the presented symptoms
2. **Differential Diagnosis**: Possible conditions to consider based on DSM-5-TR criteria
3. **Risk Assessment**: Evaluate any immediate safety concerns
4. **Recommended Interventions**:
   - Immediate steps to take
   - Therapeutic approaches to consider
   - Lifestyle modifications
5. **Follow-up Care**: Timeline and type of professional care needed
6. **Psychoeducation**: Brief explanation for patient understanding

IMPORTANT GUIDELINES:
- Base analysis on evidence-based psychiatric principles
- Reference DSM-5-TR criteria when appropriate
- Emphasize the need for professional evaluation
- Be empathetic and non-judgmental
- Include safety considerations
- Avoid definitive diagnoses - use terms like "suggests," "consistent with," "warrants evaluation for"

Format the response as a professional clinical report that could be shared with healthcare providers.`)

	return b.String()
}
