package safety

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedactNamedCompoundWithDosage(t *testing.T) {
	report := "Clinical impression follows. Consider starting sertraline 50mg daily. Follow up in two weeks."

	redacted := Redact(report, "en")

	assert.NotContains(t, redacted, "sertraline")
	assert.Contains(t, redacted, RedactionEN)
	assert.Contains(t, redacted, "Clinical impression follows")
	assert.Contains(t, redacted, "Follow up in two weeks")
}

func TestRedactDirectiveClassPhrasing(t *testing.T) {
	report := "We recommend an antidepressant to address the symptoms. Therapy is also advised."

	redacted := Redact(report, "en")

	assert.NotContains(t, redacted, "antidepressant")
	assert.Contains(t, redacted, RedactionEN)
	assert.Contains(t, redacted, "Therapy is also advised")
}

func TestRedactPreservesCleanReport(t *testing.T) {
	report := "Cognitive behavioral therapy is recommended. Maintain a regular sleep schedule. Practice mindfulness daily."

	redacted := Redact(report, "en")

	assert.NotContains(t, redacted, RedactionEN)
	assert.Contains(t, redacted, "Cognitive behavioral therapy is recommended")
	assert.Contains(t, redacted, "Practice mindfulness daily")
}

func TestRedactOutputHasNoResidualMatches(t *testing.T) {
	cases := map[string][]string{
		"en": {
			"Consider starting sertraline 50mg daily.",
			"We suggest a benzodiazepine for short-term use. Begin fluoxetine as well.",
			"Pharmacological intervention is warranted. Increase the dose of medication in the morning.",
			"Practice mindfulness daily. Start sertraline 50mg.",
		},
		"zh": {
			"建議使用藥物治療。",
			"臨床摘要如下\n建議使用抗憂鬱劑藥物",
			"每天服用藥物的劑量需要調整",
			"請保持規律作息。處方舍曲林五十毫克。",
		},
	}

	for lang, reports := range cases {
		for _, report := range reports {
			redacted := Redact(report, lang)
			assert.False(t, ContainsMedicationPattern(redacted, lang), "residual %s match in %q", lang, redacted)
		}
	}
}

func TestDisclaimersMatchNoPattern(t *testing.T) {
	assert.False(t, ContainsMedicationPattern(RedactionEN, "en"))
	assert.False(t, ContainsMedicationPattern(RedactionZH, "zh"))
}

func TestRedactCollapsesTrailingRun(t *testing.T) {
	report := "Clinical summary first. Start sertraline 50mg daily. Begin fluoxetine as needed."

	redacted := Redact(report, "en")

	assert.Equal(t, 1, strings.Count(redacted, RedactionEN), "trailing run should collapse: %q", redacted)
	assert.True(t, strings.HasSuffix(redacted, RedactionEN))
	assert.Contains(t, redacted, "Clinical summary first")
}

func TestRedactCollapsesConsecutiveRedactions(t *testing.T) {
	report := "Start sertraline 50mg. Consider adding a benzodiazepine medication. Initiate an SSRI medication. Continue therapy sessions."

	redacted := Redact(report, "en")

	count := strings.Count(redacted, RedactionEN)
	assert.Equal(t, 1, count, "run of redactions should collapse: %q", redacted)
	assert.Contains(t, redacted, "Continue therapy sessions")
}

func TestRedactIdempotent(t *testing.T) {
	report := "Clinical summary. Consider starting sertraline 50mg daily. Follow up soon."

	once := Redact(report, "en")
	twice := Redact(once, "en")
	assert.Equal(t, once, twice)
}

func TestRedactChinese(t *testing.T) {
	report := "臨床印象如下\n建議使用抗憂鬱劑藥物\n請保持規律作息"

	redacted := Redact(report, "zh")

	assert.NotContains(t, redacted, "抗憂鬱劑")
	assert.Contains(t, redacted, RedactionZH)
	assert.Contains(t, redacted, "請保持規律作息")
}

func TestRedactChineseIdempotent(t *testing.T) {
	report := "評估結果如下。建議使用藥物治療。請定期回診。"

	once := Redact(report, "zh")
	require.Contains(t, once, RedactionZH)

	twice := Redact(once, "zh")
	assert.Equal(t, once, twice)
}

func TestRedactSplitsParagraphsAndSentences(t *testing.T) {
	report := "Section one is clean.\nConsider prescribing medication for sleep. Keep a sleep diary."

	redacted := Redact(report, "en")

	assert.Contains(t, redacted, "Section one is clean")
	assert.Contains(t, redacted, RedactionEN)
	assert.Contains(t, redacted, "Keep a sleep diary")
}
