package safety

import (
	"regexp"
	"strings"
)

// Canonical redaction sentences, one per language.
const (
	RedactionEN = "[Medication-related recommendations redacted - Please consult a qualified physician for medication advice]"
	RedactionZH = "[藥物相關建議已隱藏 - 請諮詢合格醫師獲得藥物治療建議]"
)

// Two parallel pattern families. They are language-specific and never merged:
// directive plus drug-class phrasing, named compounds, dosage phrasing, and
// generic pharmacological-treatment phrasing. Two-part patterns use a negated
// class instead of a wildcard so a match can never span into a bracketed
// disclaimer; the disclaimers must match no pattern of their family.
var enPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(recommend|suggest|consider|prescribe|start|begin|initiate|try)\b[^\[\]]*?\b(medication|medicine|drug|antidepressant|antianxiety|SSRI|SNRI|benzodiazepine|antipsychotic)s?\b`),
	regexp.MustCompile(`(?i)\b(sertraline|fluoxetine|escitalopram|paroxetine|citalopram|venlafaxine|duloxetine|bupropion|mirtazapine|trazodone|lorazepam|alprazolam|clonazepam|diazepam|buspirone|quetiapine|aripiprazole|risperidone|olanzapine|lamotrigine|valproate|carbamazepine)\b`),
	regexp.MustCompile(`(?i)\b(mg|milligrams|dose|dosage|daily|twice|morning|evening)\b[^\[\]]*?\b(medication|medicine|drug)s?\b`),
	regexp.MustCompile(`(?i)\bmedicinal\s+treatment\b`),
	regexp.MustCompile(`(?i)\bpharmacological\s+(intervention|treatment)\b`),
}

var zhPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(建議|推薦|考慮|處方|開始|嘗試)[^-\[\]]*?(藥物|藥品|處方|抗憂鬱劑|抗焦慮劑|苯二氮平類|抗精神病藥)`),
	regexp.MustCompile(`(舍曲林|氟西汀|艾司西酞普蘭|帕羅西汀|西酞普蘭|文拉法辛|度洛西汀|安非他酮|米氮平|勞拉西泮|阿普唑侖|氯硝西泮|地西泮|丁螺環酮)`),
	regexp.MustCompile(`(毫克|劑量|每日|每天|早上|晚上)[^-\[\]]*?(藥物|藥品)`),
	regexp.MustCompile(`(^|[^得])藥物治療`),
	regexp.MustCompile(`藥理學[^-\[\]]*?(干預|治療)`),
}

// Run-collapse expressions fold consecutive redaction sentences into one.
var (
	enCollapse = regexp.MustCompile(`(\[Medication-related recommendations redacted[^\]]+\]\.\s*){2,}`)
	zhCollapse = regexp.MustCompile(`(\[藥物相關建議已隱藏[^\]]+\]\.\s*){2,}`)
)

// Redact replaces medication-specific sentence units in a finished report
// with the canonical disclaimer for the language. Non-medication content and
// unit order are preserved exactly; the operation is idempotent.
func Redact(report, lang string) string {
	patterns := enPatterns
	redaction := RedactionEN
	collapse := enCollapse
	if lang == "zh" {
		patterns = zhPatterns
		redaction = RedactionZH
		collapse = zhCollapse
	}

	var units []string
	for _, paragraph := range strings.Split(report, "\n") {
		for _, unit := range strings.Split(paragraph, ".") {
			unit = strings.TrimSpace(unit)
			if unit == "" {
				continue
			}
			// An already-placed disclaimer passes through untouched, which
			// keeps a second pass a no-op.
			if unit == redaction {
				units = append(units, unit)
				continue
			}
			if matchesAny(unit, patterns) {
				units = append(units, redaction)
			} else {
				units = append(units, unit)
			}
		}
	}

	// The separator is appended before collapsing so a run at the end of the
	// report folds too, then stripped again.
	result := strings.Join(units, ". ") + ". "
	result = collapse.ReplaceAllString(result, redaction+". ")
	return strings.TrimSuffix(result, ". ")
}

// ContainsMedicationPattern reports whether any pattern of the language
// family still matches. Exposed for the redaction invariant checks.
func ContainsMedicationPattern(text, lang string) bool {
	patterns := enPatterns
	if lang == "zh" {
		patterns = zhPatterns
	}
	return matchesAny(text, patterns)
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
