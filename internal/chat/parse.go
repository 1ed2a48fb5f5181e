package chat

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Extraction patterns tried in order. Completions rarely contain bare
// JSON, so each pattern targets a common way models wrap it.
var jsonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`),
	regexp.MustCompile(`(?s)\{.*?\}\s*$`),
	regexp.MustCompile(`(?s)\{.*?\}\s*\n`),
	regexp.MustCompile(`(?s)\{.*\}`),
}

var (
	messageFieldRe = regexp.MustCompile(`"message":\s*"([^"]*)"`)
	jsonArtifactRe = regexp.MustCompile(`[{}"]`)
	messageLabelRe = regexp.MustCompile(`message:\s*`)
	trailingRecRe  = regexp.MustCompile(`(?s)assessment_recommendation:.*`)
)

// parseReply extracts the structured reply from a raw completion. It never
// fails: unparseable completions degrade to a plain supportive message.
func parseReply(raw, lang string) Reply {
	cleaned := strings.TrimSpace(raw)

	for _, pattern := range jsonPatterns {
		for _, match := range pattern.FindAllString(cleaned, -1) {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal([]byte(strings.TrimSpace(match)), &fields); err != nil {
				continue
			}
			if _, ok := fields["message"]; !ok {
				continue
			}
			var reply Reply
			if err := json.Unmarshal([]byte(strings.TrimSpace(match)), &reply); err != nil {
				continue
			}
			return withDefaults(reply)
		}
	}

	// No valid JSON anywhere. Salvage the message text.
	var message string
	if m := messageFieldRe.FindStringSubmatch(cleaned); m != nil {
		message = m[1]
	} else {
		message = jsonArtifactRe.ReplaceAllString(cleaned, "")
		message = messageLabelRe.ReplaceAllString(message, "")
		message = trailingRecRe.ReplaceAllString(message, "")
		message = strings.TrimSpace(message)

		if len(message) < 10 || strings.Contains(message, "assessment_recommendation") {
			if lang == "zh" {
				message = "我理解您的感受。請告訴我更多關於您的情況。"
			} else {
				message = "I understand how you're feeling. Please tell me more about your situation."
			}
		}
	}

	return withDefaults(Reply{Message: message})
}

func withDefaults(r Reply) Reply {
	if r.Message == "" {
		r.Message = "I understand. Let me help you with that."
	}
	if r.AssessmentRecommendation == "" {
		r.AssessmentRecommendation = "none"
	}
	if r.ConversationStage == "" {
		r.ConversationStage = StageSupport
	}
	return r
}
