package chat

import "strings"

var fallbackKeywords = []struct {
	instrument string
	words      []string
}{
	{"phq9", []string{"sad", "depressed", "hopeless", "worthless", "tired", "sleep", "down"}},
	{"gad7", []string{"anxious", "worry", "panic", "nervous", "restless", "fear"}},
	{"whiteley", []string{"health", "sick", "disease", "symptoms", "body", "illness"}},
}

// fallbackReply produces a canned supportive turn when generation is
// unavailable. Assessment routing stays keyword-driven so screening can
// still progress: depression cues win over anxiety, anxiety over health
// worry.
func fallbackReply(lang string, messages []Message) Reply {
	message := "I'm here to support you. Please tell me more about how you're feeling so I can better help you."
	if lang == "zh" {
		message = "我在這裡支持您。請告訴我更多關於您的感受，這樣我可以更好地幫助您。"
	}

	reply := Reply{
		Message:                  message,
		AssessmentRecommendation: "none",
		ConversationStage:        StageSupport,
	}

	recent := messages
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	var parts []string
	for _, m := range recent {
		if m.Role == RoleUser {
			parts = append(parts, strings.ToLower(m.Content))
		}
	}
	combined := strings.Join(parts, " ")
	if combined == "" {
		return reply
	}

	for _, group := range fallbackKeywords {
		for _, word := range group.words {
			if strings.Contains(combined, word) {
				reply.AssessmentRecommendation = group.instrument
				reply.ConversationStage = StageAssessment
				return reply
			}
		}
	}
	return reply
}
