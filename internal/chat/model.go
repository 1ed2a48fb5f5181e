package chat

import "time"

// Stage tracks where a conversation is in the screening flow.
type Stage string

const (
	StageInitial      Stage = "initial"
	StageAssessment   Stage = "assessment"
	StageSupport      Stage = "support"
	StageReferral     Stage = "referral"
	StageLimitReached Stage = "limit_reached"
	StageError        Stage = "error"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Control sentinels sent by the client instead of user text.
const (
	StartConversation      = "START_CONVERSATION"
	FreshStartConversation = "FRESH_START_CONVERSATION"
)

type Message struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Session struct {
	ID           string    `json:"id"`
	Language     string    `json:"language"`
	Stage        Stage     `json:"conversation_stage"`
	MessageCount int       `json:"message_count"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Reply is the structured assistant turn returned to the client.
type Reply struct {
	Message                  string   `json:"message"`
	AssessmentRecommendation string   `json:"assessment_recommendation"`
	ConversationStage        Stage    `json:"conversation_stage"`
	FollowUpQuestions        []string `json:"follow_up_questions,omitempty"`
	Psychoeducation          string   `json:"psychoeducation,omitempty"`
}
