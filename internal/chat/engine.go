package chat

import (
	"context"
	"regexp"
	"sync"
	"time"

	"psyfind/internal/llm"
	"psyfind/internal/platform/logger"
)

var sessionIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{10,100}$`)

// Engine drives the screening conversation. Turns within one session are
// serialized; different sessions proceed concurrently.
type Engine struct {
	store SessionStore
	gen   llm.Client
	log   *logger.Logger

	messageCap    int
	contextWindow int
	sessionTTL    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(store SessionStore, gen llm.Client, log *logger.Logger, messageCap, contextWindow int) *Engine {
	return &Engine{
		store:         store,
		gen:           gen,
		log:           log,
		messageCap:    messageCap,
		contextWindow: contextWindow,
		sessionTTL:    time.Hour,
		locks:         make(map[string]*sync.Mutex),
	}
}

func (e *Engine) sessionLock(id string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[id]
	if !ok {
		l = &sync.Mutex{}
		e.locks[id] = l
	}
	return l
}

// Converse runs one conversation turn. It never returns an error to the
// caller: validation and infrastructure failures degrade to a reply with
// an error or fallback stage.
func (e *Engine) Converse(ctx context.Context, sessionID, userMessage, lang string) Reply {
	if !sessionIDRe.MatchString(sessionID) {
		e.log.Warn("rejected malformed session id", "session_id", sessionID)
		return Reply{
			Message:                  "Invalid session. Please refresh the page.",
			AssessmentRecommendation: "none",
			ConversationStage:        StageError,
		}
	}

	lock := e.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		e.log.Error("session lookup failed", "session_id", sessionID, "error", err)
		return fallbackReply(lang, nil)
	}
	if session == nil {
		session = &Session{
			ID:       sessionID,
			Language: lang,
			Stage:    StageInitial,
		}
		if err := e.store.Create(ctx, session); err != nil {
			e.log.Error("session create failed", "session_id", sessionID, "error", err)
			return fallbackReply(lang, nil)
		}
		e.log.Info("created session", "session_id", sessionID, "language", lang)
	}

	count := session.MessageCount + 1
	if count > e.messageCap {
		e.log.Warn("session exceeded message limit", "session_id", sessionID)
		return Reply{
			Message:                  "Session limit reached. Please start a new conversation.",
			AssessmentRecommendation: "none",
			ConversationStage:        StageLimitReached,
		}
	}

	if userMessage == FreshStartConversation {
		if err := e.store.ClearMessages(ctx, sessionID); err != nil {
			e.log.Error("session reset failed", "session_id", sessionID, "error", err)
		}
		session.Messages = nil
		session.Stage = StageInitial
		e.log.Info("fresh start", "session_id", sessionID)
	}

	if err := e.store.AppendMessage(ctx, sessionID, Message{
		Role:      RoleUser,
		Content:   userMessage,
		CreatedAt: time.Now(),
	}); err != nil {
		e.log.Error("failed to persist user message", "session_id", sessionID, "error", err)
	}

	reply := e.respond(ctx, session, userMessage, lang)

	if err := e.store.AppendMessage(ctx, sessionID, Message{
		Role:    RoleAssistant,
		Content: reply.Message,
		Metadata: map[string]any{
			"assessment_recommendation": reply.AssessmentRecommendation,
			"conversation_stage":        string(reply.ConversationStage),
		},
		CreatedAt: time.Now(),
	}); err != nil {
		e.log.Error("failed to persist assistant message", "session_id", sessionID, "error", err)
	}
	if err := e.store.Update(ctx, sessionID, count+1, reply.ConversationStage); err != nil {
		e.log.Error("failed to update session", "session_id", sessionID, "error", err)
	}

	return reply
}

func (e *Engine) respond(ctx context.Context, session *Session, userMessage, lang string) Reply {
	if e.gen == nil {
		return fallbackReply(lang, session.Messages)
	}

	history := session.Messages
	if len(history) > e.contextWindow {
		history = history[len(history)-e.contextWindow:]
	}
	prompt := buildChatPrompt(history, userMessage, lang, session.Stage)

	raw, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Error("chat generation failed", "session_id", session.ID, "error", err)
		return fallbackReply(lang, session.Messages)
	}
	return parseReply(raw, lang)
}

// CleanupExpired removes sessions idle longer than the TTL and prunes their
// lock entries. A lock that is still held belongs to an in-flight turn and
// is left for a later sweep.
func (e *Engine) CleanupExpired(ctx context.Context) {
	removed, err := e.store.DeleteExpired(ctx, e.sessionTTL)
	if err != nil {
		e.log.Error("session cleanup failed", "error", err)
		return
	}
	if len(removed) == 0 {
		return
	}

	e.mu.Lock()
	for _, id := range removed {
		if l, ok := e.locks[id]; ok && l.TryLock() {
			l.Unlock()
			delete(e.locks, id)
		}
	}
	e.mu.Unlock()

	e.log.Info("expired sessions removed", "count", len(removed))
}
