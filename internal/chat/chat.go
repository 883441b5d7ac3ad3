// Package chat manages a conversation between the user and the historian
// model: history, the single in-flight request, era auto-prompts and the
// degraded mode used when no model credential is configured.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/llm"
)

// Texts the historian speaks without consulting the model.
const (
	SystemInstruction = "You are a world-class historian. Answer the user's questions about world history with clarity, accuracy, and engaging details. Format your answers with markdown for readability."
	Greeting          = "Greetings! I am Chronos, your AI historian. How may I illuminate the annals of the past for you today?"
	ConfigErrorText   = "Error: This application has not been configured correctly. Please contact the administrator to set up the API key."
	FallbackText      = "I seem to have lost my train of thought. Could you please ask that again?"

	eraPromptFormat = "Tell me more about the \"%s\" era."
)

// LLM purpose labels recorded with every request.
const (
	PurposeChat      = "chat"
	PurposeEraPrompt = "era-prompt"
)

var (
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrNoDialogue   = errors.New("chat: no dialogue available")
	ErrBusy         = errors.New("chat: a request is already pending")
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry of the visible conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session is a single conversation. Safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	opener     llm.Opener
	dialogue   llm.Dialogue
	history    []Message
	pending    bool
	latchedEra string
	generation uint64
	logger     *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a session. A nil opener means no credential is configured and
// the session will run degraded.
func New(opener llm.Opener, opts ...Option) *Session {
	s := &Session{opener: opener, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Initialize opens the dialogue and seeds the greeting. Without an opener,
// or when opening fails, the history holds the configuration error instead
// and the session stays degraded. Initialize never returns an error; a
// failure to open is logged.
func (s *Session) Initialize(ctx context.Context) {
	var (
		d   llm.Dialogue
		err error
	)
	if s.opener != nil {
		d, err = s.opener.OpenDialogue(ctx, SystemInstruction)
		if err != nil {
			s.logger.Error("open dialogue", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.pending = false
	s.latchedEra = ""
	if d == nil {
		s.dialogue = nil
		s.history = []Message{{Role: RoleModel, Content: ConfigErrorText}}
		return
	}
	s.dialogue = d
	s.history = []Message{{Role: RoleModel, Content: Greeting}}
}

// Exchange is one accepted user message awaiting the model's reply.
type Exchange struct {
	Message    string
	Purpose    string
	dialogue   llm.Dialogue
	generation uint64
}

// Reply is the outcome of an Exchange.
type Reply struct {
	Text       string
	Err        error
	generation uint64
}

// Begin accepts a user message: it appends it to the history, marks the
// session pending and returns the exchange to run. The caller must pass the
// exchange's Reply to Complete.
func (s *Session) Begin(text string) (*Exchange, error) {
	return s.begin(text, PurposeChat)
}

func (s *Session) begin(text, purpose string) (*Exchange, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dialogue == nil {
		return nil, ErrNoDialogue
	}
	if s.pending {
		return nil, ErrBusy
	}

	s.history = append(s.history, Message{Role: RoleUser, Content: text})
	s.pending = true
	return &Exchange{
		Message:    text,
		Purpose:    purpose,
		dialogue:   s.dialogue,
		generation: s.generation,
	}, nil
}

// Run performs the model call. It touches no session state and may run on
// any goroutine.
func (e *Exchange) Run(ctx context.Context) Reply {
	resp, err := e.dialogue.Send(llm.WithPurpose(ctx, e.Purpose), e.Message)
	if err != nil {
		return Reply{Err: err, generation: e.generation}
	}
	return Reply{Text: resp.Text, generation: e.generation}
}

// Complete records the reply and clears the pending flag. A failed reply
// becomes the fallback message. Replies from before the last Close or
// Initialize are discarded and Complete reports false.
func (s *Session) Complete(r Reply) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.generation != s.generation {
		return false
	}

	content := r.Text
	if r.Err != nil {
		s.logger.Warn("model call failed", "error", r.Err)
		content = FallbackText
	}
	s.history = append(s.history, Message{Role: RoleModel, Content: content})
	s.pending = false
	return true
}

// Send runs a whole exchange synchronously.
func (s *Session) Send(ctx context.Context, text string) error {
	ex, err := s.Begin(text)
	if err != nil {
		return err
	}
	s.Complete(ex.Run(ctx))
	return nil
}

// AutoPrompt returns the era introduction prompt when a dialogue exists,
// era is set and that era has not been prompted for yet. The era is latched
// so the prompt is produced once per selection. A nil era clears the latch.
func (s *Session) AutoPrompt(era *catalog.Era, lang i18n.Language) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if era == nil {
		s.latchedEra = ""
		return "", false
	}
	if s.dialogue == nil || s.latchedEra == era.ID {
		return "", false
	}
	s.latchedEra = era.ID
	return EraPrompt(era, lang), true
}

// BeginAutoPrompt combines AutoPrompt and Begin. It returns nil when no
// prompt is due.
func (s *Session) BeginAutoPrompt(era *catalog.Era, lang i18n.Language) (*Exchange, error) {
	prompt, ok := s.AutoPrompt(era, lang)
	if !ok {
		return nil, nil
	}
	return s.begin(prompt, PurposeEraPrompt)
}

// EraPrompt formats the introduction prompt for era in lang.
func EraPrompt(era *catalog.Era, lang i18n.Language) string {
	return fmt.Sprintf(eraPromptFormat, era.Title.Get(lang))
}

// Close abandons any in-flight exchange. Late replies are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.pending = false
}

// History returns a copy of the conversation.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.history...)
}

// Pending reports whether a model call is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Ready reports whether the session can accept a message now.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogue != nil && !s.pending
}

// Degraded reports whether the session has no dialogue.
func (s *Session) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogue == nil
}
