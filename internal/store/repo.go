package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	From    time.Time // timestamp >= From
	Purpose string    // LLM events only: exact purpose label
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// QuizAttemptEventData captures a finished quiz attempt.
type QuizAttemptEventData struct {
	AttemptID  string
	Language   string
	Questions  int
	Correct    int
	Score      int
	Passed     bool
	TimedOut   bool
	HolderName string
}

// QuizAttemptEvent is a stored quiz attempt.
type QuizAttemptEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizAttemptEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendQuizAttempt records a finished quiz attempt.
	AppendQuizAttempt(ctx context.Context, data QuizAttemptEventData) error

	// QueryQuizAttempts returns quiz attempts, newest first.
	QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptEvent, error)
}
