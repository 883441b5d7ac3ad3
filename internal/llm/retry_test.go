package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func mockDialogue(t *testing.T, mock *MockProvider) Dialogue {
	t.Helper()
	d, err := mock.OpenDialogue(context.Background(), "system")
	if err != nil {
		t.Fatalf("open dialogue: %v", err)
	}
	return d
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "476 CE"},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	resp, err := p.Send(context.Background(), "When did Rome fall?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "476 CE" {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: "476 CE"},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	resp, err := p.Send(context.Background(), "When did Rome fall?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "476 CE" {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	_, err := p.Send(context.Background(), "When did Rome fall?")
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: ""}},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	_, err := p.Send(context.Background(), "When did Rome fall?")
	if err == nil {
		t.Fatal("expected error")
	}
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Content: "", Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Content: "", Err: errors.New("bad")}},
		MockResponse{Text: "476 CE"}, // Won't be reached.
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	_, err := p.Send(context.Background(), "When did Rome fall?")
	if err == nil {
		t.Fatal("expected error")
	}
	// Should have retried once (2 calls total), then stopped.
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: "476 CE"},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately.

	_, err := p.Send(ctx, "When did Rome fall?")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Text: "476 CE"},
	)
	p := WithRetry(mockDialogue(t, mock), retryConfig())

	resp, err := p.Send(context.Background(), "When did Rome fall?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "476 CE" {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mockDialogue(t, mock), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "476 CE"})
	p := WithRetry(mockDialogue(t, mock), RetryConfig{})

	if _, err := p.Send(context.Background(), "When did Rome fall?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}
