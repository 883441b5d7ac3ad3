package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellen/chronos/internal/store"
)

func TestReplayDialogue_SendsFullHistory(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Text: "Around 2560 BCE."},
		MockResponse{Text: "For the pharaoh Khufu."},
	)
	d, err := NewProviderOpener(mock).OpenDialogue(context.Background(), "historian")
	require.NoError(t, err)

	resp, err := d.Send(context.Background(), "When was the Great Pyramid built?")
	require.NoError(t, err)
	assert.Equal(t, "Around 2560 BCE.", resp.Text)

	_, err = d.Send(context.Background(), "For whom?")
	require.NoError(t, err)

	last := mock.LastCall()
	require.NotNil(t, last)
	assert.Equal(t, "historian", last.System)
	assert.Equal(t, DefaultMaxTokens, last.MaxTokens)
	require.Len(t, last.Messages, 3)
	assert.Equal(t, RoleUser, last.Messages[0].Role)
	assert.Equal(t, RoleAssistant, last.Messages[1].Role)
	assert.Equal(t, "Around 2560 BCE.", last.Messages[1].Content)
	assert.Equal(t, "For whom?", last.Messages[2].Content)
}

func TestReplayDialogue_FailureLeavesHistoryUnchanged(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Text: "Yes."},
	)
	d, err := mock.OpenDialogue(context.Background(), "")
	require.NoError(t, err)

	_, err = d.Send(context.Background(), "Is anyone there?")
	require.Error(t, err)

	_, err = d.Send(context.Background(), "Hello?")
	require.NoError(t, err)
	require.Len(t, mock.LastCall().Messages, 1)
	assert.Equal(t, "Hello?", mock.LastCall().Messages[0].Content)
}

func TestMockProvider_OpenErr(t *testing.T) {
	mock := NewMockProvider()
	mock.OpenErr = errors.New("no chat for you")
	_, err := mock.OpenDialogue(context.Background(), "")
	assert.EqualError(t, err, "no chat for you")
}

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestInstrument_RecordsEveryAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Text: "The Mali Empire.", Usage: Usage{InputTokens: 7, OutputTokens: 4}},
	)
	repo := &recordingRepo{}
	opener := Instrument(mock, "mock", retryConfig(), repo, nil)

	d, err := opener.OpenDialogue(context.Background(), "historian")
	require.NoError(t, err)

	ctx := WithPurpose(context.Background(), "chat")
	resp, err := d.Send(ctx, "Where did Mansa Musa rule?")
	require.NoError(t, err)
	assert.Equal(t, "The Mali Empire.", resp.Text)

	require.Len(t, repo.events, 2)
	assert.False(t, repo.events[0].Success)
	assert.NotEmpty(t, repo.events[0].ErrorMessage)
	assert.True(t, repo.events[1].Success)
	assert.Equal(t, "chat", repo.events[1].Purpose)
	assert.Equal(t, "mock", repo.events[1].Provider)
	assert.Equal(t, 7, repo.events[1].InputTokens)
	assert.Contains(t, repo.events[1].RequestBody, "[system]\nhistorian")
	assert.Equal(t, "The Mali Empire.", repo.events[1].ResponseBody)
}

func TestLogging_RepoFailureDoesNotFailRequest(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: "ok"})
	d, err := mock.OpenDialogue(context.Background(), "")
	require.NoError(t, err)

	repo := &recordingRepo{err: errors.New("disk full")}
	resp, err := WithLogging(d, "mock", "", repo, nil).Send(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Len(t, repo.events, 1)
}

func TestInstrument_OpenErrorPropagates(t *testing.T) {
	mock := NewMockProvider()
	mock.OpenErr = errors.New("boom")
	_, err := Instrument(mock, "mock", retryConfig(), nil, nil).OpenDialogue(context.Background(), "")
	assert.Error(t, err)
}

func TestNewOpener_MockIsNativeOpener(t *testing.T) {
	o, err := NewOpener(context.Background(), Config{Provider: "mock", Retry: retryConfig()}, nil, nil)
	require.NoError(t, err)
	d, err := o.OpenDialogue(context.Background(), "historian")
	require.NoError(t, err)
	assert.Equal(t, "mock", d.ModelID())
}
