package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/i18n"
	"github.com/kellen/chronos/internal/llm"
)

func newReadySession(t *testing.T, responses ...llm.MockResponse) (*Session, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	s := New(mock)
	s.Initialize(context.Background())
	require.False(t, s.Degraded())
	return s, mock
}

func era(t *testing.T, id string) *catalog.Era {
	t.Helper()
	e, ok := catalog.Default().Era(id)
	require.True(t, ok)
	return &e
}

func TestInitializeWithoutCredential(t *testing.T) {
	s := New(nil)
	s.Initialize(context.Background())

	require.Equal(t, []Message{{Role: RoleModel, Content: ConfigErrorText}}, s.History())
	assert.True(t, s.Degraded())
	assert.False(t, s.Ready())

	assert.ErrorIs(t, s.Send(context.Background(), "Who was Napoleon?"), ErrNoDialogue)
	_, ok := s.AutoPrompt(era(t, "roman-empire"), i18n.English)
	assert.False(t, ok)
	assert.Len(t, s.History(), 1)
}

func TestInitializeOpenFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.OpenErr = errors.New("quota exhausted")
	s := New(mock)
	s.Initialize(context.Background())

	assert.True(t, s.Degraded())
	assert.Equal(t, ConfigErrorText, s.History()[0].Content)
}

func TestInitializeSeedsGreetingAndSystemInstruction(t *testing.T) {
	s, mock := newReadySession(t, llm.MockResponse{Text: "Napoleon was a French emperor."})

	assert.Equal(t, []Message{{Role: RoleModel, Content: Greeting}}, s.History())
	assert.True(t, s.Ready())

	require.NoError(t, s.Send(context.Background(), "Who was Napoleon?"))
	assert.Equal(t, SystemInstruction, mock.LastCall().System)
}

func TestSendAppendsInOrder(t *testing.T) {
	s, _ := newReadySession(t,
		llm.MockResponse{Text: "In 1789."},
		llm.MockResponse{Text: "Louis XVI."},
	)

	require.NoError(t, s.Send(context.Background(), "When did the French Revolution start?"))
	require.NoError(t, s.Send(context.Background(), "Who was king?"))

	assert.Equal(t, []Message{
		{Role: RoleModel, Content: Greeting},
		{Role: RoleUser, Content: "When did the French Revolution start?"},
		{Role: RoleModel, Content: "In 1789."},
		{Role: RoleUser, Content: "Who was king?"},
		{Role: RoleModel, Content: "Louis XVI."},
	}, s.History())
	assert.False(t, s.Pending())
}

func TestSendFailureAppendsFallback(t *testing.T) {
	s, _ := newReadySession(t, llm.MockResponse{Err: errors.New("network down")})

	require.NoError(t, s.Send(context.Background(), "Tell me about Rome"))

	h := s.History()
	require.Len(t, h, 3)
	assert.Equal(t, Message{Role: RoleModel, Content: FallbackText}, h[2])
	assert.False(t, s.Pending())
	assert.True(t, s.Ready())
}

func TestBlankMessagesAreIgnored(t *testing.T) {
	s, mock := newReadySession(t)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := s.Begin(text)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Len(t, s.History(), 1)
	assert.False(t, s.Pending())
	assert.Zero(t, mock.CallCount())
}

func TestSecondMessageRejectedWhilePending(t *testing.T) {
	s, mock := newReadySession(t, llm.MockResponse{Text: "Yes."})

	ex, err := s.Begin("Did Rome fall?")
	require.NoError(t, err)
	assert.True(t, s.Pending())
	assert.False(t, s.Ready())

	_, err = s.Begin("Hello?")
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, s.Send(context.Background(), "Hello?"), ErrBusy)

	assert.True(t, s.Complete(ex.Run(context.Background())))
	assert.False(t, s.Pending())
	assert.Equal(t, 1, mock.CallCount())
	assert.Len(t, s.History(), 3)
}

func TestConcurrentSendsAllowOnlyOneInFlight(t *testing.T) {
	gate := make(chan struct{})
	s := New(&blockingOpener{gate: gate})
	s.Initialize(context.Background())

	const callers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		busy int
	)
	started := make(chan struct{}, callers)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			if err := s.Send(context.Background(), "Who built Carthage?"); errors.Is(err, ErrBusy) {
				mu.Lock()
				busy++
				mu.Unlock()
			}
		}()
	}
	for range callers {
		<-started
	}
	// Let the single accepted call finish once everyone had a chance to race.
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return busy == callers-1
	}, defaultWait, pollInterval)
	close(gate)
	wg.Wait()

	assert.Len(t, s.History(), 3)
	assert.False(t, s.Pending())
}

func TestAutoPromptOncePerEra(t *testing.T) {
	s, mock := newReadySession(t,
		llm.MockResponse{Text: "Rome rose and fell."},
		llm.MockResponse{Text: "The Nile fed Egypt."},
	)
	rome := era(t, "roman-empire")

	ex, err := s.BeginAutoPrompt(rome, i18n.English)
	require.NoError(t, err)
	require.NotNil(t, ex)
	assert.Equal(t, `Tell me more about the "The Roman Empire" era.`, ex.Message)
	s.Complete(ex.Run(context.Background()))

	// Same era again: latched.
	ex, err = s.BeginAutoPrompt(rome, i18n.English)
	require.NoError(t, err)
	assert.Nil(t, ex)
	_, ok := s.AutoPrompt(rome, i18n.French)
	assert.False(t, ok)

	// A different era re-triggers.
	prompt, ok := s.AutoPrompt(era(t, "ancient-egypt"), i18n.French)
	require.True(t, ok)
	assert.Equal(t, `Tell me more about the "L'Égypte antique" era.`, prompt)

	// Clearing the era resets the latch.
	_, ok = s.AutoPrompt(nil, i18n.English)
	assert.False(t, ok)
	_, ok = s.AutoPrompt(rome, i18n.English)
	assert.True(t, ok)

	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, llm.RoleUser, mock.LastCall().Messages[0].Role)
}

func TestAutoPromptRecordsPurpose(t *testing.T) {
	s, _ := newReadySession(t)
	ex, err := s.BeginAutoPrompt(era(t, "space-age"), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, PurposeEraPrompt, ex.Purpose)

	s.Close()
	ex, err = s.Begin("Who was Gagarin?")
	require.NoError(t, err)
	assert.Equal(t, PurposeChat, ex.Purpose)
}

func TestCloseDiscardsStaleReply(t *testing.T) {
	s, _ := newReadySession(t, llm.MockResponse{Text: "Late answer."})

	ex, err := s.Begin("Who was Hannibal?")
	require.NoError(t, err)
	s.Close()
	assert.False(t, s.Pending())

	assert.False(t, s.Complete(ex.Run(context.Background())))
	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, RoleUser, h[1].Role)
}

func TestReinitializeResetsConversation(t *testing.T) {
	s, _ := newReadySession(t, llm.MockResponse{Text: "Sparta."})
	require.NoError(t, s.Send(context.Background(), "Which city had Leonidas?"))
	_, ok := s.AutoPrompt(era(t, "classical-greece"), i18n.English)
	require.True(t, ok)

	s.Initialize(context.Background())
	assert.Equal(t, []Message{{Role: RoleModel, Content: Greeting}}, s.History())
	_, ok = s.AutoPrompt(era(t, "classical-greece"), i18n.English)
	assert.True(t, ok)
}

func TestHistoryReturnsCopy(t *testing.T) {
	s, _ := newReadySession(t)
	h := s.History()
	h[0].Content = "tampered"
	assert.Equal(t, Greeting, s.History()[0].Content)
}
