package chat

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	convo "github.com/kellen/chronos/internal/chat"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/prefs"
	"github.com/kellen/chronos/internal/router"
)

// drain runs cmd and every command it batches, returning the messages that
// are not spinner ticks.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if _, ok := msg.(spinnerTickMsg); ok {
		return nil
	}
	return []tea.Msg{msg}
}

func replyFrom(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	for _, m := range drain(cmd) {
		if r, ok := m.(replyMsg); ok {
			return r
		}
	}
	t.Fatal("expected a reply message")
	return replyMsg{}
}

func newTestChat(t *testing.T, opener llm.Opener, eraID string) *ChatScreen {
	t.Helper()
	ctx := context.Background()
	cat := catalog.Default()
	m := appstate.Load(ctx, prefs.NewMemory(), cat)
	if eraID != "" {
		if err := m.SelectEra(ctx, eraID); err != nil {
			t.Fatal(err)
		}
	} else if err := m.StartChat(ctx); err != nil {
		t.Fatal(err)
	}
	c := New(m, convo.New(opener))
	c.session.Initialize(ctx)
	return c
}

func TestEraAutoPromptOnReady(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "The Mali Empire flourished in West Africa."})
	c := newTestChat(t, mock, "mali-empire")

	_, cmd := c.Update(sessionReadyMsg{})
	if !c.session.Pending() {
		t.Fatal("expected the era prompt to be in flight")
	}
	if !c.input.Disabled {
		t.Error("expected input disabled while pending")
	}

	hist := c.session.History()
	if len(hist) != 2 || hist[1].Role != convo.RoleUser || !strings.Contains(hist[1].Content, "Mali") {
		t.Fatalf("expected greeting then era prompt, got %+v", hist)
	}

	c.Update(replyFrom(t, cmd))

	hist = c.session.History()
	if len(hist) != 3 || hist[2].Content != "The Mali Empire flourished in West Africa." {
		t.Fatalf("expected model reply appended, got %+v", hist)
	}
	if c.input.Disabled {
		t.Error("expected input enabled after reply")
	}
	if !strings.Contains(c.View(100, 30), "Chronos") {
		t.Error("expected transcript to render")
	}
}

func TestSendMessage(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "He ruled Mali in the 14th century."})
	c := newTestChat(t, mock, "")

	_, cmd := c.Update(sessionReadyMsg{})
	if cmd != nil {
		t.Fatal("expected no auto prompt without an era")
	}

	c.input.SetValue("Who was Mansa Musa?")
	_, cmd = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if c.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", c.input.Value())
	}

	c.Update(replyFrom(t, cmd))
	hist := c.session.History()
	if got := hist[len(hist)-1].Content; got != "He ruled Mali in the 14th century." {
		t.Errorf("unexpected reply %q", got)
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 model call, got %d", mock.CallCount())
	}
}

func TestBlankMessageIgnored(t *testing.T) {
	mock := llm.NewMockProvider()
	c := newTestChat(t, mock, "")
	c.Update(sessionReadyMsg{})

	c.input.SetValue("   ")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil || c.session.Pending() {
		t.Error("expected blank message to be ignored")
	}
}

func TestDegradedSession(t *testing.T) {
	c := newTestChat(t, nil, "roman-empire")
	_, cmd := c.Update(sessionReadyMsg{})
	if cmd != nil {
		t.Error("expected no auto prompt in degraded mode")
	}
	if !c.input.Disabled {
		t.Error("expected input disabled in degraded mode")
	}

	hist := c.session.History()
	if len(hist) != 1 || hist[0].Content != convo.ConfigErrorText {
		t.Fatalf("expected configuration error only, got %+v", hist)
	}

	c.input.SetValue("hello")
	if _, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected enter to do nothing in degraded mode")
	}
}

func TestFailedReplyShowsFallback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	c := newTestChat(t, mock, "")
	c.Update(sessionReadyMsg{})

	c.input.SetValue("Tell me about Carthage")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	c.Update(replyFrom(t, cmd))

	hist := c.session.History()
	if got := hist[len(hist)-1].Content; got != convo.FallbackText {
		t.Errorf("expected fallback text, got %q", got)
	}
}

func TestCloseDropsLateReply(t *testing.T) {
	c := newTestChat(t, &stubOpener{}, "")
	c.Update(sessionReadyMsg{})

	c.input.SetValue("Who founded Rome?")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	before := len(c.session.History())

	c.Close()
	c.Update(replyFrom(t, cmd))

	if got := len(c.session.History()); got != before {
		t.Errorf("expected late reply dropped, history grew from %d to %d", before, got)
	}
}

func TestEscGoesHome(t *testing.T) {
	c := newTestChat(t, llm.NewMockProvider(), "")
	_, cmd := c.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.GoHomeMsg); !ok {
		t.Error("expected GoHomeMsg")
	}
}

// stubOpener answers every message immediately.
type stubOpener struct{}

func (stubOpener) OpenDialogue(context.Context, string) (llm.Dialogue, error) {
	return stubDialogue{}, nil
}

type stubDialogue struct{}

func (stubDialogue) Send(context.Context, string) (*llm.Response, error) {
	return &llm.Response{Text: "Romulus, according to legend."}, nil
}

func (stubDialogue) ModelID() string { return "stub" }
