package chat

import (
	"time"

	convo "github.com/kellen/chronos/internal/chat"
)

// sessionReadyMsg is sent once the dialogue has been opened (or has failed
// to open and the session is degraded).
type sessionReadyMsg struct{}

// replyMsg carries the outcome of one exchange.
type replyMsg struct {
	Reply convo.Reply
}

// spinnerTickMsg animates the loading indicator while a reply is pending.
type spinnerTickMsg time.Time
