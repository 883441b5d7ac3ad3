// Package certificate issues and exports completion certificates for passed
// quiz attempts.
package certificate

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kellen/chronos/internal/quiz"
)

// FileName is the name under which certificates are saved.
const FileName = "Kellen-Certificate.pdf"

// Certificate text.
const (
	Title     = "CERTIFICATE OF COMPLETION"
	QuizName  = "Rwanda Access Portal Quiz"
	Signatory = "Kellen Official, Director of Access"
)

var (
	ErrNotPassed = errors.New("certificate: quiz not passed")
	ErrEmptyName = errors.New("certificate: holder name is empty")
	ErrBusy      = errors.New("certificate: export already in progress")
)

// Request describes one certificate to render.
type Request struct {
	HolderName string
	Score      int
	Date       time.Time
	Serial     string
}

// NewRequest builds a request for a passed result. The holder name is
// trimmed and must not be blank.
func NewRequest(result quiz.Result, name string, now time.Time) (Request, error) {
	if !result.Passed {
		return Request{}, ErrNotPassed
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Request{}, ErrEmptyName
	}
	return Request{
		HolderName: name,
		Score:      result.Score,
		Date:       now,
		Serial:     strings.ToUpper(uuid.NewString()[:8]),
	}, nil
}

// Exporter renders a certificate document.
type Exporter interface {
	Export(ctx context.Context, req Request, w io.Writer) error
}
