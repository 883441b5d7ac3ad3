package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/kellen/chronos/internal/certificate"
	"github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/store"
)

type answerSheet struct {
	Answers []*int `json:"answers"`
}

func (s *Server) scoreQuiz(w http.ResponseWriter, r *http.Request) {
	var body answerSheet
	if err := decode(w, r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result := quiz.Evaluate(s.opts.Catalog.Questions(), body.Answers)
	s.recordAttempt(r.Context(), result)
	JSON(w, http.StatusOK, result)
}

func (s *Server) issueCertificate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
		answerSheet
	}
	if err := decode(w, r, &body); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result := quiz.Evaluate(s.opts.Catalog.Questions(), body.Answers)
	req, err := certificate.NewRequest(result, body.Name, s.opts.Now())
	if errors.Is(err, certificate.ErrNotPassed) || errors.Is(err, certificate.ErrEmptyName) {
		Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.opts.Exporter.Export(r.Context(), req, &buf); err != nil {
		s.logger.Error("certificate export failed", "error", err)
		Error(w, http.StatusInternalServerError, "certificate export failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certificate.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("write certificate", "error", err)
	}
}

// recordAttempt appends the scored sheet to the event log when one is
// configured. Failures are logged only.
func (s *Server) recordAttempt(ctx context.Context, result quiz.Result) {
	if s.opts.Events == nil {
		return
	}
	err := s.opts.Events.AppendQuizAttempt(ctx, store.QuizAttemptEventData{
		AttemptID: uuid.NewString(),
		Language:  string(s.opts.Machine.Language()),
		Questions: len(result.Answers),
		Correct:   result.Correct,
		Score:     result.Score,
		Passed:    result.Passed,
	})
	if err != nil {
		s.logger.Error("record quiz attempt", "error", err)
	}
}
