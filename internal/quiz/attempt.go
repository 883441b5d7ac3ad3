package quiz

import (
	"github.com/google/uuid"

	"github.com/kellen/chronos/internal/catalog"
)

// Attempt walks the user through a question set, one question at a time.
// It is not safe for concurrent use.
type Attempt struct {
	id        string
	questions []catalog.Question
	answers   []*int
	index     int
	finished  bool
	timedOut  bool
}

// NewAttempt starts an attempt at the first question with no answers.
func NewAttempt(questions []catalog.Question) *Attempt {
	a := &Attempt{questions: questions}
	a.Restart()
	return a
}

// ID identifies this attempt. Restart assigns a new one.
func (a *Attempt) ID() string { return a.id }

// Questions returns the question set.
func (a *Attempt) Questions() []catalog.Question { return a.questions }

// Len returns the number of questions.
func (a *Attempt) Len() int { return len(a.questions) }

// Index returns the zero-based position of the current question.
func (a *Attempt) Index() int { return a.index }

// Current returns the current question, or nil for an empty set.
func (a *Attempt) Current() *catalog.Question {
	if len(a.questions) == 0 {
		return nil
	}
	return &a.questions[a.index]
}

// Selected returns the chosen option for the current question, or nil.
func (a *Attempt) Selected() *int {
	if len(a.questions) == 0 {
		return nil
	}
	return a.answers[a.index]
}

// Select records option as the answer to the current question. Out of
// range options and selections after Finish are ignored.
func (a *Attempt) Select(option int) bool {
	q := a.Current()
	if q == nil || a.finished || option < 0 || option >= len(q.Options) {
		return false
	}
	a.answers[a.index] = &option
	return true
}

// Next moves to the following question. It reports false on the last one.
func (a *Attempt) Next() bool {
	if a.index+1 >= len(a.questions) {
		return false
	}
	a.index++
	return true
}

// Prev moves to the preceding question. It reports false on the first one.
func (a *Attempt) Prev() bool {
	if a.index == 0 {
		return false
	}
	a.index--
	return true
}

// IsLast reports whether the current question is the last one.
func (a *Attempt) IsLast() bool {
	return a.index >= len(a.questions)-1
}

// Answered returns how many questions have an answer.
func (a *Attempt) Answered() int {
	n := 0
	for _, ans := range a.answers {
		if ans != nil {
			n++
		}
	}
	return n
}

// Answers returns a copy of the answer sheet.
func (a *Attempt) Answers() []*int {
	return cloneAnswers(a.answers, len(a.questions))
}

// Finish locks the answer sheet. timedOut records whether the countdown
// ended the attempt.
func (a *Attempt) Finish(timedOut bool) Result {
	if !a.finished {
		a.finished = true
		a.timedOut = timedOut
	}
	return a.Result()
}

// Finished reports whether the attempt was submitted or timed out.
func (a *Attempt) Finished() bool { return a.finished }

// TimedOut reports whether the countdown ended the attempt.
func (a *Attempt) TimedOut() bool { return a.timedOut }

// Result scores the current answer sheet.
func (a *Attempt) Result() Result {
	return Evaluate(a.questions, a.answers)
}

// Restart clears all answers and returns to the first question.
func (a *Attempt) Restart() {
	a.id = uuid.NewString()
	a.answers = make([]*int, len(a.questions))
	a.index = 0
	a.finished = false
	a.timedOut = false
}
