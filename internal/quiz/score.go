// Package quiz scores answer sheets and drives a timed quiz attempt.
package quiz

import (
	"math"

	"github.com/samber/lo"

	"github.com/kellen/chronos/internal/catalog"
)

// PassThreshold is the minimum score that passes the quiz.
const PassThreshold = 60

// Result is the derived outcome of an answer sheet.
type Result struct {
	Score   int    `json:"score"`
	Passed  bool   `json:"passed"`
	Correct int    `json:"correct"`
	Answers []*int `json:"answers"`
}

// Correct counts the answers that exactly match the question's correct
// option. Answers beyond the question list are ignored; missing or nil
// answers count as unanswered.
func Correct(questions []catalog.Question, answers []*int) int {
	return len(lo.Filter(questions, func(q catalog.Question, i int) bool {
		return i < len(answers) && answers[i] != nil && *answers[i] == q.CorrectAnswerIndex
	}))
}

// Score returns round(100 * correct / len(questions)). An empty question set
// scores 0.
func Score(questions []catalog.Question, answers []*int) int {
	if len(questions) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(Correct(questions, answers)) / float64(len(questions))))
}

// Passed reports whether score meets PassThreshold.
func Passed(score int) bool {
	return score >= PassThreshold
}

// Evaluate scores an answer sheet.
func Evaluate(questions []catalog.Question, answers []*int) Result {
	score := Score(questions, answers)
	return Result{
		Score:   score,
		Passed:  Passed(score),
		Correct: Correct(questions, answers),
		Answers: cloneAnswers(answers, len(questions)),
	}
}

// cloneAnswers copies answers into a sheet of exactly n entries.
func cloneAnswers(answers []*int, n int) []*int {
	out := make([]*int, n)
	for i := 0; i < n && i < len(answers); i++ {
		if answers[i] != nil {
			out[i] = lo.ToPtr(*answers[i])
		}
	}
	return out
}
