package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var quizEventColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "language", "questions",
	"correct", "score", "passed", "timed_out", "holder_name",
}

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizAttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert("quiz_attempt_events").
		Columns(quizEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.AttemptID,
			data.Language,
			data.Questions,
			data.Correct,
			data.Score,
			boolInt(data.Passed),
			boolInt(data.TimedOut),
			data.HolderName,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptEvent, error) {
	sel := builder.Select(quizEventColumns...).
		From(entsql.Table("quiz_attempt_events")).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttemptEvent
	for rows.Next() {
		var (
			e                QuizAttemptEvent
			ts               int64
			passed, timedOut int
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.AttemptID, &e.Language, &e.Questions,
			&e.Correct, &e.Score, &passed, &timedOut, &e.HolderName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.Passed = passed != 0
		e.TimedOut = timedOut != 0
		out = append(out, e)
	}
	return out, rows.Err()
}
