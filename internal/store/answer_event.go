package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var answerEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "category", "problem_id",
	"question", "correct_answer", "learner_answer", "correct", "score_after",
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, tableAnswerEvents,
		answerEventColumns[3:],
		[]any{
			data.SessionID, data.Category, data.ProblemID, data.Question,
			data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.ScoreAfter,
		})
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	s := sqlite().Select(answerEventColumns...).From(entsql.Table(tableAnswerEvents))
	query, args := applyQueryOpts(s, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var e AnswerEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Category, &e.ProblemID,
			&e.Question, &e.CorrectAnswer, &e.LearnerAnswer, &e.Correct, &e.ScoreAfter,
		); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) AnswerSummaryByCategory(ctx context.Context) ([]CategorySummary, error) {
	query, args := sqlite().Select(
		"category",
		entsql.Count("*"),
		"SUM(CASE WHEN correct THEN 1 ELSE 0 END)",
	).
		From(entsql.Table(tableAnswerEvents)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer summary: %w", err)
	}
	defer rows.Close()

	var out []CategorySummary
	for rows.Next() {
		var c CategorySummary
		if err := rows.Scan(&c.Category, &c.Attempts, &c.Correct); err != nil {
			return nil, fmt.Errorf("scan answer summary: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
