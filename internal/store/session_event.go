package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionEventColumns = []string{
	"id", "sequence", "timestamp", "session_id", "action", "frontend",
	"score", "correct_answers", "total_attempts", "duration_secs",
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.Action != SessionActionStart && data.Action != SessionActionEnd {
		return fmt.Errorf("invalid session action %q", data.Action)
	}
	return r.insert(ctx, tableSessionEvents,
		sessionEventColumns[3:],
		[]any{
			data.SessionID, data.Action, data.Frontend,
			data.Score, data.CorrectAnswers, data.TotalAttempts, data.DurationSecs,
		})
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	s := sqlite().Select(sessionEventColumns...).From(entsql.Table(tableSessionEvents))
	query, args := applyQueryOpts(s, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Action, &e.Frontend,
			&e.Score, &e.CorrectAnswers, &e.TotalAttempts, &e.DurationSecs,
		); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
