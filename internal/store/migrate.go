package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableLLMRequestEvents = "llm_request_events"
	tableAnswerEvents     = "answer_events"
	tableSessionEvents    = "session_events"
)

// eventTable starts a table with the columns every event shares: an
// auto-increment id, the global sequence and a timestamp.
func eventTable(name string) *schema.Table {
	return schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true}).
		AddColumn(&schema.Column{Name: "sequence", Type: field.TypeInt64, Unique: true}).
		AddColumn(&schema.Column{Name: "timestamp", Type: field.TypeTime})
}

func stringColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Default: ""}
}

func textColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString, Size: 1 << 20, Default: ""}
}

func intColumn(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeInt, Default: 0}
}

var (
	llmRequestEventsTable = eventTable(tableLLMRequestEvents).
				AddColumn(stringColumn("provider")).
				AddColumn(stringColumn("model")).
				AddColumn(stringColumn("purpose")).
				AddColumn(intColumn("input_tokens")).
				AddColumn(intColumn("output_tokens")).
				AddColumn(&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0}).
				AddColumn(&schema.Column{Name: "success", Type: field.TypeBool, Default: false}).
				AddColumn(textColumn("error_message")).
				AddColumn(textColumn("request_body")).
				AddColumn(textColumn("response_body")).
				AddIndex("llmrequestevent_purpose", false, []string{"purpose"})

	answerEventsTable = eventTable(tableAnswerEvents).
				AddColumn(stringColumn("session_id")).
				AddColumn(stringColumn("category")).
				AddColumn(stringColumn("problem_id")).
				AddColumn(textColumn("question")).
				AddColumn(stringColumn("correct_answer")).
				AddColumn(stringColumn("learner_answer")).
				AddColumn(&schema.Column{Name: "correct", Type: field.TypeBool, Default: false}).
				AddColumn(intColumn("score_after")).
				AddIndex("answerevent_category", false, []string{"category"}).
				AddIndex("answerevent_session_id", false, []string{"session_id"})

	sessionEventsTable = eventTable(tableSessionEvents).
				AddColumn(stringColumn("session_id")).
				AddColumn(stringColumn("action")).
				AddColumn(stringColumn("frontend")).
				AddColumn(intColumn("score")).
				AddColumn(intColumn("correct_answers")).
				AddColumn(intColumn("total_attempts")).
				AddColumn(intColumn("duration_secs")).
				AddIndex("sessionevent_session_id", false, []string{"session_id"})

	tables = []*schema.Table{
		llmRequestEventsTable,
		answerEventsTable,
		sessionEventsTable,
	}
)

// migrate creates or updates the event tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
