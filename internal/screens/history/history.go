// Package history shows per-category accuracy and past practice sessions.
package history

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/screen"
	"github.com/abhisek/littlemath/internal/store"
	"github.com/abhisek/littlemath/internal/ui/layout"
)

// SessionLimit caps how many finished sessions are listed.
const SessionLimit = 20

// answerLimit caps the answer events loaded for session details.
const answerLimit = 1000

// Source is the read side of the event store used by the history screen.
type Source interface {
	AnswerSummaryByCategory(ctx context.Context) ([]store.CategorySummary, error)
	QuerySessionEvents(ctx context.Context, opts store.QueryOpts) ([]store.SessionEvent, error)
	QueryAnswerEvents(ctx context.Context, opts store.QueryOpts) ([]store.AnswerEvent, error)
}

type historyLoadedMsg struct {
	Summaries []store.CategorySummary
	Sessions  []store.SessionEvent
	Answers   map[string][]store.AnswerEvent // sessionID → answers, oldest first
	Err       error
}

// HistoryScreen displays learning records.
type HistoryScreen struct {
	ctx       context.Context
	source    Source
	summaries map[string]store.CategorySummary
	sessions  []store.SessionEvent
	answers   map[string][]store.AnswerEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(ctx context.Context, source Source) *HistoryScreen {
	return &HistoryScreen{
		ctx:       ctx,
		source:    source,
		summaries: make(map[string]store.CategorySummary),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	ctx, src := s.ctx, s.source
	return func() tea.Msg {
		return load(ctx, src)
	}
}

func load(ctx context.Context, src Source) historyLoadedMsg {
	summaries, err := src.AnswerSummaryByCategory(ctx)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}

	events, err := src.QuerySessionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	var sessions []store.SessionEvent
	for _, e := range events {
		if e.Action != store.SessionActionEnd {
			continue
		}
		sessions = append(sessions, e)
		if len(sessions) == SessionLimit {
			break
		}
	}

	// Answers are optional detail; a failure leaves sessions without them.
	answers := make(map[string][]store.AnswerEvent)
	all, err := src.QueryAnswerEvents(ctx, store.QueryOpts{Limit: answerLimit})
	if err == nil {
		for i := len(all) - 1; i >= 0; i-- {
			a := all[i]
			answers[a.SessionID] = append(answers[a.SessionID], a)
		}
	}

	return historyLoadedMsg{Summaries: summaries, Sessions: sessions, Answers: answers}
}

func (s *HistoryScreen) Title() string {
	return "学习记录"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "展开"},
		{Key: "↑↓", Description: "移动"},
		{Key: "Esc", Description: "返回"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			for _, sum := range msg.Summaries {
				s.summaries[sum.Category] = sum
			}
			s.sessions = msg.Sessions
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc", "q":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			if len(s.sessions) > 0 {
				s.expanded[s.selected] = !s.expanded[s.selected]
			}
		}
	}
	return s, nil
}
