package server

import (
	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
)

// ProblemView is a problem as shown to the learner. Answer is present only
// once the problem is answered, Explanation only once it is revealed.
type ProblemView struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Category    string   `json:"category"`
	Answer      string   `json:"answer,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// StateView is the render state returned by every session endpoint.
type StateView struct {
	Phase           string         `json:"phase"`
	Category        string         `json:"category,omitempty"`
	Problem         *ProblemView   `json:"problem"`
	Loading         bool           `json:"loading"`
	Feedback        *quiz.Feedback `json:"feedback"`
	ShowExplanation bool           `json:"showExplanation"`
	Stats           quiz.Stats     `json:"stats"`
	Accuracy        int            `json:"accuracy"`
}

// CategoryView is one catalog entry.
type CategoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func newStateView(s quiz.State) StateView {
	v := StateView{
		Phase:           s.Phase().String(),
		Category:        s.Category,
		Loading:         s.Loading,
		Feedback:        s.Feedback,
		ShowExplanation: s.ShowExplanation,
		Stats:           s.Stats,
		Accuracy:        s.Stats.AccuracyPercent(),
	}
	if p := s.Problem; p != nil {
		pv := &ProblemView{
			ID:       p.ID,
			Question: p.Question,
			Options:  append([]string(nil), p.Options...),
			Category: p.Category,
		}
		if s.Feedback != nil {
			pv.Answer = p.Answer
		}
		if s.ShowExplanation {
			pv.Explanation = p.Explanation
		}
		v.Problem = pv
	}
	return v
}

func categoryViews() []CategoryView {
	cats := problem.Categories()
	out := make([]CategoryView, len(cats))
	for i, c := range cats {
		out[i] = CategoryView{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
	}
	return out
}
