// Package app is the root Bubble Tea model of the terminal frontend.
package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/screen"
	"github.com/abhisek/littlemath/internal/screens/history"
	"github.com/abhisek/littlemath/internal/screens/home"
	"github.com/abhisek/littlemath/internal/screens/practice"
	"github.com/abhisek/littlemath/internal/ui/layout"
)

// Options configure the terminal frontend.
type Options struct {
	Controller *quiz.Controller

	// History is optional; see home.Deps.
	History history.Source

	// InitialCategory, when set, opens that category straight away.
	InitialCategory string

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx     context.Context
	ctrl    *quiz.Controller
	router  *router.Router
	initial *problem.Category
	width   int
	height  int
}

func newAppModel(ctx context.Context, opts Options) (AppModel, error) {
	if opts.Controller == nil {
		return AppModel{}, fmt.Errorf("app: controller is required")
	}
	m := AppModel{
		ctx:  ctx,
		ctrl: opts.Controller,
		router: router.New(home.New(home.Deps{
			Ctx:        ctx,
			Controller: opts.Controller,
			History:    opts.History,
			Logger:     opts.Logger,
		})),
	}
	if opts.InitialCategory != "" {
		c, ok := problem.LookupCategory(opts.InitialCategory)
		if !ok {
			return AppModel{}, fmt.Errorf("app: unknown category %q", opts.InitialCategory)
		}
		m.initial = &c
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.initial != nil {
		cmds = append(cmds, router.Push(practice.New(m.ctx, m.ctrl, *m.initial)))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case practice.FetchResultMsg:
		if _, ok := m.router.Active().(*practice.PracticeScreen); !ok {
			m.ctrl.Dispatch(msg.Outcome)
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	stats := m.ctrl.State().Stats
	header := layout.RenderHeader(problem.AppTitle, title, stats.Score, stats.CorrectAnswers, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the learner quits or
// ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	m, err := newAppModel(ctx, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
