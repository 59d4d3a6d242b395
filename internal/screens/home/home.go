// Package home is the category selection screen.
package home

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/router"
	"github.com/abhisek/littlemath/internal/screen"
	"github.com/abhisek/littlemath/internal/screens/history"
	"github.com/abhisek/littlemath/internal/screens/practice"
	"github.com/abhisek/littlemath/internal/store"
	"github.com/abhisek/littlemath/internal/ui/components"
	"github.com/abhisek/littlemath/internal/ui/layout"
	"github.com/abhisek/littlemath/internal/ui/theme"
)

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Ctx        context.Context
	Controller *quiz.Controller

	// History is optional. Without it the history entry is disabled and no
	// accuracy hints are shown.
	History history.Source
	Logger  *zap.Logger
}

type accuracyLoadedMsg struct {
	Summaries []store.CategorySummary
	Err       error
}

// HomeScreen shows the session stats and the category menu.
type HomeScreen struct {
	deps       Deps
	categories []problem.Category
	accuracy   map[string]store.CategorySummary
	menu       components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := &HomeScreen{
		deps:       deps,
		categories: problem.Categories(),
		accuracy:   make(map[string]store.CategorySummary),
	}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.categories)+2)
	for _, c := range h.categories {
		item := components.MenuItem{
			Label: c.Icon + " " + c.Name,
			Color: theme.CategoryColor(c.Color),
			Action: func() tea.Cmd {
				return router.Push(practice.New(h.deps.Ctx, h.deps.Controller, c))
			},
		}
		if sum, ok := h.accuracy[c.ID]; ok && sum.Attempts > 0 {
			item.Hint = fmt.Sprintf("历史正确率 %d%%", int(math.Round(sum.Accuracy()*100)))
		}
		items = append(items, item)
	}

	items = append(items,
		components.MenuItem{
			Label:    "📖 学习记录",
			Disabled: h.deps.History == nil,
			Action: func() tea.Cmd {
				return router.Push(history.New(h.deps.Ctx, h.deps.History))
			},
		},
		components.MenuItem{
			Label:  "👋 退出",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadAccuracy()
}

// Resume refreshes the accuracy hints after a practice session.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadAccuracy()
}

func (h *HomeScreen) loadAccuracy() tea.Cmd {
	src := h.deps.History
	if src == nil {
		return nil
	}
	ctx := h.deps.Ctx
	return func() tea.Msg {
		sums, err := src.AnswerSummaryByCategory(ctx)
		return accuracyLoadedMsg{Summaries: sums, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(accuracyLoadedMsg); ok {
		if msg.Err != nil {
			h.deps.Logger.Warn("load category accuracy", zap.Error(msg.Err))
			return h, nil
		}
		for _, s := range msg.Summaries {
			h.accuracy[s.Category] = s
		}
		selected := h.menu.Selected
		h.menu = components.NewMenu(h.menuItems())
		h.menu.Selected = selected
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+6)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.deps.Controller.State().Stats, cw),
		renderMenu(h.menu, cw),
	}
	if !compact {
		sections = append(sections, renderFeatureCards(cw))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Panel(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "选择练习"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "1-" + fmt.Sprint(len(h.menu.Items)), Description: "快速选择"},
		{Key: "↑↓", Description: "移动"},
		{Key: "Enter", Description: "开始"},
		{Key: "Ctrl+C", Description: "退出"},
	}
}
