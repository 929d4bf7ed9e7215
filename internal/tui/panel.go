package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matheuskafuri/newsdesk/internal/view"
	"github.com/sirupsen/logrus"
)

type panelID int

const (
	panelTrending panelID = iota
	panelHistory
)

func (id panelID) String() string {
	switch id {
	case panelTrending:
		return "trending"
	case panelHistory:
		return "history"
	}
	return "unknown"
}

// panel runs the Loading -> Ready|Error lifecycle for one data source.
// Overlapping loads are not guarded: whichever result arrives last is kept.
type panel[T any] struct {
	id    panelID
	fetch func(ctx context.Context) (T, error)
	state view.State[T]
	log   logrus.FieldLogger
}

func newPanel[T any](id panelID, fetch func(ctx context.Context) (T, error), log logrus.FieldLogger) panel[T] {
	return panel[T]{id: id, fetch: fetch, state: view.Loading[T](), log: log}
}

// load resets the panel to Loading and returns the command doing the fetch.
func (p *panel[T]) load() tea.Cmd {
	p.state = view.Loading[T]()
	id, fetch := p.id, p.fetch
	return func() tea.Msg {
		data, err := fetch(context.Background())
		return panelLoadedMsg[T]{id: id, state: view.Resolve(data, err)}
	}
}

// apply stores msg if it belongs to this panel and reports whether it did.
func (p *panel[T]) apply(msg tea.Msg) bool {
	m, ok := msg.(panelLoadedMsg[T])
	if !ok || m.id != p.id {
		return false
	}
	p.state = m.state
	if m.state.Status() == view.StatusError {
		p.log.WithField("panel", p.id).Warn(m.state.Message())
	} else {
		p.log.WithField("panel", p.id).Debug("panel loaded")
	}
	return true
}

func (p *panel[T]) loading() bool {
	return p.state.Status() == view.StatusLoading
}
