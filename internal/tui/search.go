package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsdesk/internal/api"
)

// MsgEmptyTopic is shown when a search is submitted without a topic.
const MsgEmptyTopic = "Please enter a search topic"

type searchPhase int

const (
	searchIdle searchPhase = iota
	searchSubmitting
	searchErrorShown
)

// searchBox owns the topic input and its submit lifecycle. It does not keep
// results; a successful search is handed back to the caller.
type searchBox struct {
	input  textinput.Model
	phase  searchPhase
	err    string
	search func(ctx context.Context, topic string) (api.SearchResult, error)
}

func newSearchBox(search func(ctx context.Context, topic string) (api.SearchResult, error)) searchBox {
	ti := textinput.New()
	ti.Placeholder = "Enter topic (e.g., technology, python, AI...)"
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 200

	return searchBox{input: ti, search: search}
}

func (s *searchBox) submitting() bool {
	return s.phase == searchSubmitting
}

// submit validates the topic and starts the search. An empty topic never
// reaches the network.
func (s *searchBox) submit() tea.Cmd {
	if s.submitting() {
		return nil
	}
	topic := strings.TrimSpace(s.input.Value())
	if topic == "" {
		s.phase = searchErrorShown
		s.err = MsgEmptyTopic
		return nil
	}

	s.err = ""
	s.phase = searchSubmitting
	s.input.Blur()

	search := s.search
	return func() tea.Msg {
		result, err := search(context.Background(), topic)
		return searchDoneMsg{topic: topic, result: result, err: err}
	}
}

// resolve finishes a search. On success the input is cleared and the result
// returned for the results pane; on failure the topic stays for editing.
func (s *searchBox) resolve(msg searchDoneMsg) *api.SearchResult {
	if msg.err != nil {
		s.phase = searchErrorShown
		s.err = msg.err.Error()
		return nil
	}
	s.phase = searchIdle
	s.input.SetValue("")
	result := msg.result
	return &result
}

// update feeds keystrokes to the input; it is disabled while submitting.
func (s *searchBox) update(msg tea.Msg) tea.Cmd {
	if s.submitting() {
		return nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return cmd
}

func (s *searchBox) focus() tea.Cmd {
	if s.submitting() {
		return nil
	}
	return s.input.Focus()
}

func (s *searchBox) blur() {
	s.input.Blur()
}

func (s *searchBox) buttonLabel() string {
	if s.submitting() {
		return "Searching..."
	}
	return "Search"
}

func (s *searchBox) view(width int) string {
	button := buttonStyle.Render(s.buttonLabel())
	if s.submitting() {
		button = buttonBusyStyle.Render(s.buttonLabel())
	}
	s.input.Width = max(10, width-lipgloss.Width(button)-4)

	out := sectionTitleStyle.Render("Search News") + "\n" + s.input.View() + "  " + button
	if s.err != "" {
		out += "\n" + errorStyle.Render("✗ "+s.err)
	}
	return out
}
