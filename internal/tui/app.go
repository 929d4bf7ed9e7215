package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/locale"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/view"
	"github.com/sirupsen/logrus"
)

// NewsClient is the backend the UI reads from. *api.Client implements it.
type NewsClient interface {
	Search(ctx context.Context, topic string) (api.SearchResult, error)
	Trending(ctx context.Context) (api.TrendingResult, error)
	History(ctx context.Context) ([]api.HistoryEntry, error)
}

// URLOpener opens an article link outside the terminal.
type URLOpener interface {
	Open(rawURL string) error
}

type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
	focusTrending
	focusHistory
	focusCount
)

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Client    NewsClient
	Formatter *locale.Formatter
	Opener    URLOpener
	Log       logrus.FieldLogger

	TrendingLimit    int
	DescriptionLimit int
	HistoryLimit     int
}

type App struct {
	opts RunOpts
	log  logrus.FieldLogger

	search   searchBox
	results  *api.SearchResult
	trending panel[api.TrendingResult]
	history  panel[[]api.HistoryEntry]

	focus          focusArea
	resultsCursor  int
	trendingCursor int

	spinner spinner.Model
	ticking bool
	width   int
	height  int
	openErr error
	curDate string
}

func NewApp(opts RunOpts) *App {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	if opts.Formatter == nil {
		opts.Formatter = locale.New(locale.Default, nil)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	a := &App{
		opts:     opts,
		log:      log,
		search:   newSearchBox(opts.Client.Search),
		trending: newPanel(panelTrending, opts.Client.Trending, log),
		history:  newPanel(panelHistory, opts.Client.History, log),
		focus:    focusSearch,
		spinner:  sp,
		curDate:  time.Now().Format("Jan 2"),
	}
	a.search.focus()
	return a
}

// Init loads trending and history; the two fetches race and land in
// separate panels.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.trending.load(), a.history.load(), a.startSpinner(), textinput.Blink)
}

func (a *App) startSpinner() tea.Cmd {
	if a.ticking {
		return nil
	}
	a.ticking = true
	return a.spinner.Tick
}

func (a *App) anyLoading() bool {
	return a.search.submitting() || a.trending.loading() || a.history.loading()
}

func openURLCmd(o URLOpener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := o.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.openErr = nil
		return a.handleKey(msg)

	case searchDoneMsg:
		return a, a.handleSearchDone(msg)

	case panelLoadedMsg[api.TrendingResult]:
		if a.trending.apply(msg) {
			a.trendingCursor = clampCursor(a.trendingCursor, len(a.trendingView().Cards))
		}
		return a, nil

	case panelLoadedMsg[[]api.HistoryEntry]:
		a.history.apply(msg)
		return a, nil

	case openErrMsg:
		a.openErr = msg.err
		a.log.WithError(msg.err).Warn("opening article failed")
		return a, nil

	case spinner.TickMsg:
		if !a.anyLoading() {
			a.ticking = false
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	}

	if a.focus == focusSearch {
		return a, a.search.update(msg)
	}
	return a, nil
}

func (a *App) handleSearchDone(msg searchDoneMsg) tea.Cmd {
	log := a.log.WithField("topic", msg.topic)
	result := a.search.resolve(msg)
	if result == nil {
		log.WithError(msg.err).Warn("search failed")
		if a.focus == focusSearch {
			return a.search.focus()
		}
		return nil
	}

	log.WithField("articles", len(result.Articles)).Info("search done")
	a.results = result
	a.resultsCursor = 0

	// The backend records every search, so history is now stale.
	cmds := []tea.Cmd{a.history.load(), a.startSpinner()}
	if a.focus == focusSearch {
		cmds = append(cmds, a.search.focus())
	}
	return tea.Batch(cmds...)
}

func (a *App) setFocus(f focusArea) tea.Cmd {
	a.focus = f
	if f == focusSearch {
		return a.search.focus()
	}
	a.search.blur()
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab":
		return a, a.setFocus((a.focus + 1) % focusCount)
	case "shift+tab":
		return a, a.setFocus((a.focus + focusCount - 1) % focusCount)
	}

	if a.focus == focusSearch {
		switch msg.String() {
		case "enter":
			cmd := a.search.submit()
			if cmd == nil {
				return a, nil
			}
			return a, tea.Batch(cmd, a.startSpinner())
		case "esc":
			return a, a.setFocus(focusResults)
		}
		return a, a.search.update(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "/":
		return a, a.setFocus(focusSearch)
	case "j", "down":
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		a.moveCursor(-1)
		return a, nil
	case "o", "enter":
		if url := a.selectedURL(); url != "" && a.opts.Opener != nil {
			return a, openURLCmd(a.opts.Opener, url)
		}
		return a, nil
	case "r":
		switch a.focus {
		case focusTrending:
			return a, tea.Batch(a.trending.load(), a.startSpinner())
		case focusHistory:
			return a, tea.Batch(a.history.load(), a.startSpinner())
		}
		return a, nil
	case "R":
		return a, tea.Batch(a.trending.load(), a.history.load(), a.startSpinner())
	}
	return a, nil
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func (a *App) moveCursor(delta int) {
	switch a.focus {
	case focusResults:
		a.resultsCursor = clampCursor(a.resultsCursor+delta, len(a.resultsView().Cards))
	case focusTrending:
		a.trendingCursor = clampCursor(a.trendingCursor+delta, len(a.trendingView().Cards))
	}
}

func (a *App) selectedURL() string {
	var cards []view.Card
	cursor := 0
	switch a.focus {
	case focusResults:
		cards, cursor = a.resultsView().Cards, a.resultsCursor
	case focusTrending:
		cards, cursor = a.trendingView().Cards, a.trendingCursor
	}
	if cursor < len(cards) {
		return cards[cursor].URL
	}
	return ""
}

func (a *App) resultsView() view.ResultsView {
	return view.Results(a.results, a.search.submitting(), a.opts.Formatter)
}

func (a *App) trendingView() view.TrendingView {
	return view.Trending(a.trending.state, view.TrendingOptions{
		Limit:            a.opts.TrendingLimit,
		DescriptionLimit: a.opts.DescriptionLimit,
	})
}

func (a *App) historyView() view.HistoryView {
	return view.History(a.history.state, a.opts.HistoryLimit, a.opts.Formatter)
}

func (a *App) pane(content string, focused bool, width, height int) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	return style.Width(width - 2).Height(height).MaxHeight(height + 2).Render(content)
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdesk")
	}

	headerLeft := headerStyle.Render("newsdesk")
	headerRight := headerDateStyle.Render(a.curDate)
	headerGap := max(0, a.width-lipgloss.Width(headerLeft)-lipgloss.Width(headerRight))
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	leftWidth := int(float64(a.width) * 0.6)
	rightWidth := a.width - leftWidth
	bodyHeight := max(8, a.height-2) // header + status bar

	spin := a.spinner.View()
	inner := func(w int) int { return max(10, w-4) } // border + padding

	searchContent := a.search.view(inner(leftWidth))
	searchHeight := lipgloss.Height(searchContent)
	resultsHeight := max(3, bodyHeight-searchHeight-4)

	resultsCursor := -1
	if a.focus == focusResults {
		resultsCursor = a.resultsCursor
	}
	resultsContent := RenderResults(a.resultsView(), RenderOpts{
		Width: inner(leftWidth), Height: resultsHeight, Cursor: resultsCursor, Spinner: spin, Interactive: true,
	})

	left := lipgloss.JoinVertical(lipgloss.Left,
		a.pane(searchContent, a.focus == focusSearch, leftWidth, searchHeight),
		a.pane(resultsContent, a.focus == focusResults, leftWidth, resultsHeight),
	)

	trendingHeight := max(3, (bodyHeight-4)*3/5)
	historyHeight := max(3, bodyHeight-trendingHeight-4)

	trendingCursor := -1
	if a.focus == focusTrending {
		trendingCursor = a.trendingCursor
	}
	trendingContent := RenderTrending(a.trendingView(), RenderOpts{
		Width: inner(rightWidth), Height: trendingHeight, Cursor: trendingCursor, Spinner: spin, Interactive: true,
	})
	historyContent := RenderHistory(a.historyView(), RenderOpts{
		Width: inner(rightWidth), Height: historyHeight, Cursor: -1, Spinner: spin, Interactive: true,
	})

	right := lipgloss.JoinVertical(lipgloss.Left,
		a.pane(trendingContent, a.focus == focusTrending, rightWidth, trendingHeight),
		a.pane(historyContent, a.focus == focusHistory, rightWidth, historyHeight),
	)

	content := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	statusLeft := ""
	if a.results != nil {
		statusLeft = fmt.Sprintf(" %d articles", len(a.results.Articles))
	}
	status := renderStatusBar(statusLeft, a.focus, a.width)
	if a.openErr != nil {
		status = errorStyle.Render(a.openErr.Error())
	}

	return strings.Join([]string{header, content, status}, "\n")
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
