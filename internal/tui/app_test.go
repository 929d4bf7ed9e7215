package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/locale"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/view"
	"golang.org/x/text/language"
)

type fakeClient struct {
	mu            sync.Mutex
	searchTopics  []string
	trendingCalls int
	historyCalls  int

	searchResult api.SearchResult
	searchErr    error
	trending     api.TrendingResult
	trendingErr  error
	history      []api.HistoryEntry
	historyErr   error
}

func (f *fakeClient) Search(_ context.Context, topic string) (api.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchTopics = append(f.searchTopics, topic)
	return f.searchResult, f.searchErr
}

func (f *fakeClient) Trending(context.Context) (api.TrendingResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trendingCalls++
	return f.trending, f.trendingErr
}

func (f *fakeClient) History(context.Context) ([]api.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	return f.history, f.historyErr
}

func (f *fakeClient) counts() (search []string, trending, history int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchTopics...), f.trendingCalls, f.historyCalls
}

type fakeOpener struct {
	opened []string
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return nil
}

func newTestApp(c *fakeClient) *App {
	return NewApp(RunOpts{
		Client:           c,
		Formatter:        locale.New(language.AmericanEnglish, time.UTC),
		TrendingLimit:    6,
		DescriptionLimit: 120,
		HistoryLimit:     10,
	})
}

// collect runs cmd and any batched commands, returning their messages.
// Commands that wait on timers (cursor blink) are abandoned.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func firstOf[M any](msgs []tea.Msg) (M, bool) {
	for _, m := range msgs {
		if v, ok := m.(M); ok {
			return v, true
		}
	}
	var zero M
	return zero, false
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, s string) tea.Cmd {
	_, cmd := a.Update(key(s))
	return cmd
}

func TestSearchSubmitsTrimmedTopicAndForwardsResult(t *testing.T) {
	want := api.SearchResult{Articles: []api.Article{{Title: "A", URL: "http://x"}}, TotalResults: 1}
	c := &fakeClient{searchResult: want, history: []api.HistoryEntry{}}
	a := newTestApp(c)

	a.search.input.SetValue("  AI  ")
	msgs := collect(press(a, "enter"))

	if !a.search.submitting() {
		t.Fatal("expected search to be submitting")
	}
	if a.search.buttonLabel() != "Searching..." {
		t.Errorf("button label = %q", a.search.buttonLabel())
	}
	if got := a.resultsView().Kind; got != view.ResultsLoading {
		t.Errorf("results kind while searching = %v", got)
	}

	done, ok := firstOf[searchDoneMsg](msgs)
	if !ok {
		t.Fatal("expected a searchDoneMsg")
	}
	topics, _, _ := c.counts()
	if !reflect.DeepEqual(topics, []string{"AI"}) {
		t.Fatalf("search calls = %q, want exactly [AI]", topics)
	}

	_, cmd := a.Update(done)
	if a.search.submitting() || a.search.err != "" {
		t.Errorf("search should be idle without error, got phase %v err %q", a.search.phase, a.search.err)
	}
	if a.search.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", a.search.input.Value())
	}
	if a.results == nil || !reflect.DeepEqual(*a.results, want) {
		t.Errorf("results not forwarded unchanged: %+v", a.results)
	}

	rv := a.resultsView()
	if rv.Kind != view.ResultsPopulated || !strings.Contains(rv.Header, "1 found, showing 1") {
		t.Errorf("results view = %+v", rv)
	}
	if len(rv.Cards) != 1 || rv.Cards[0].Title != "A" {
		t.Errorf("cards = %+v", rv.Cards)
	}

	// A successful search refreshes history
	if _, ok := firstOf[panelLoadedMsg[[]api.HistoryEntry]](collect(cmd)); !ok {
		t.Error("expected history reload after search")
	}
	if _, _, hist := c.counts(); hist != 1 {
		t.Errorf("history calls = %d, want 1", hist)
	}
}

func TestSearchEmptyTopicDoesNotFetch(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		c := &fakeClient{}
		a := newTestApp(c)
		a.search.input.SetValue(input)

		cmd := press(a, "enter")
		collect(cmd)

		if topics, _, _ := c.counts(); len(topics) != 0 {
			t.Errorf("%q: expected no search call, got %q", input, topics)
		}
		if a.search.err != MsgEmptyTopic {
			t.Errorf("%q: error = %q, want %q", input, a.search.err, MsgEmptyTopic)
		}
		if a.search.submitting() {
			t.Errorf("%q: should not be submitting", input)
		}
	}
}

func TestSearchFailureKeepsTopic(t *testing.T) {
	c := &fakeClient{searchErr: &api.Error{Op: api.OpSearch}}
	a := newTestApp(c)
	a.search.input.SetValue("golang")

	done, ok := firstOf[searchDoneMsg](collect(press(a, "enter")))
	if !ok {
		t.Fatal("expected a searchDoneMsg")
	}
	a.Update(done)

	if a.search.err != "Failed to search news" {
		t.Errorf("error = %q", a.search.err)
	}
	if a.search.input.Value() != "golang" {
		t.Errorf("topic should be preserved, got %q", a.search.input.Value())
	}
	if a.search.submitting() {
		t.Error("input should be re-enabled")
	}
	if a.results != nil {
		t.Error("failed search must not replace results")
	}
}

func TestSearchClearsPreviousError(t *testing.T) {
	c := &fakeClient{searchResult: api.SearchResult{}}
	a := newTestApp(c)

	press(a, "enter")
	if a.search.err != MsgEmptyTopic {
		t.Fatalf("expected validation error first, got %q", a.search.err)
	}

	a.search.input.SetValue("go")
	press(a, "enter")
	if a.search.err != "" {
		t.Errorf("submitting a valid topic should clear the error, got %q", a.search.err)
	}
}

func TestSearchInputDisabledWhileSubmitting(t *testing.T) {
	c := &fakeClient{}
	a := newTestApp(c)
	a.search.input.SetValue("go")
	press(a, "enter")

	if cmd := a.search.submit(); cmd != nil {
		t.Error("second submit while in flight should be ignored")
	}
	press(a, "x")
	if a.search.input.Value() != "go" {
		t.Errorf("typing while submitting changed input to %q", a.search.input.Value())
	}
}

func TestInitLoadsTrendingAndHistory(t *testing.T) {
	c := &fakeClient{
		trending: api.TrendingResult{Articles: []api.Article{{Title: "Hot", URL: "https://hot"}}},
		history:  []api.HistoryEntry{{ID: 1, Topic: "ai", SearchedAt: "2024-03-05T10:00:00"}},
	}
	a := newTestApp(c)

	if a.trendingView().Status != view.StatusLoading || a.historyView().Status != view.StatusLoading {
		t.Fatal("panels should start loading")
	}

	for _, msg := range collect(a.Init()) {
		a.Update(msg)
	}

	if _, tr, hist := c.counts(); tr != 1 || hist != 1 {
		t.Errorf("calls: trending %d history %d, want 1 each", tr, hist)
	}
	if tv := a.trendingView(); tv.Status != view.StatusReady || len(tv.Cards) != 1 {
		t.Errorf("trending view = %+v", tv)
	}
	if hv := a.historyView(); hv.Status != view.StatusReady || len(hv.Entries) != 1 {
		t.Errorf("history view = %+v", hv)
	}
}

func TestTrendingErrorAndRetry(t *testing.T) {
	c := &fakeClient{trendingErr: errors.New("Service unavailable"), history: []api.HistoryEntry{}}
	a := newTestApp(c)
	for _, msg := range collect(a.Init()) {
		a.Update(msg)
	}

	tv := a.trendingView()
	if tv.Status != view.StatusError || tv.Message != "Service unavailable" {
		t.Fatalf("trending view = %+v", tv)
	}
	rendered := RenderTrending(tv, RenderOpts{Width: 60, Cursor: -1, Interactive: true})
	if !strings.Contains(rendered, "Service unavailable") || !strings.Contains(rendered, "Retry") {
		t.Errorf("rendered trending missing error or retry: %q", rendered)
	}

	// History is unaffected by the trending failure
	if a.historyView().Status != view.StatusReady {
		t.Errorf("history should be ready, got %v", a.historyView().Status)
	}

	c.mu.Lock()
	c.trendingErr = nil
	c.trending = api.TrendingResult{Articles: []api.Article{{Title: "Back", URL: "https://back"}}}
	c.mu.Unlock()

	a.setFocus(focusTrending)
	cmd := press(a, "r")
	if a.trendingView().Status != view.StatusLoading {
		t.Error("retry should reset trending to loading")
	}
	for _, msg := range collect(cmd) {
		a.Update(msg)
	}

	if _, tr, _ := c.counts(); tr != 2 {
		t.Errorf("trending calls = %d, want 2", tr)
	}
	if tv := a.trendingView(); tv.Status != view.StatusReady || tv.Cards[0].Title != "Back" {
		t.Errorf("trending after retry = %+v", tv)
	}
}

func TestHistoryEmptyScenario(t *testing.T) {
	c := &fakeClient{history: []api.HistoryEntry{}}
	a := newTestApp(c)
	for _, msg := range collect(a.Init()) {
		a.Update(msg)
	}

	hv := a.historyView()
	if hv.Status != view.StatusReady || !hv.Empty || hv.Message != view.MsgHistoryEmpty {
		t.Errorf("history view = %+v", hv)
	}
	if !strings.Contains(RenderHistory(hv, RenderOpts{Width: 60, Cursor: -1}), "No search history yet") {
		t.Error("rendered history missing empty message")
	}
}

func TestRefreshAllReloadsBothPanels(t *testing.T) {
	c := &fakeClient{history: []api.HistoryEntry{}}
	a := newTestApp(c)
	a.setFocus(focusResults)

	collect(press(a, "R"))
	if _, tr, hist := c.counts(); tr != 1 || hist != 1 {
		t.Errorf("calls: trending %d history %d, want 1 each", tr, hist)
	}
}

func TestPanelLastResolvedWins(t *testing.T) {
	p := newPanel(panelTrending, func(context.Context) (api.TrendingResult, error) {
		return api.TrendingResult{}, nil
	}, logger.Discard())

	first := panelLoadedMsg[api.TrendingResult]{id: panelTrending, state: view.Ready(api.TrendingResult{Articles: []api.Article{{Title: "first"}}})}
	second := panelLoadedMsg[api.TrendingResult]{id: panelTrending, state: view.Failed[api.TrendingResult]("late failure")}

	p.apply(first)
	p.apply(second)
	if p.state.Status() != view.StatusError || p.state.Message() != "late failure" {
		t.Errorf("expected last applied state to win, got %v %q", p.state.Status(), p.state.Message())
	}
}

func TestPanelIgnoresForeignMessages(t *testing.T) {
	a := newTestApp(&fakeClient{})

	if a.trending.apply(panelLoadedMsg[[]api.HistoryEntry]{id: panelHistory}) {
		t.Error("trending panel accepted a history message")
	}
	if a.trending.apply(panelLoadedMsg[api.TrendingResult]{id: panelHistory}) {
		t.Error("trending panel accepted a message addressed to history")
	}
	if !a.trending.loading() {
		t.Error("trending state changed on a foreign message")
	}
}

func TestOpenSelectedArticle(t *testing.T) {
	opener := &fakeOpener{}
	a := NewApp(RunOpts{Client: &fakeClient{}, Opener: opener, TrendingLimit: 6})
	a.results = &api.SearchResult{
		Articles:     []api.Article{{Title: "A", URL: "https://a"}, {Title: "B", URL: "https://b"}},
		TotalResults: 2,
	}
	a.setFocus(focusResults)

	press(a, "j")
	collect(press(a, "o"))

	if !reflect.DeepEqual(opener.opened, []string{"https://b"}) {
		t.Errorf("opened = %v", opener.opened)
	}
}

func TestFocusCycle(t *testing.T) {
	a := newTestApp(&fakeClient{})
	order := []focusArea{focusResults, focusTrending, focusHistory, focusSearch}
	for _, want := range order {
		press(a, "tab")
		if a.focus != want {
			t.Fatalf("focus = %v, want %v", a.focus, want)
		}
	}
}

func TestViewRendersPanels(t *testing.T) {
	c := &fakeClient{
		trending: api.TrendingResult{Articles: []api.Article{{Title: "Hot story", URL: "https://hot"}}},
		history:  []api.HistoryEntry{},
	}
	a := newTestApp(c)
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	for _, msg := range collect(a.Init()) {
		a.Update(msg)
	}

	out := a.View()
	for _, want := range []string{"newsdesk", "Search News", "Trending News", "Hot story", view.MsgResultsPrompt} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
