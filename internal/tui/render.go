package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/newsdesk/internal/view"
)

// RenderOpts controls how a view model is drawn.
type RenderOpts struct {
	Width       int
	Height      int // 0 disables clipping
	Cursor      int // index of the selected card, -1 for none
	Spinner     string
	Interactive bool // show key hints for refresh/retry
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func keyHint(key, label string) string {
	return keyHintStyle.Render("["+key+"]") + " " + label
}

func loadingLine(msg string, o RenderOpts) string {
	if o.Spinner != "" {
		return o.Spinner + " " + messageStyle.Render(msg)
	}
	return messageStyle.Render(msg)
}

func renderError(msg string, o RenderOpts) string {
	out := errorStyle.Render("✗ " + msg)
	if o.Interactive {
		out += "\n" + keyHint("r", "Retry")
	}
	return out
}

func renderCard(c view.Card, selected bool, width int) string {
	if width < 10 {
		width = 80
	}

	var lines []string
	if selected {
		lines = append(lines, cardSelectedStyle.Render("> "+truncateStr(c.Title, width-2)))
	} else {
		lines = append(lines, cardTitleStyle.Render("  "+truncateStr(c.Title, width-2)))
	}

	body := lipgloss.NewStyle().PaddingLeft(2).Width(width)
	if c.Description != "" {
		lines = append(lines, body.Render(cardBodyStyle.Render(c.Description)))
	}

	var meta []string
	if c.Source != "" {
		meta = append(meta, cardSourceStyle.Render(c.Source))
	}
	if c.Published != "" {
		meta = append(meta, cardMetaStyle.Render(c.Published))
	}
	if len(meta) > 0 {
		lines = append(lines, "  "+strings.Join(meta, cardMetaStyle.Render(" · ")))
	}
	if c.URL != "" {
		lines = append(lines, "  "+cardLinkStyle.Render(truncateStr(c.URL, width-2)))
	}
	return strings.Join(lines, "\n")
}

// windowBlocks joins blocks with blank lines, keeping the cursor's block
// visible when the total exceeds height.
func windowBlocks(blocks []string, cursor, height int) string {
	if len(blocks) == 0 {
		return ""
	}
	if height <= 0 {
		return strings.Join(blocks, "\n\n")
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(blocks) {
		cursor = len(blocks) - 1
	}

	heights := make([]int, len(blocks))
	for i, b := range blocks {
		heights[i] = lipgloss.Height(b) + 1 // blank separator
	}

	start, used := 0, 0
	for i := 0; i <= cursor; i++ {
		used += heights[i]
	}
	for used > height && start < cursor {
		used -= heights[start]
		start++
	}
	end := cursor + 1
	for end < len(blocks) && used+heights[end] <= height {
		used += heights[end]
		end++
	}
	return strings.Join(blocks[start:end], "\n\n")
}

func renderCards(cards []view.Card, o RenderOpts, height int) string {
	blocks := make([]string, len(cards))
	for i, c := range cards {
		blocks[i] = renderCard(c, i == o.Cursor, o.Width)
	}
	return windowBlocks(blocks, o.Cursor, height)
}

// RenderResults draws the search results pane.
func RenderResults(v view.ResultsView, o RenderOpts) string {
	switch v.Kind {
	case view.ResultsLoading:
		return loadingLine(v.Message, o)
	case view.ResultsPrompt, view.ResultsEmpty:
		return messageStyle.Render(v.Message)
	}
	header := sectionTitleStyle.Render(v.Header)
	bodyHeight := 0
	if o.Height > 0 {
		bodyHeight = max(1, o.Height-2)
	}
	return header + "\n\n" + renderCards(v.Cards, o, bodyHeight)
}

// RenderTrending draws the trending panel.
func RenderTrending(v view.TrendingView, o RenderOpts) string {
	title := sectionTitleStyle.Render("Trending News")
	switch {
	case v.Status == view.StatusLoading:
		return title + "\n" + loadingLine(v.Message, o)
	case v.Status == view.StatusError:
		return title + "\n" + renderError(v.Message, o)
	}

	if o.Interactive {
		title += "  " + keyHint("r", "Refresh")
	}
	if v.Empty {
		return title + "\n" + messageStyle.Render(v.Message)
	}
	bodyHeight := 0
	if o.Height > 0 {
		bodyHeight = max(1, o.Height-2)
	}
	return title + "\n\n" + renderCards(v.Cards, o, bodyHeight)
}

// RenderHistory draws the search history panel.
func RenderHistory(v view.HistoryView, o RenderOpts) string {
	title := sectionTitleStyle.Render(v.Title)
	switch {
	case v.Status == view.StatusLoading:
		return title + "\n" + loadingLine(v.Message, o)
	case v.Status == view.StatusError:
		return title + "\n" + renderError(v.Message, o)
	}

	if o.Interactive {
		title += "  " + keyHint("r", "Refresh")
	}
	if v.Empty {
		return title + "\n" + messageStyle.Render(v.Message)
	}

	width := o.Width
	if width < 10 {
		width = 80
	}
	entries := v.Entries
	// Two lines per entry below the title
	if o.Height > 0 {
		if fit := (o.Height - 1) / 2; fit < len(entries) {
			entries = entries[:max(1, fit)]
		}
	}
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, cardTitleStyle.Render("  "+truncateStr(e.Topic, width-2))+"\n    "+cardMetaStyle.Render(e.SearchedAt))
	}
	return title + "\n" + strings.Join(items, "\n")
}
