package view

import (
	"github.com/matheuskafuri/newsdesk/internal/api"
)

const (
	MsgTrendingLoading = "Loading trending articles..."
	MsgTrendingEmpty   = "No trending articles available"
)

// Ellipsis marks a description cut short.
const Ellipsis = "..."

type TrendingOptions struct {
	Limit            int // max cards shown
	DescriptionLimit int // max description runes before Ellipsis
}

// TrendingView is the rendered trending panel. Empty is only meaningful when
// Status is StatusReady.
type TrendingView struct {
	Status  Status
	Message string
	Empty   bool
	Cards   []Card
}

func Trending(state State[api.TrendingResult], opts TrendingOptions) TrendingView {
	switch state.Status() {
	case StatusLoading:
		return TrendingView{Status: StatusLoading, Message: MsgTrendingLoading}
	case StatusError:
		return TrendingView{Status: StatusError, Message: state.Message()}
	}

	data, _ := state.Data()
	if len(data.Articles) == 0 {
		return TrendingView{Status: StatusReady, Empty: true, Message: MsgTrendingEmpty}
	}

	articles := data.Articles
	if opts.Limit > 0 && len(articles) > opts.Limit {
		articles = articles[:opts.Limit]
	}
	cards := make([]Card, len(articles))
	for i, a := range articles {
		title := a.Title
		if title == "" {
			title = "Untitled"
		}
		cards[i] = Card{
			Title:       title,
			URL:         a.URL,
			Description: TruncateDescription(a.Description, opts.DescriptionLimit),
			Source:      a.Source,
		}
	}
	return TrendingView{Status: StatusReady, Cards: cards}
}

// TruncateDescription cuts s to n runes and appends Ellipsis when it is longer
// than n. A string of exactly n runes is returned as is; n <= 0 disables it.
func TruncateDescription(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + Ellipsis
}
