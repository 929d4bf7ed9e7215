package view

import (
	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/locale"
)

const (
	MsgResultsLoading = "Loading news articles..."
	MsgResultsPrompt  = "Enter a topic above to search for news articles"
	MsgResultsEmpty   = "No articles found for this topic. Try a different search term."
)

// ResultsKind is the category of output the Results renderer produced.
type ResultsKind int

const (
	ResultsLoading ResultsKind = iota
	ResultsPrompt
	ResultsEmpty
	ResultsPopulated
)

// Card is the display form of one article.
type Card struct {
	Title       string
	URL         string
	Description string
	Source      string
	Published   string // locale date, empty when the article has none
}

// ResultsView is the rendered search results. Message is set for every kind
// except ResultsPopulated, which carries Header and Cards instead.
type ResultsView struct {
	Kind    ResultsKind
	Message string
	Header  string
	Cards   []Card
}

// Results maps the current search output to a view. It is pure: the same
// inputs always give the same view.
func Results(results *api.SearchResult, loading bool, f *locale.Formatter) ResultsView {
	switch {
	case loading:
		return ResultsView{Kind: ResultsLoading, Message: MsgResultsLoading}
	case results == nil:
		return ResultsView{Kind: ResultsPrompt, Message: MsgResultsPrompt}
	case len(results.Articles) == 0:
		return ResultsView{Kind: ResultsEmpty, Message: MsgResultsEmpty}
	}

	cards := make([]Card, len(results.Articles))
	for i, a := range results.Articles {
		cards[i] = articleCard(a, f)
	}
	return ResultsView{
		Kind:   ResultsPopulated,
		Header: f.Sprintf("Search Results (%d found, showing %d)", results.TotalResults, len(results.Articles)),
		Cards:  cards,
	}
}

func articleCard(a api.Article, f *locale.Formatter) Card {
	c := Card{
		Title:       a.Title,
		URL:         a.URL,
		Description: a.Description,
		Source:      a.Source,
	}
	if c.Title == "" {
		c.Title = "Untitled"
	}
	if a.PublishedAt != "" {
		c.Published = f.Date(a.PublishedAt)
	}
	return c
}
