package tui

import (
	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/view"
)

type searchDoneMsg struct {
	topic  string
	result api.SearchResult
	err    error
}

// panelLoadedMsg carries a finished fetch back to the panel that issued it.
type panelLoadedMsg[T any] struct {
	id    panelID
	state view.State[T]
}

type openErrMsg struct {
	err error
}
