package view

import (
	"fmt"

	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/locale"
)

const (
	MsgHistoryLoading = "Loading history..."
	MsgHistoryEmpty   = "No search history yet. Start searching for news!"
)

type HistoryItem struct {
	ID         int
	Topic      string
	SearchedAt string // locale date and time
}

// HistoryView is the rendered history panel. Title mentions the server cap
// once entries have loaded.
type HistoryView struct {
	Status  Status
	Title   string
	Message string
	Empty   bool
	Entries []HistoryItem
}

// History maps whatever entries it is given, in the given order. The server
// enforces the cap; limit only feeds the title.
func History(state State[[]api.HistoryEntry], limit int, f *locale.Formatter) HistoryView {
	title := "Search History"
	switch state.Status() {
	case StatusLoading:
		return HistoryView{Status: StatusLoading, Title: title, Message: MsgHistoryLoading}
	case StatusError:
		return HistoryView{Status: StatusError, Title: title, Message: state.Message()}
	}

	if limit > 0 {
		title = fmt.Sprintf("%s (Last %d)", title, limit)
	}

	entries, _ := state.Data()
	if len(entries) == 0 {
		return HistoryView{Status: StatusReady, Title: title, Empty: true, Message: MsgHistoryEmpty}
	}

	items := make([]HistoryItem, len(entries))
	for i, e := range entries {
		items[i] = HistoryItem{
			ID:         e.ID,
			Topic:      e.Topic,
			SearchedAt: f.DateTime(e.SearchedAt),
		}
	}
	return HistoryView{Status: StatusReady, Title: title, Entries: items}
}
