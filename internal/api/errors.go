package api

import (
	"encoding/json"
	"fmt"
)

// Op names a backend operation.
type Op string

const (
	OpSearch   Op = "search"
	OpTrending Op = "trending"
	OpHistory  Op = "history"
)

var fallbackMessages = map[Op]string{
	OpSearch:   "Failed to search news",
	OpTrending: "Failed to get trending news",
	OpHistory:  "Failed to get search history",
}

// FallbackMessage is the message shown when the backend gave no detail.
func FallbackMessage(op Op) string {
	if msg, ok := fallbackMessages[op]; ok {
		return msg
	}
	return fmt.Sprintf("Failed to %s", op)
}

// Error is returned by every Client call that does not succeed. Its message is
// the backend's detail when one was sent, otherwise the operation's fallback.
// Status and the wrapped cause are kept for logging.
type Error struct {
	Op     Op
	Status int // 0 for transport and decode failures
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return FallbackMessage(e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// parseDetail extracts a FastAPI-style {"detail": "..."} message. Validation
// errors carry a list in detail; those, and anything else, yield "".
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return detail
}
