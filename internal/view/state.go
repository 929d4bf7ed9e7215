// Package view holds the per-panel fetch state and the pure mappings from
// backend data to displayable view models. Nothing here does I/O.
package view

// Status tags which variant of a State is active.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	}
	return "unknown"
}

// State is exactly one of Loading, Error(message) or Ready(data). The zero
// value is Loading.
type State[T any] struct {
	status  Status
	message string
	data    T
}

func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

func Failed[T any](message string) State[T] {
	return State[T]{status: StatusError, message: message}
}

func Ready[T any](data T) State[T] {
	return State[T]{status: StatusReady, data: data}
}

// Resolve turns a completed fetch into State: Failed with err's message when
// err is non-nil, Ready otherwise.
func Resolve[T any](data T, err error) State[T] {
	if err != nil {
		return Failed[T](err.Error())
	}
	return Ready(data)
}

func (s State[T]) Status() Status { return s.status }

// Message is the error text; empty unless Status is StatusError.
func (s State[T]) Message() string { return s.message }

// Data returns the payload and whether the state is Ready.
func (s State[T]) Data() (T, bool) {
	if s.status != StatusReady {
		var zero T
		return zero, false
	}
	return s.data, true
}
