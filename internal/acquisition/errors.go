package acquisition

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus marks a non-2xx backend answer.
var ErrUnexpectedStatus = errors.New("unexpected status")

// FetchError is any transport, server or decoding failure of a backend call.
type FetchError struct {
	Op         string // start | stop | graph_time | graph_freq
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s %s: status %d: %v", e.Op, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
