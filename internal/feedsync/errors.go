// ABOUTME: Error kinds surfaced by the sync engine
// ABOUTME: Maps each kind to the one-line message shown to users

package feedsync

import (
	"errors"
	"fmt"

	"github.com/harper/curio/internal/fetch"
	"github.com/harper/curio/internal/parse"
)

// ErrNoItemScheduled means the feed resolved no item for today.
var ErrNoItemScheduled = errors.New("no item scheduled for today")

// NetworkError is returned when the feed could not be retrieved and no
// cached copy exists.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// CachedFallbackError marks a fetch that failed but was answered from the
// cache. It is a warning, never the error result of a call.
type CachedFallbackError struct {
	Err error
}

func (e *CachedFallbackError) Error() string {
	return fmt.Sprintf("using cached content: %v", e.Err)
}

func (e *CachedFallbackError) Unwrap() error {
	return e.Err
}

// User-facing messages.
const (
	MsgNetwork           = "Unable to fetch today's curiosity. Please check your connection."
	MsgCachedFallback    = "Using cached content. Check your connection for updates."
	MsgInvalidResponse   = "Received an invalid response from the server."
	MsgNoItemScheduled   = "No curiosity scheduled for today. Check back tomorrow!"
	msgHTTPErrorTemplate = "Server error (code %d). Please try again later."
)

// Message returns the one-line human-readable text for err. Having nothing
// to show outranks a fallback warning, which in turn outranks whatever
// caused the fallback; otherwise the most specific cause wins.
func Message(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrNoItemScheduled) {
		return MsgNoItemScheduled
	}
	var fallback *CachedFallbackError
	if errors.As(err, &fallback) {
		return MsgCachedFallback
	}

	var httpErr *fetch.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Sprintf(msgHTTPErrorTemplate, httpErr.StatusCode)
	}
	if errors.Is(err, parse.ErrInvalidResponse) {
		return MsgInvalidResponse
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return MsgNetwork
	}
	return err.Error()
}
