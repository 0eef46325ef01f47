// ABOUTME: Tests for error kinds and their user-facing messages
// ABOUTME: Checks precedence when errors wrap one another

package feedsync

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harper/curio/internal/fetch"
	"github.com/harper/curio/internal/parse"
)

func TestMessage(t *testing.T) {
	transport := errors.New("dial tcp: connection refused")
	httpErr := &fetch.HTTPError{StatusCode: 502}
	invalid := fmt.Errorf("%w: missing items", parse.ErrInvalidResponse)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"transport", &NetworkError{Err: transport}, MsgNetwork},
		{"http status", &NetworkError{Err: httpErr}, "Server error (code 502). Please try again later."},
		{"bare http status", httpErr, "Server error (code 502). Please try again later."},
		{"invalid payload", &NetworkError{Err: invalid}, MsgInvalidResponse},
		{"fallback over http", &CachedFallbackError{Err: httpErr}, MsgCachedFallback},
		{"fallback over transport", &CachedFallbackError{Err: transport}, MsgCachedFallback},
		{"no item", ErrNoItemScheduled, MsgNoItemScheduled},
		{"wrapped no item", fmt.Errorf("today: %w", ErrNoItemScheduled), MsgNoItemScheduled},
		{"no item from stale cache", errors.Join(ErrNoItemScheduled, &CachedFallbackError{Err: transport}), MsgNoItemScheduled},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message(tt.err))
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("cause")

	assert.ErrorIs(t, &NetworkError{Err: cause}, cause)
	assert.ErrorIs(t, &CachedFallbackError{Err: cause}, cause)
	assert.Contains(t, (&NetworkError{Err: cause}).Error(), "cause")
}
