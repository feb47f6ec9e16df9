package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsUpstream(Upstream(401, "Invalid credentials")))
	assert.True(t, IsUnavailable(Unavailable(errors.New("dial tcp"))))
	assert.True(t, IsInternal(Internal("boom")))

	assert.False(t, IsUpstream(errors.New("plain")))
	assert.False(t, IsUpstream(nil))
}

func TestPredicates_WrappedErrors(t *testing.T) {
	err := fmt.Errorf("login: %w", Upstream(401, "Invalid credentials"))
	assert.True(t, IsUpstream(err))
	assert.Equal(t, ErrCodeUpstream, GetCode(err))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"upstream message verbatim", Upstream(401, "Invalid credentials"), "Invalid credentials"},
		{"upstream without message", Upstream(500, ""), "fallback"},
		{"wrapped upstream", fmt.Errorf("call: %w", Upstream(400, "Invalid OTP")), "Invalid OTP"},
		{"unavailable", Unavailable(errors.New("dial tcp")), "fallback"},
		{"plain error", errors.New("boom"), "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "fallback"))
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeInternal, "wrapped")
	assert.True(t, IsInternal(err))
	assert.ErrorIs(t, err, cause)

	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}
