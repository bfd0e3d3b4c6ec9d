package apierr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendErrorUnwrap(t *testing.T) {
	err := &SendError{EventType: "response.create", Err: ErrSessionClosed}
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Contains(t, err.Error(), "response.create")
}

func TestReceiveErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := &ReceiveError{Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 429, Code: "rate_limit_exceeded", Message: "slow down"}
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate_limit_exceeded")

	noCode := &APIError{StatusCode: 500, Message: "oops"}
	assert.Equal(t, "api error 500: oops", noCode.Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Field: "model", Reason: "required"}
	assert.Equal(t, "config: model: required", err.Error())

	bare := &ConfigError{Reason: "broken"}
	assert.Equal(t, "config: broken", bare.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := &TransportError{Op: "dial", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "dial")
}
