// Package apierr defines the error types shared by all API surfaces.
package apierr

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionClosed is returned by realtime send operations after the
	// session left the open state.
	ErrSessionClosed = errors.New("session is closed")

	// ErrMissingAPIKey is returned when no credential could be resolved
	// from options or the environment.
	ErrMissingAPIKey = errors.New("missing API key")
)

// ConfigError reports invalid or incomplete client configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config: %s", e.Reason)
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// APIError is the decoded vendor error envelope for non-2xx responses.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	Param      string `json:"param,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a network-level failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("transport: %s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be decoded.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.What, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// SendError reports a failed realtime send.
type SendError struct {
	EventType string
	Err       error
}

func (e *SendError) Error() string { return fmt.Sprintf("send %s: %v", e.EventType, e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// ReceiveError reports an abnormal termination of the realtime receive loop.
type ReceiveError struct {
	Err error
}

func (e *ReceiveError) Error() string { return fmt.Sprintf("receive: %v", e.Err) }
func (e *ReceiveError) Unwrap() error { return e.Err }
