package openaitools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oaitools/openaitools-go/events"
)

func TestDispatchRoutesToCallback(t *testing.T) {
	var gotDelta string
	var fallback int
	h := &Handler{
		OnTextDelta: func(e *events.ResponseTextDeltaEvent) { gotDelta = e.Delta },
		OnEvent:     func(events.Event) { fallback++ },
	}

	handled := h.Dispatch(&events.ResponseTextDeltaEvent{Delta: "chunk"})
	assert.True(t, handled)
	assert.Equal(t, "chunk", gotDelta)
	assert.Zero(t, fallback)
}

func TestDispatchFallsBackToOnEvent(t *testing.T) {
	var got events.Event
	h := &Handler{OnEvent: func(e events.Event) { got = e }}

	u := &events.UnknownEvent{Type: "something.new"}
	h.Dispatch(u)
	assert.Equal(t, u, got)

	// a typed event without its callback also falls through
	done := &events.ResponseDoneEvent{}
	h.Dispatch(done)
	assert.Equal(t, events.Event(done), got)
}

func TestDispatchNilCallbacks(t *testing.T) {
	h := &Handler{}
	assert.NotPanics(t, func() {
		h.Dispatch(&events.ResponseTextDeltaEvent{Delta: "x"})
		h.Dispatch(&events.ErrorEvent{})
		h.Dispatch(&events.UnknownEvent{Type: "y"})
	})
}

func TestDispatchServerError(t *testing.T) {
	var msg string
	h := &Handler{OnServerError: func(e *events.ErrorEvent) { msg = e.ErrorDetail.Message }}
	h.Dispatch(&events.ErrorEvent{ErrorDetail: events.ErrorDetail{Message: "boom"}})
	assert.Equal(t, "boom", msg)
}
