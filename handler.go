package openaitools

import (
	"context"

	"github.com/oaitools/openaitools-go/events"
)

// Handler routes server events to optional callbacks. Unset callbacks
// fall through to OnEvent when present, otherwise the event is dropped.
type Handler struct {
	OnSessionCreated    func(*events.SessionCreatedEvent)
	OnSessionUpdated    func(*events.SessionUpdatedEvent)
	OnItemCreated       func(*events.ConversationItemCreatedEvent)
	OnSpeechStarted     func(*events.SpeechStartedEvent)
	OnSpeechStopped     func(*events.SpeechStoppedEvent)
	OnInputCommitted    func(*events.InputAudioBufferCommittedEvent)
	OnResponseCreated   func(*events.ResponseCreatedEvent)
	OnResponseDone      func(*events.ResponseDoneEvent)
	OnTextDelta         func(*events.ResponseTextDeltaEvent)
	OnTextDone          func(*events.ResponseTextDoneEvent)
	OnAudioDelta        func(*events.ResponseAudioDeltaEvent)
	OnAudioDone         func(*events.ResponseAudioDoneEvent)
	OnTranscriptDelta   func(*events.ResponseAudioTranscriptDeltaEvent)
	OnTranscriptDone    func(*events.ResponseAudioTranscriptDoneEvent)
	OnFunctionArgsDelta func(*events.ResponseFunctionCallArgumentsDeltaEvent)
	OnFunctionArgsDone  func(*events.ResponseFunctionCallArgumentsDoneEvent)
	OnRateLimits        func(*events.RateLimitsUpdatedEvent)
	OnServerError       func(*events.ErrorEvent)
	OnEvent             func(events.Event)
}

// Dispatch routes one event. It reports whether a specific callback
// handled it.
func (h *Handler) Dispatch(ev events.Event) bool {
	switch e := ev.(type) {
	case *events.SessionCreatedEvent:
		if h.OnSessionCreated != nil {
			h.OnSessionCreated(e)
			return true
		}
	case *events.SessionUpdatedEvent:
		if h.OnSessionUpdated != nil {
			h.OnSessionUpdated(e)
			return true
		}
	case *events.ConversationItemCreatedEvent:
		if h.OnItemCreated != nil {
			h.OnItemCreated(e)
			return true
		}
	case *events.SpeechStartedEvent:
		if h.OnSpeechStarted != nil {
			h.OnSpeechStarted(e)
			return true
		}
	case *events.SpeechStoppedEvent:
		if h.OnSpeechStopped != nil {
			h.OnSpeechStopped(e)
			return true
		}
	case *events.InputAudioBufferCommittedEvent:
		if h.OnInputCommitted != nil {
			h.OnInputCommitted(e)
			return true
		}
	case *events.ResponseCreatedEvent:
		if h.OnResponseCreated != nil {
			h.OnResponseCreated(e)
			return true
		}
	case *events.ResponseDoneEvent:
		if h.OnResponseDone != nil {
			h.OnResponseDone(e)
			return true
		}
	case *events.ResponseTextDeltaEvent:
		if h.OnTextDelta != nil {
			h.OnTextDelta(e)
			return true
		}
	case *events.ResponseTextDoneEvent:
		if h.OnTextDone != nil {
			h.OnTextDone(e)
			return true
		}
	case *events.ResponseAudioDeltaEvent:
		if h.OnAudioDelta != nil {
			h.OnAudioDelta(e)
			return true
		}
	case *events.ResponseAudioDoneEvent:
		if h.OnAudioDone != nil {
			h.OnAudioDone(e)
			return true
		}
	case *events.ResponseAudioTranscriptDeltaEvent:
		if h.OnTranscriptDelta != nil {
			h.OnTranscriptDelta(e)
			return true
		}
	case *events.ResponseAudioTranscriptDoneEvent:
		if h.OnTranscriptDone != nil {
			h.OnTranscriptDone(e)
			return true
		}
	case *events.ResponseFunctionCallArgumentsDeltaEvent:
		if h.OnFunctionArgsDelta != nil {
			h.OnFunctionArgsDelta(e)
			return true
		}
	case *events.ResponseFunctionCallArgumentsDoneEvent:
		if h.OnFunctionArgsDone != nil {
			h.OnFunctionArgsDone(e)
			return true
		}
	case *events.RateLimitsUpdatedEvent:
		if h.OnRateLimits != nil {
			h.OnRateLimits(e)
			return true
		}
	case *events.ErrorEvent:
		if h.OnServerError != nil {
			h.OnServerError(e)
			return true
		}
	}
	if h.OnEvent != nil {
		h.OnEvent(ev)
		return true
	}
	return false
}

// Run drains the session through the handler until the session closes
// or ctx is cancelled. The terminal ReceiveError, if any, is returned.
func (h *Handler) Run(ctx context.Context, s *Session) error {
	for {
		ev, err := s.Recv(ctx)
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}
		h.Dispatch(ev)
	}
}
