package events

import (
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// UnknownEvent preserves frames whose type is unrecognized or whose
// payload does not decode. Raw holds the original frame.
type UnknownEvent struct {
	Type string
	Raw  json.RawMessage
}

func (u *UnknownEvent) EventType() string { return u.Type }

// serverRegistry constructors take the base so every constructed event
// carries its discriminant before the payload is unmarshaled.
var serverRegistry = map[string]func(BaseEvent) Event{
	TypeError:                              func(b BaseEvent) Event { return &ErrorEvent{BaseEvent: b} },
	TypeSessionCreated:                     func(b BaseEvent) Event { return &SessionCreatedEvent{BaseEvent: b} },
	TypeSessionUpdated:                     func(b BaseEvent) Event { return &SessionUpdatedEvent{BaseEvent: b} },
	TypeConversationCreated:                func(b BaseEvent) Event { return &ConversationCreatedEvent{BaseEvent: b} },
	TypeConversationItemCreated:            func(b BaseEvent) Event { return &ConversationItemCreatedEvent{BaseEvent: b} },
	TypeConversationItemRetrieved:          func(b BaseEvent) Event { return &ConversationItemRetrievedEvent{BaseEvent: b} },
	TypeConversationItemTruncated:          func(b BaseEvent) Event { return &ConversationItemTruncatedEvent{BaseEvent: b} },
	TypeConversationItemDeleted:            func(b BaseEvent) Event { return &ConversationItemDeletedEvent{BaseEvent: b} },
	TypeInputAudioBufferCommitted:          func(b BaseEvent) Event { return &InputAudioBufferCommittedEvent{BaseEvent: b} },
	TypeInputAudioBufferCleared:            func(b BaseEvent) Event { return &InputAudioBufferClearedEvent{BaseEvent: b} },
	TypeInputAudioBufferSpeechStarted:      func(b BaseEvent) Event { return &SpeechStartedEvent{BaseEvent: b} },
	TypeInputAudioBufferSpeechStopped:      func(b BaseEvent) Event { return &SpeechStoppedEvent{BaseEvent: b} },
	TypeOutputAudioBufferStarted:           func(b BaseEvent) Event { return &OutputAudioBufferStartedEvent{BaseEvent: b} },
	TypeOutputAudioBufferStopped:           func(b BaseEvent) Event { return &OutputAudioBufferStoppedEvent{BaseEvent: b} },
	TypeOutputAudioBufferCleared:           func(b BaseEvent) Event { return &OutputAudioBufferClearedEvent{BaseEvent: b} },
	TypeResponseCreated:                    func(b BaseEvent) Event { return &ResponseCreatedEvent{BaseEvent: b} },
	TypeResponseDone:                       func(b BaseEvent) Event { return &ResponseDoneEvent{BaseEvent: b} },
	TypeResponseOutputItemAdded:            func(b BaseEvent) Event { return &ResponseOutputItemAddedEvent{BaseEvent: b} },
	TypeResponseOutputItemDone:             func(b BaseEvent) Event { return &ResponseOutputItemDoneEvent{BaseEvent: b} },
	TypeResponseContentPartAdded:           func(b BaseEvent) Event { return &ResponseContentPartAddedEvent{BaseEvent: b} },
	TypeResponseContentPartDone:            func(b BaseEvent) Event { return &ResponseContentPartDoneEvent{BaseEvent: b} },
	TypeResponseTextDelta:                  func(b BaseEvent) Event { return &ResponseTextDeltaEvent{BaseEvent: b} },
	TypeResponseTextDone:                   func(b BaseEvent) Event { return &ResponseTextDoneEvent{BaseEvent: b} },
	TypeResponseAudioDelta:                 func(b BaseEvent) Event { return &ResponseAudioDeltaEvent{BaseEvent: b} },
	TypeResponseAudioDone:                  func(b BaseEvent) Event { return &ResponseAudioDoneEvent{BaseEvent: b} },
	TypeResponseAudioTranscriptDelta:       func(b BaseEvent) Event { return &ResponseAudioTranscriptDeltaEvent{BaseEvent: b} },
	TypeResponseAudioTranscriptDone:        func(b BaseEvent) Event { return &ResponseAudioTranscriptDoneEvent{BaseEvent: b} },
	TypeResponseFunctionCallArgumentsDelta: func(b BaseEvent) Event { return &ResponseFunctionCallArgumentsDeltaEvent{BaseEvent: b} },
	TypeResponseFunctionCallArgumentsDone:  func(b BaseEvent) Event { return &ResponseFunctionCallArgumentsDoneEvent{BaseEvent: b} },
	TypeRateLimitsUpdated:                  func(b BaseEvent) Event { return &RateLimitsUpdatedEvent{BaseEvent: b} },
}

// ParseServer decodes a server frame into its concrete event type.
// Frames with an unrecognized type, a missing discriminant or a payload
// that does not decode come back as *UnknownEvent; ParseServer never
// returns an error for malformed input.
func ParseServer(data []byte) Event {
	t := gjson.GetBytes(data, "type").String()
	ctor, ok := serverRegistry[t]
	if !ok {
		return &UnknownEvent{Type: t, Raw: append(json.RawMessage(nil), data...)}
	}
	ev := ctor(BaseEvent{Type: t})
	if err := json.Unmarshal(data, ev); err != nil {
		return &UnknownEvent{Type: t, Raw: append(json.RawMessage(nil), data...)}
	}
	return ev
}
