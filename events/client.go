package events

import "github.com/oaitools/openaitools-go/tool"

// Client event type discriminants.
const (
	TypeSessionUpdate            = "session.update"
	TypeConversationItemCreate   = "conversation.item.create"
	TypeConversationItemRetrieve = "conversation.item.retrieve"
	TypeConversationItemTruncate = "conversation.item.truncate"
	TypeConversationItemDelete   = "conversation.item.delete"
	TypeInputAudioBufferAppend   = "input_audio_buffer.append"
	TypeInputAudioBufferCommit   = "input_audio_buffer.commit"
	TypeInputAudioBufferClear    = "input_audio_buffer.clear"
	TypeOutputAudioBufferClear   = "output_audio_buffer.clear"
	TypeResponseCreate           = "response.create"
	TypeResponseCancel           = "response.cancel"
)

type SessionUpdateEvent struct {
	BaseEvent
	Session SessionConfig `json:"session"`
}

func NewSessionUpdate(cfg SessionConfig) *SessionUpdateEvent {
	return &SessionUpdateEvent{BaseEvent: NewBaseEvent(TypeSessionUpdate), Session: cfg}
}

type ConversationItemCreateEvent struct {
	BaseEvent
	PreviousItemID string           `json:"previous_item_id,omitempty"`
	Item           ConversationItem `json:"item"`
}

func NewConversationItemCreate(item ConversationItem) *ConversationItemCreateEvent {
	return &ConversationItemCreateEvent{BaseEvent: NewBaseEvent(TypeConversationItemCreate), Item: item}
}

type ConversationItemRetrieveEvent struct {
	BaseEvent
	ItemID string `json:"item_id"`
}

func NewConversationItemRetrieve(itemID string) *ConversationItemRetrieveEvent {
	return &ConversationItemRetrieveEvent{BaseEvent: NewBaseEvent(TypeConversationItemRetrieve), ItemID: itemID}
}

type ConversationItemTruncateEvent struct {
	BaseEvent
	ItemID       string `json:"item_id"`
	ContentIndex int    `json:"content_index"`
	AudioEndMs   int    `json:"audio_end_ms"`
}

func NewConversationItemTruncate(itemID string, contentIndex, audioEndMs int) *ConversationItemTruncateEvent {
	return &ConversationItemTruncateEvent{
		BaseEvent:    NewBaseEvent(TypeConversationItemTruncate),
		ItemID:       itemID,
		ContentIndex: contentIndex,
		AudioEndMs:   audioEndMs,
	}
}

type ConversationItemDeleteEvent struct {
	BaseEvent
	ItemID string `json:"item_id"`
}

func NewConversationItemDelete(itemID string) *ConversationItemDeleteEvent {
	return &ConversationItemDeleteEvent{BaseEvent: NewBaseEvent(TypeConversationItemDelete), ItemID: itemID}
}

type InputAudioBufferAppendEvent struct {
	BaseEvent
	Audio string `json:"audio"`
}

// NewInputAudioBufferAppend takes base64 encoded audio in the session
// input format.
func NewInputAudioBufferAppend(audio string) *InputAudioBufferAppendEvent {
	return &InputAudioBufferAppendEvent{BaseEvent: NewBaseEvent(TypeInputAudioBufferAppend), Audio: audio}
}

type InputAudioBufferCommitEvent struct {
	BaseEvent
}

func NewInputAudioBufferCommit() *InputAudioBufferCommitEvent {
	return &InputAudioBufferCommitEvent{BaseEvent: NewBaseEvent(TypeInputAudioBufferCommit)}
}

type InputAudioBufferClearEvent struct {
	BaseEvent
}

func NewInputAudioBufferClear() *InputAudioBufferClearEvent {
	return &InputAudioBufferClearEvent{BaseEvent: NewBaseEvent(TypeInputAudioBufferClear)}
}

type OutputAudioBufferClearEvent struct {
	BaseEvent
}

func NewOutputAudioBufferClear() *OutputAudioBufferClearEvent {
	return &OutputAudioBufferClearEvent{BaseEvent: NewBaseEvent(TypeOutputAudioBufferClear)}
}

// ResponseCreateConfig overrides session defaults for one response.
// Conversation set to "none" produces an out-of-band response that does
// not join the default conversation.
type ResponseCreateConfig struct {
	Modalities        []Modality         `json:"modalities,omitempty"`
	Instructions      string             `json:"instructions,omitempty"`
	Voice             Voice              `json:"voice,omitempty"`
	OutputAudioFormat AudioFormat        `json:"output_audio_format,omitempty"`
	Tools             []tool.Tool        `json:"tools,omitempty"`
	ToolChoice        any                `json:"tool_choice,omitempty"`
	Temperature       *float64           `json:"temperature,omitempty"`
	MaxOutputTokens   *MaxTokens         `json:"max_output_tokens,omitempty"`
	Conversation      string             `json:"conversation,omitempty"`
	Metadata          map[string]string  `json:"metadata,omitempty"`
	Input             []ConversationItem `json:"input,omitempty"`
}

type ResponseCreateEvent struct {
	BaseEvent
	Response *ResponseCreateConfig `json:"response,omitempty"`
}

func NewResponseCreate(cfg *ResponseCreateConfig) *ResponseCreateEvent {
	return &ResponseCreateEvent{BaseEvent: NewBaseEvent(TypeResponseCreate), Response: cfg}
}

type ResponseCancelEvent struct {
	BaseEvent
	ResponseID string `json:"response_id,omitempty"`
}

func NewResponseCancel(responseID string) *ResponseCancelEvent {
	return &ResponseCancelEvent{BaseEvent: NewBaseEvent(TypeResponseCancel), ResponseID: responseID}
}
