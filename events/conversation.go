package events

// ItemStatus of a conversation item.
type ItemStatus string

const (
	ItemStatusCompleted  ItemStatus = "completed"
	ItemStatusInProgress ItemStatus = "in_progress"
	ItemStatusIncomplete ItemStatus = "incomplete"
)

// ContentPart is one fragment of item content. Type is one of
// input_text, input_audio, text, audio or item_reference.
type ContentPart struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Audio      string `json:"audio,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	ID         string `json:"id,omitempty"`
}

// InputText returns an input_text content part.
func InputText(text string) ContentPart { return ContentPart{Type: "input_text", Text: text} }

// InputAudio returns an input_audio content part with base64 PCM.
func InputAudio(audio string) ContentPart { return ContentPart{Type: "input_audio", Audio: audio} }

// ItemReference returns an item_reference content part.
func ItemReference(itemID string) ContentPart { return ContentPart{Type: "item_reference", ID: itemID} }

// ConversationItem is an entry of the session conversation. Type is one
// of message, function_call or function_call_output; the role and
// content fields apply to messages, the call fields to the other two.
type ConversationItem struct {
	ID      string        `json:"id,omitempty"`
	Object  string        `json:"object,omitempty"`
	Type    string        `json:"type"`
	Status  ItemStatus    `json:"status,omitempty"`
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`

	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Output    string `json:"output,omitempty"`
}

// UserMessageItem returns a user text message item.
func UserMessageItem(text string) ConversationItem {
	return ConversationItem{Type: "message", Role: "user", Content: []ContentPart{InputText(text)}}
}

// UserAudioItem returns a user audio message item with base64 PCM.
func UserAudioItem(audio string) ConversationItem {
	return ConversationItem{Type: "message", Role: "user", Content: []ContentPart{InputAudio(audio)}}
}

// SystemMessageItem returns a system instruction item.
func SystemMessageItem(text string) ConversationItem {
	return ConversationItem{Type: "message", Role: "system", Content: []ContentPart{InputText(text)}}
}

// AssistantMessageItem returns an assistant text message item.
func AssistantMessageItem(text string) ConversationItem {
	return ConversationItem{Type: "message", Role: "assistant", Content: []ContentPart{{Type: "text", Text: text}}}
}

// FunctionOutputItem returns the output item answering a function call.
func FunctionOutputItem(callID, output string) ConversationItem {
	return ConversationItem{Type: "function_call_output", CallID: callID, Output: output}
}
