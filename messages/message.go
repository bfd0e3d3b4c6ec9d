// Package messages holds the shared message and content model used by
// both the chat/completions and responses surfaces. One Message value
// serializes into the distinct wire shapes each endpoint expects.
package messages

import (
	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/oaitools/openaitools-go/apierr"
)

// Role of a message author.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
	RoleFunction  Role = "function"
)

// Part is one content fragment: text or an image reference. Exactly one
// field is set.
type Part struct {
	Text     string
	ImageURL string
}

// Text returns a text part.
func Text(s string) Part { return Part{Text: s} }

// Image returns an image part referencing a URL or data URI.
func Image(url string) Part { return Part{ImageURL: url} }

// ToolCall is a function invocation requested by the assistant.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the name and raw JSON arguments of a tool call.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is the endpoint-neutral representation. Content and Parts are
// mutually exclusive: plain-string content wins when both are empty or
// Parts is nil.
type Message struct {
	Role       Role
	Content    string
	Parts      []Part
	Name       string
	ToolCallID string
	ToolCalls  []ToolCall
	Refusal    string
}

// System returns a system message with plain text content.
func System(text string) Message { return Message{Role: RoleSystem, Content: text} }

// User returns a user message with plain text content.
func User(text string) Message { return Message{Role: RoleUser, Content: text} }

// UserParts returns a user message with mixed content parts.
func UserParts(parts ...Part) Message { return Message{Role: RoleUser, Parts: parts} }

// Assistant returns an assistant message with plain text content.
func Assistant(text string) Message { return Message{Role: RoleAssistant, Content: text} }

// ToolResult returns a tool message answering the given tool call.
func ToolResult(callID, output string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, Content: output}
}

// chat/completions wire shapes

type chatImageURL struct {
	URL string `json:"url"`
}

type chatPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role       Role            `json:"role"`
	Content    json.RawMessage `json:"content,omitempty"`
	Name       string          `json:"name,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall      `json:"tool_calls,omitempty"`
}

// Chat wraps a Message so it marshals in the chat/completions shape:
// image parts nest the URL under "image_url", text parts use "text".
type Chat struct{ Message }

// AsChat adapts a slice for a chat/completions body.
func AsChat(ms []Message) []Chat {
	out := make([]Chat, len(ms))
	for i, m := range ms {
		out[i] = Chat{m}
	}
	return out
}

func (c Chat) MarshalJSON() ([]byte, error) {
	wire := chatMessage{
		Role:       c.Role,
		Name:       c.Name,
		ToolCallID: c.ToolCallID,
		ToolCalls:  c.ToolCalls,
	}
	if c.Parts != nil {
		parts := make([]chatPart, 0, len(c.Parts))
		for _, p := range c.Parts {
			if p.ImageURL != "" {
				parts = append(parts, chatPart{Type: "image_url", ImageURL: &chatImageURL{URL: p.ImageURL}})
				continue
			}
			parts = append(parts, chatPart{Type: "text", Text: p.Text})
		}
		raw, err := json.Marshal(parts)
		if err != nil {
			return nil, err
		}
		wire.Content = raw
	} else if c.Content != "" || len(c.ToolCalls) == 0 {
		raw, err := json.Marshal(c.Content)
		if err != nil {
			return nil, err
		}
		wire.Content = raw
	}
	return json.Marshal(wire)
}

func (c *Chat) UnmarshalJSON(data []byte) error {
	m, err := parseChatMessage(data)
	if err != nil {
		return err
	}
	c.Message = m
	return nil
}

func parseChatMessage(data []byte) (Message, error) {
	var wire struct {
		Role       Role            `json:"role"`
		Content    json.RawMessage `json:"content"`
		Name       string          `json:"name"`
		ToolCallID string          `json:"tool_call_id"`
		ToolCalls  []ToolCall      `json:"tool_calls"`
		Refusal    string          `json:"refusal"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return Message{}, &apierr.DecodeError{What: "message", Err: err}
	}
	m := Message{
		Role:       wire.Role,
		Name:       wire.Name,
		ToolCallID: wire.ToolCallID,
		ToolCalls:  wire.ToolCalls,
		Refusal:    wire.Refusal,
	}
	if len(wire.Content) == 0 {
		return m, nil
	}
	switch gjson.ParseBytes(wire.Content).Type {
	case gjson.String:
		if err := json.Unmarshal(wire.Content, &m.Content); err != nil {
			return Message{}, &apierr.DecodeError{What: "message content", Err: err}
		}
	case gjson.JSON:
		var parts []chatPart
		if err := json.Unmarshal(wire.Content, &parts); err != nil {
			return Message{}, &apierr.DecodeError{What: "message content", Err: err}
		}
		m.Parts = make([]Part, 0, len(parts))
		for _, p := range parts {
			if p.ImageURL != nil {
				m.Parts = append(m.Parts, Image(p.ImageURL.URL))
				continue
			}
			m.Parts = append(m.Parts, Text(p.Text))
		}
	}
	return m, nil
}

// responses wire shapes

type inputPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Input wraps a Message so it marshals in the responses input shape:
// parts are tagged input_text/input_image with a flat image URL.
type Input struct{ Message }

// AsInput adapts a slice for a responses body.
func AsInput(ms []Message) []Input {
	out := make([]Input, len(ms))
	for i, m := range ms {
		out[i] = Input{m}
	}
	return out
}

func (in Input) MarshalJSON() ([]byte, error) {
	wire := struct {
		Role    Role `json:"role"`
		Content any  `json:"content"`
	}{Role: in.Role}
	if in.Parts != nil {
		parts := make([]inputPart, 0, len(in.Parts))
		for _, p := range in.Parts {
			if p.ImageURL != "" {
				parts = append(parts, inputPart{Type: "input_image", ImageURL: p.ImageURL})
				continue
			}
			parts = append(parts, inputPart{Type: "input_text", Text: p.Text})
		}
		wire.Content = parts
	} else {
		wire.Content = in.Content
	}
	return json.Marshal(wire)
}
