package chat

import "github.com/oaitools/openaitools-go/messages"

// Usage accounts tokens consumed by a completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Choice is one generated completion.
type Choice struct {
	Index        int           `json:"index"`
	Message      messages.Chat `json:"message"`
	Logprobs     any           `json:"logprobs,omitempty"`
	FinishReason string        `json:"finish_reason"`
}

// Response is the completion envelope.
type Response struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"`
	Created           int64    `json:"created"`
	Model             string   `json:"model"`
	SystemFingerprint string   `json:"system_fingerprint,omitempty"`
	Choices           []Choice `json:"choices"`
	Usage             *Usage   `json:"usage,omitempty"`
}

// Text returns the content of the first choice, empty when there is none.
func (r *Response) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ToolCalls returns the tool calls of the first choice.
func (r *Response) ToolCalls() []messages.ToolCall {
	if len(r.Choices) == 0 {
		return nil
	}
	return r.Choices[0].Message.ToolCalls
}
