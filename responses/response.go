package responses

// Content is one fragment of an output message.
type Content struct {
	Type        string `json:"type,omitempty"`
	Text        string `json:"text,omitempty"`
	Annotations []any  `json:"annotations,omitempty"`
	Logprobs    []any  `json:"logprobs,omitempty"`
}

// Output is one item of the response output: an assistant message, a
// function call, a reasoning summary or a built-in tool invocation.
type Output struct {
	ID      string    `json:"id,omitempty"`
	Type    string    `json:"type,omitempty"`
	Role    string    `json:"role,omitempty"`
	Status  string    `json:"status,omitempty"`
	Content []Content `json:"content,omitempty"`

	// function_call outputs
	Arguments string `json:"arguments,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`

	// built-in tool outputs
	Queries []string `json:"queries,omitempty"`
	Results []any    `json:"results,omitempty"`
	Action  any      `json:"action,omitempty"`

	// reasoning outputs
	Summary          any    `json:"summary,omitempty"`
	EncryptedContent string `json:"encrypted_content,omitempty"`
}

// Usage accounts tokens consumed by a response.
type Usage struct {
	InputTokens         int            `json:"input_tokens"`
	OutputTokens        int            `json:"output_tokens"`
	TotalTokens         int            `json:"total_tokens"`
	InputTokensDetails  map[string]int `json:"input_tokens_details,omitempty"`
	OutputTokensDetails map[string]int `json:"output_tokens_details,omitempty"`
}

// Response is the responses endpoint envelope.
type Response struct {
	ID                 string         `json:"id"`
	Object             string         `json:"object,omitempty"`
	CreatedAt          int64          `json:"created_at,omitempty"`
	Status             string         `json:"status,omitempty"`
	Background         bool           `json:"background,omitempty"`
	Error              any            `json:"error,omitempty"`
	IncompleteDetails  any            `json:"incomplete_details,omitempty"`
	Instructions       string         `json:"instructions,omitempty"`
	MaxOutputTokens    int            `json:"max_output_tokens,omitempty"`
	MaxToolCalls       int            `json:"max_tool_calls,omitempty"`
	Model              string         `json:"model,omitempty"`
	Output             []Output       `json:"output,omitempty"`
	ParallelToolCalls  bool           `json:"parallel_tool_calls,omitempty"`
	PreviousResponseID string         `json:"previous_response_id,omitempty"`
	Reasoning          *Reasoning     `json:"reasoning,omitempty"`
	ServiceTier        string         `json:"service_tier,omitempty"`
	Store              bool           `json:"store,omitempty"`
	Temperature        float64        `json:"temperature,omitempty"`
	TopP               float64        `json:"top_p,omitempty"`
	Truncation         string         `json:"truncation,omitempty"`
	Usage              *Usage         `json:"usage,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Text concatenates the text content of all output messages.
func (r *Response) Text() string {
	var out string
	for _, o := range r.Output {
		if o.Type != "message" && o.Type != "text" {
			continue
		}
		for _, c := range o.Content {
			out += c.Text
		}
	}
	return out
}

// FunctionCalls returns the function_call outputs.
func (r *Response) FunctionCalls() []Output {
	var calls []Output
	for _, o := range r.Output {
		if o.Type == "function_call" {
			calls = append(calls, o)
		}
	}
	return calls
}
