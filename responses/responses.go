// Package responses implements the responses endpoint.
package responses

import (
	"context"
	"net/http"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
	"github.com/oaitools/openaitools-go/messages"
	"github.com/oaitools/openaitools-go/models"
	"github.com/oaitools/openaitools-go/schema"
	"github.com/oaitools/openaitools-go/tool"
)

// Include selects optional payloads for the response output.
type Include string

const (
	IncludeWebSearchResults       Include = "web_search_call.results"
	IncludeCodeInterpreterOutputs Include = "code_interpreter_call.outputs"
	IncludeComputerCallImageURLs  Include = "computer_call_output.output.image_url"
	IncludeFileSearchResults      Include = "file_search_call.results"
	IncludeInputImageURLs         Include = "message.input_image.image_url"
	IncludeOutputLogprobs         Include = "message.output_text.logprobs"
	IncludeReasoningEncrypted     Include = "reasoning.encrypted_content"
)

// ReasoningEffort for reasoning models.
type ReasoningEffort string

const (
	EffortMinimal ReasoningEffort = "minimal"
	EffortLow     ReasoningEffort = "low"
	EffortMedium  ReasoningEffort = "medium"
	EffortHigh    ReasoningEffort = "high"
)

// Reasoning configures reasoning models.
type Reasoning struct {
	Effort  ReasoningEffort `json:"effort,omitempty"`
	Summary string          `json:"summary,omitempty"`
}

// Request describes one response generation. Model is required, plus
// either Input (plain text) or Messages.
type Request struct {
	Model        string
	Instructions string
	Input        string
	Messages     []messages.Message

	Temperature        *float64
	TopP               *float64
	TopLogprobs        *int
	MaxOutputTokens    *int
	MaxToolCalls       *int
	ParallelToolCalls  *bool
	Store              *bool
	Background         *bool
	Conversation       string
	PreviousResponseID string
	Include            []Include
	Metadata           map[string]any
	Reasoning          *Reasoning
	Schema             *schema.Schema
	TextVerbosity      string
	Tools              []tool.Tool
	ToolChoice         any
}

type textConfig struct {
	Format    any    `json:"format,omitempty"`
	Verbosity string `json:"verbosity,omitempty"`
}

type body struct {
	Model              string         `json:"model"`
	Instructions       string         `json:"instructions,omitempty"`
	Input              any            `json:"input,omitempty"`
	Temperature        *float64       `json:"temperature,omitempty"`
	TopP               *float64       `json:"top_p,omitempty"`
	TopLogprobs        *int           `json:"top_logprobs,omitempty"`
	MaxOutputTokens    *int           `json:"max_output_tokens,omitempty"`
	MaxToolCalls       *int           `json:"max_tool_calls,omitempty"`
	ParallelToolCalls  *bool          `json:"parallel_tool_calls,omitempty"`
	Store              *bool          `json:"store,omitempty"`
	Background         *bool          `json:"background,omitempty"`
	Conversation       string         `json:"conversation,omitempty"`
	PreviousResponseID string         `json:"previous_response_id,omitempty"`
	Include            []Include      `json:"include,omitempty"`
	Metadata           map[string]any `json:"metadata,omitempty"`
	Reasoning          *Reasoning     `json:"reasoning,omitempty"`
	Text               *textConfig    `json:"text,omitempty"`
	Tools              []tool.Tool    `json:"tools,omitempty"`
	ToolChoice         any            `json:"tool_choice,omitempty"`
}

// Client exposes the responses endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Create generates a response. Sampling parameters outside the model's
// policy are dropped with a warning.
func (c *Client) Create(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, &apierr.ConfigError{Field: "model", Reason: "required"}
	}
	if req.Input == "" && len(req.Messages) == 0 {
		return nil, &apierr.ConfigError{Field: "input", Reason: "input or messages required"}
	}

	b, err := c.buildBody(req)
	if err != nil {
		return nil, err
	}
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "responses", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get retrieves a stored response by ID.
func (c *Client) Get(ctx context.Context, id string) (*Response, error) {
	var out Response
	if err := c.api.Do(ctx, http.MethodGet, "responses/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel stops a background response.
func (c *Client) Cancel(ctx context.Context, id string) (*Response, error) {
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "responses/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a stored response.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Do(ctx, http.MethodDelete, "responses/"+id, nil, nil)
}

func (c *Client) buildBody(req Request) (*body, error) {
	support := models.SupportFor(req.Model)
	logger := c.api.Logger()

	b := &body{
		Model:              req.Model,
		Instructions:       req.Instructions,
		MaxOutputTokens:    req.MaxOutputTokens,
		MaxToolCalls:       req.MaxToolCalls,
		ParallelToolCalls:  req.ParallelToolCalls,
		Store:              req.Store,
		Background:         req.Background,
		Conversation:       req.Conversation,
		PreviousResponseID: req.PreviousResponseID,
		Include:            req.Include,
		Metadata:           req.Metadata,
		Tools:              req.Tools,
		ToolChoice:         req.ToolChoice,
	}

	if len(req.Messages) > 0 {
		b.Input = messages.AsInput(req.Messages)
	} else {
		b.Input = req.Input
	}

	if req.Temperature != nil {
		if support.Temperature.Allows(*req.Temperature) {
			b.Temperature = req.Temperature
		} else {
			models.WarnDropped(logger, req.Model, "temperature", *req.Temperature)
		}
	}
	if req.TopP != nil {
		if support.TopP.Allows(*req.TopP) {
			b.TopP = req.TopP
		} else {
			models.WarnDropped(logger, req.Model, "top_p", *req.TopP)
		}
	}
	if req.TopLogprobs != nil {
		if !support.TopLogprobs.Denied() {
			b.TopLogprobs = req.TopLogprobs
		} else {
			models.WarnDropped(logger, req.Model, "top_logprobs", *req.TopLogprobs)
		}
	}
	if req.Reasoning != nil {
		if support.Reasoning {
			b.Reasoning = req.Reasoning
		} else {
			models.WarnDropped(logger, req.Model, "reasoning", req.Reasoning.Effort)
		}
	}

	if req.Schema != nil || req.TextVerbosity != "" {
		t := &textConfig{Verbosity: req.TextVerbosity}
		if req.Schema != nil {
			format, err := req.Schema.ResponsesTextFormat()
			if err != nil {
				return nil, err
			}
			t.Format = format
		}
		b.Text = t
	}

	return b, nil
}
