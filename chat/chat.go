// Package chat implements the chat/completions endpoint.
package chat

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

// Request describes one completion. Model and Messages are required;
// nil optional fields are omitted from the wire body.
type Request struct {
	Model    string
	Messages []messages.Message

	Store               *bool
	FrequencyPenalty    *float64
	PresencePenalty     *float64
	Temperature         *float64
	TopP                *float64
	LogitBias           map[string]int
	Logprobs            *bool
	TopLogprobs         *int
	MaxCompletionTokens *int
	N                   *int
	Modalities          []string
	Schema              *schema.Schema
	Tools               []tool.Tool
	ToolChoice          any
}

// wire shapes

type chatFunction struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Parameters  *tool.Parameters `json:"parameters,omitempty"`
	Strict      bool             `json:"strict,omitempty"`
}

// chatTool nests the function definition, as this endpoint requires.
type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type body struct {
	Model               string          `json:"model"`
	Messages            []messages.Chat `json:"messages"`
	Store               *bool           `json:"store,omitempty"`
	FrequencyPenalty    *float64        `json:"frequency_penalty,omitempty"`
	PresencePenalty     *float64        `json:"presence_penalty,omitempty"`
	Temperature         *float64        `json:"temperature,omitempty"`
	TopP                *float64        `json:"top_p,omitempty"`
	LogitBias           map[string]int  `json:"logit_bias,omitempty"`
	Logprobs            *bool           `json:"logprobs,omitempty"`
	TopLogprobs         *int            `json:"top_logprobs,omitempty"`
	MaxCompletionTokens *int            `json:"max_completion_tokens,omitempty"`
	N                   *int            `json:"n,omitempty"`
	Modalities          []string        `json:"modalities,omitempty"`
	ResponseFormat      any             `json:"response_format,omitempty"`
	Tools               []chatTool      `json:"tools,omitempty"`
	ToolChoice          any             `json:"tool_choice,omitempty"`
}

// Client exposes chat completion calls.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Complete runs a completion. Parameters the model does not accept are
// dropped from the request with a warning, never an error.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, &apierr.ConfigError{Field: "model", Reason: "required"}
	}
	if len(req.Messages) == 0 {
		return nil, &apierr.ConfigError{Field: "messages", Reason: "required"}
	}

	b, err := c.buildBody(req)
	if err != nil {
		return nil, err
	}
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "chat/completions", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) buildBody(req Request) (*body, error) {
	support := models.SupportFor(req.Model)
	logger := c.api.Logger()

	b := &body{
		Model:               req.Model,
		Messages:            messages.AsChat(req.Messages),
		Store:               req.Store,
		MaxCompletionTokens: req.MaxCompletionTokens,
		Modalities:          req.Modalities,
		ToolChoice:          req.ToolChoice,
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
	if req.FrequencyPenalty != nil {
		if support.FrequencyPenalty.Allows(*req.FrequencyPenalty) {
			b.FrequencyPenalty = req.FrequencyPenalty
		} else {
			models.WarnDropped(logger, req.Model, "frequency_penalty", *req.FrequencyPenalty)
		}
	}
	if req.PresencePenalty != nil {
		if support.PresencePenalty.Allows(*req.PresencePenalty) {
			b.PresencePenalty = req.PresencePenalty
		} else {
			models.WarnDropped(logger, req.Model, "presence_penalty", *req.PresencePenalty)
		}
	}
	if req.Logprobs != nil {
		if support.Logprobs {
			b.Logprobs = req.Logprobs
		} else {
			models.WarnDropped(logger, req.Model, "logprobs", *req.Logprobs)
		}
	}
	if req.TopLogprobs != nil {
		if !support.TopLogprobs.Denied() {
			b.TopLogprobs = req.TopLogprobs
		} else {
			models.WarnDropped(logger, req.Model, "top_logprobs", *req.TopLogprobs)
		}
	}
	if req.LogitBias != nil {
		if support.LogitBias {
			b.LogitBias = req.LogitBias
		} else {
			models.WarnDropped(logger, req.Model, "logit_bias", req.LogitBias)
		}
	}
	if req.N != nil {
		if *req.N <= support.MaxN {
			b.N = req.N
		} else {
			models.WarnDropped(logger, req.Model, "n", *req.N)
		}
	}

	if req.Schema != nil {
		format, err := req.Schema.ChatResponseFormat()
		if err != nil {
			return nil, err
		}
		b.ResponseFormat = format
	}

	for _, t := range req.Tools {
		b.Tools = append(b.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
				Strict:      t.Strict,
			},
		})
	}

	return b, nil
}
