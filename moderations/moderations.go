// Package moderations implements the moderations endpoint.
package moderations

import (
	"context"
	"net/http"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// Request classifies one or more inputs.
type Request struct {
	Model  string
	Input  string
	Inputs []string
}

type body struct {
	Model string `json:"model,omitempty"`
	Input any    `json:"input"`
}

// Categories flags each policy area.
type Categories struct {
	Hate                  bool `json:"hate"`
	HateThreatening       bool `json:"hate/threatening"`
	Harassment            bool `json:"harassment"`
	HarassmentThreatening bool `json:"harassment/threatening"`
	Illicit               bool `json:"illicit"`
	IllicitViolent        bool `json:"illicit/violent"`
	SelfHarm              bool `json:"self-harm"`
	SelfHarmIntent        bool `json:"self-harm/intent"`
	SelfHarmInstructions  bool `json:"self-harm/instructions"`
	Sexual                bool `json:"sexual"`
	SexualMinors          bool `json:"sexual/minors"`
	Violence              bool `json:"violence"`
	ViolenceGraphic       bool `json:"violence/graphic"`
}

// CategoryScores carries the model confidence per policy area.
type CategoryScores struct {
	Hate                  float64 `json:"hate"`
	HateThreatening       float64 `json:"hate/threatening"`
	Harassment            float64 `json:"harassment"`
	HarassmentThreatening float64 `json:"harassment/threatening"`
	Illicit               float64 `json:"illicit"`
	IllicitViolent        float64 `json:"illicit/violent"`
	SelfHarm              float64 `json:"self-harm"`
	SelfHarmIntent        float64 `json:"self-harm/intent"`
	SelfHarmInstructions  float64 `json:"self-harm/instructions"`
	Sexual                float64 `json:"sexual"`
	SexualMinors          float64 `json:"sexual/minors"`
	Violence              float64 `json:"violence"`
	ViolenceGraphic       float64 `json:"violence/graphic"`
}

// Result is the classification of one input.
type Result struct {
	Flagged        bool           `json:"flagged"`
	Categories     Categories     `json:"categories"`
	CategoryScores CategoryScores `json:"category_scores"`
}

// Response is the moderations envelope.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Results []Result `json:"results"`
}

// Flagged reports whether any input was flagged.
func (r *Response) Flagged() bool {
	for _, res := range r.Results {
		if res.Flagged {
			return true
		}
	}
	return false
}

// Client exposes the moderations endpoint.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Classify runs the moderation model over the inputs.
func (c *Client) Classify(ctx context.Context, req Request) (*Response, error) {
	b := body{Model: req.Model}
	switch {
	case len(req.Inputs) > 0:
		b.Input = req.Inputs
	case req.Input != "":
		b.Input = req.Input
	default:
		return nil, &apierr.ConfigError{Field: "input", Reason: "required"}
	}
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "moderations", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
