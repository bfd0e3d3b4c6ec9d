// Package embeddings implements the embeddings endpoint.
package embeddings

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"math"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// EncodingFormat of returned vectors.
type EncodingFormat string

const (
	EncodingFloat  EncodingFormat = "float"
	EncodingBase64 EncodingFormat = "base64"
)

// Request describes one embedding call. Exactly one of Input or Inputs
// must be set.
type Request struct {
	Model          string
	Input          string
	Inputs         []string
	EncodingFormat EncodingFormat
	Dimensions     *int
	User           string
}

type body struct {
	Model          string         `json:"model"`
	Input          any            `json:"input"`
	EncodingFormat EncodingFormat `json:"encoding_format,omitempty"`
	Dimensions     *int           `json:"dimensions,omitempty"`
	User           string         `json:"user,omitempty"`
}

// Embedding is one vector of the result. Embedding holds the floats for
// the float encoding; Base64 the packed little-endian float32 string for
// the base64 encoding.
type Embedding struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float64 `json:"-"`
	Base64    string    `json:"-"`
}

func (e *Embedding) UnmarshalJSON(data []byte) error {
	var wire struct {
		Object    string          `json:"object"`
		Index     int             `json:"index"`
		Embedding json.RawMessage `json:"embedding"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Object = wire.Object
	e.Index = wire.Index
	if len(wire.Embedding) == 0 {
		return nil
	}
	if wire.Embedding[0] == '"' {
		return json.Unmarshal(wire.Embedding, &e.Base64)
	}
	return json.Unmarshal(wire.Embedding, &e.Embedding)
}

// Floats returns the vector, decoding the base64 form when needed.
func (e *Embedding) Floats() ([]float64, error) {
	if e.Embedding != nil {
		return e.Embedding, nil
	}
	raw, err := base64.StdEncoding.DecodeString(e.Base64)
	if err != nil {
		return nil, &apierr.DecodeError{What: "embedding", Err: err}
	}
	out := make([]float64, len(raw)/4)
	for i := range out {
		out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
	}
	return out, nil
}

// Usage accounts tokens consumed by the call.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Response is the embeddings envelope.
type Response struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  Usage       `json:"usage"`
}

// Client exposes the embeddings endpoint.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Create embeds one or many inputs.
func (c *Client) Create(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, &apierr.ConfigError{Field: "model", Reason: "required"}
	}
	b := body{
		Model:          req.Model,
		EncodingFormat: req.EncodingFormat,
		Dimensions:     req.Dimensions,
		User:           req.User,
	}
	switch {
	case len(req.Inputs) > 0:
		b.Input = req.Inputs
	case req.Input != "":
		b.Input = req.Input
	default:
		return nil, &apierr.ConfigError{Field: "input", Reason: "required"}
	}
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "embeddings", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
