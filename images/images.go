// Package images implements the image generation endpoints.
package images

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// GenerateRequest drives images/generations.
type GenerateRequest struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model,omitempty"`
	N              int    `json:"n,omitempty"`
	Quality        string `json:"quality,omitempty"`
	ResponseFormat string `json:"response_format,omitempty"`
	Size           string `json:"size,omitempty"`
	Style          string `json:"style,omitempty"`
	User           string `json:"user,omitempty"`
}

// EditRequest drives images/edits. Image is required, Mask optional.
type EditRequest struct {
	Prompt         string
	Image          io.Reader
	ImageName      string
	Mask           io.Reader
	MaskName       string
	Model          string
	N              int
	ResponseFormat string
	Size           string
}

// VariationRequest drives images/variations.
type VariationRequest struct {
	Image          io.Reader
	ImageName      string
	Model          string
	N              int
	ResponseFormat string
	Size           string
}

// Image is one generated image: a URL or inline base64 data.
type Image struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// Response is the image endpoints envelope.
type Response struct {
	Created int64   `json:"created"`
	Data    []Image `json:"data"`
}

// Client exposes the image endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Generate creates images from a prompt.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Response, error) {
	if req.Prompt == "" {
		return nil, &apierr.ConfigError{Field: "prompt", Reason: "required"}
	}
	var out Response
	if err := c.api.Do(ctx, http.MethodPost, "images/generations", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Edit creates an edited image from a source image and prompt.
func (c *Client) Edit(ctx context.Context, req EditRequest) (*Response, error) {
	if req.Prompt == "" {
		return nil, &apierr.ConfigError{Field: "prompt", Reason: "required"}
	}
	if req.Image == nil {
		return nil, &apierr.ConfigError{Field: "image", Reason: "required"}
	}
	fields := []api.MultipartField{
		{Name: "prompt", Value: req.Prompt},
		{Name: "image", Filename: orDefault(req.ImageName, "image.png"), Reader: req.Image},
	}
	if req.Mask != nil {
		fields = append(fields, api.MultipartField{Name: "mask", Filename: orDefault(req.MaskName, "mask.png"), Reader: req.Mask})
	}
	fields = appendOptional(fields, req.Model, req.N, req.ResponseFormat, req.Size)
	var out Response
	if err := c.api.DoMultipart(ctx, http.MethodPost, "images/edits", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Variation creates variations of a source image.
func (c *Client) Variation(ctx context.Context, req VariationRequest) (*Response, error) {
	if req.Image == nil {
		return nil, &apierr.ConfigError{Field: "image", Reason: "required"}
	}
	fields := []api.MultipartField{
		{Name: "image", Filename: orDefault(req.ImageName, "image.png"), Reader: req.Image},
	}
	fields = appendOptional(fields, req.Model, req.N, req.ResponseFormat, req.Size)
	var out Response
	if err := c.api.DoMultipart(ctx, http.MethodPost, "images/variations", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func appendOptional(fields []api.MultipartField, model string, n int, responseFormat, size string) []api.MultipartField {
	if model != "" {
		fields = append(fields, api.MultipartField{Name: "model", Value: model})
	}
	if n > 0 {
		fields = append(fields, api.MultipartField{Name: "n", Value: strconv.Itoa(n)})
	}
	if responseFormat != "" {
		fields = append(fields, api.MultipartField{Name: "response_format", Value: responseFormat})
	}
	if size != "" {
		fields = append(fields, api.MultipartField{Name: "size", Value: size})
	}
	return fields
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
