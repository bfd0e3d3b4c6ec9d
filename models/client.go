package models

import (
	"context"
	"net/http"

	"github.com/oaitools/openaitools-go/internal/api"
)

// Model is one entry of the models listing.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ListResponse is the models listing envelope.
type ListResponse struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// DeleteResponse confirms deletion of a fine-tuned model.
type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Client exposes the models endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// List returns all models available to the caller.
func (c *Client) List(ctx context.Context) (*ListResponse, error) {
	var out ListResponse
	if err := c.api.Do(ctx, http.MethodGet, "models", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches a single model by ID.
func (c *Client) Retrieve(ctx context.Context, id string) (*Model, error) {
	var out Model
	if err := c.api.Do(ctx, http.MethodGet, "models/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a fine-tuned model owned by the caller.
func (c *Client) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.api.Do(ctx, http.MethodDelete, "models/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
