// Package batch implements the batches endpoints.
package batch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// CreateRequest starts a batch over a previously uploaded JSONL file.
type CreateRequest struct {
	InputFileID      string            `json:"input_file_id"`
	Endpoint         string            `json:"endpoint"`
	CompletionWindow string            `json:"completion_window"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// RequestCounts summarizes batch line progress.
type RequestCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Batch is the batch object.
type Batch struct {
	ID               string            `json:"id"`
	Object           string            `json:"object"`
	Endpoint         string            `json:"endpoint"`
	Errors           any               `json:"errors,omitempty"`
	InputFileID      string            `json:"input_file_id"`
	CompletionWindow string            `json:"completion_window"`
	Status           string            `json:"status"`
	OutputFileID     string            `json:"output_file_id,omitempty"`
	ErrorFileID      string            `json:"error_file_id,omitempty"`
	CreatedAt        int64             `json:"created_at"`
	InProgressAt     int64             `json:"in_progress_at,omitempty"`
	ExpiresAt        int64             `json:"expires_at,omitempty"`
	FinalizingAt     int64             `json:"finalizing_at,omitempty"`
	CompletedAt      int64             `json:"completed_at,omitempty"`
	FailedAt         int64             `json:"failed_at,omitempty"`
	ExpiredAt        int64             `json:"expired_at,omitempty"`
	CancellingAt     int64             `json:"cancelling_at,omitempty"`
	CancelledAt      int64             `json:"cancelled_at,omitempty"`
	RequestCounts    *RequestCounts    `json:"request_counts,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// ListResponse is the batch listing envelope.
type ListResponse struct {
	Object  string  `json:"object"`
	Data    []Batch `json:"data"`
	FirstID string  `json:"first_id,omitempty"`
	LastID  string  `json:"last_id,omitempty"`
	HasMore bool    `json:"has_more"`
}

// Client exposes the batches endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Create starts a batch.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Batch, error) {
	if req.InputFileID == "" || req.Endpoint == "" {
		return nil, &apierr.ConfigError{Field: "batch", Reason: "input_file_id and endpoint required"}
	}
	if req.CompletionWindow == "" {
		req.CompletionWindow = "24h"
	}
	var out Batch
	if err := c.api.Do(ctx, http.MethodPost, "batches", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches a batch by ID.
func (c *Client) Retrieve(ctx context.Context, id string) (*Batch, error) {
	var out Batch
	if err := c.api.Do(ctx, http.MethodGet, "batches/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel requests cancellation of an in-progress batch.
func (c *Client) Cancel(ctx context.Context, id string) (*Batch, error) {
	var out Batch
	if err := c.api.Do(ctx, http.MethodPost, "batches/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List pages through batches. limit of 0 uses the server default; after
// is the cursor from a previous page.
func (c *Client) List(ctx context.Context, limit int, after string) (*ListResponse, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", after)
	}
	path := "batches"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out ListResponse
	if err := c.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
