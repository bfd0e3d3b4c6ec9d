// Package files implements the files endpoints.
package files

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// Purpose of an uploaded file.
type Purpose string

const (
	PurposeFineTune  Purpose = "fine-tune"
	PurposeBatch     Purpose = "batch"
	PurposeAssistant Purpose = "assistants"
	PurposeVision    Purpose = "vision"
	PurposeUserData  Purpose = "user_data"
)

// File is the stored file object.
type File struct {
	ID        string  `json:"id"`
	Object    string  `json:"object"`
	Bytes     int64   `json:"bytes"`
	CreatedAt int64   `json:"created_at"`
	ExpiresAt int64   `json:"expires_at,omitempty"`
	Filename  string  `json:"filename"`
	Purpose   Purpose `json:"purpose"`
	Status    string  `json:"status,omitempty"`
}

// ListResponse is the files listing envelope.
type ListResponse struct {
	Object  string `json:"object"`
	Data    []File `json:"data"`
	HasMore bool   `json:"has_more,omitempty"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// Client exposes the files endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Upload stores a file for the given purpose.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader, purpose Purpose) (*File, error) {
	if filename == "" {
		return nil, &apierr.ConfigError{Field: "filename", Reason: "required"}
	}
	fields := []api.MultipartField{
		{Name: "purpose", Value: string(purpose)},
		{Name: "file", Filename: filename, Reader: content},
	}
	var out File
	if err := c.api.DoMultipart(ctx, http.MethodPost, "files", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns stored files, optionally filtered by purpose.
func (c *Client) List(ctx context.Context, purpose Purpose) (*ListResponse, error) {
	path := "files"
	if purpose != "" {
		path += "?purpose=" + url.QueryEscape(string(purpose))
	}
	var out ListResponse
	if err := c.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches file metadata.
func (c *Client) Retrieve(ctx context.Context, id string) (*File, error) {
	var out File
	if err := c.api.Do(ctx, http.MethodGet, "files/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Content downloads the raw file body.
func (c *Client) Content(ctx context.Context, id string) ([]byte, error) {
	return c.api.DoRaw(ctx, http.MethodGet, "files/"+id+"/content", nil)
}

// Delete removes a stored file.
func (c *Client) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.api.Do(ctx, http.MethodDelete, "files/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
