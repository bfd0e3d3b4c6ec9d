// Package conversations implements the conversations endpoints used to
// hold server-side state for the responses API.
package conversations

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oaitools/openaitools-go/internal/api"
	"github.com/oaitools/openaitools-go/messages"
)

// Conversation is the stored conversation object.
type Conversation struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// ItemContent is one content fragment of a stored item.
type ItemContent struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Item is one entry of a conversation.
type Item struct {
	ID      string        `json:"id,omitempty"`
	Object  string        `json:"object,omitempty"`
	Type    string        `json:"type"`
	Status  string        `json:"status,omitempty"`
	Role    string        `json:"role,omitempty"`
	Content []ItemContent `json:"content,omitempty"`
}

// ItemList is a page of conversation items.
type ItemList struct {
	Object  string `json:"object"`
	Data    []Item `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}

type createBody struct {
	Metadata map[string]string `json:"metadata,omitempty"`
	Items    []messages.Input  `json:"items,omitempty"`
}

type updateBody struct {
	Metadata map[string]string `json:"metadata"`
}

type addItemsBody struct {
	Items []messages.Input `json:"items"`
}

// Client exposes the conversations endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Create starts a conversation, optionally seeded with items.
func (c *Client) Create(ctx context.Context, metadata map[string]string, items []messages.Message) (*Conversation, error) {
	b := createBody{Metadata: metadata}
	if len(items) > 0 {
		b.Items = messages.AsInput(items)
	}
	var out Conversation
	if err := c.api.Do(ctx, http.MethodPost, "conversations", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a conversation by ID.
func (c *Client) Get(ctx context.Context, id string) (*Conversation, error) {
	var out Conversation
	if err := c.api.Do(ctx, http.MethodGet, "conversations/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the conversation metadata.
func (c *Client) Update(ctx context.Context, id string, metadata map[string]string) (*Conversation, error) {
	var out Conversation
	if err := c.api.Do(ctx, http.MethodPost, "conversations/"+id, updateBody{Metadata: metadata}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a conversation and its items.
func (c *Client) Delete(ctx context.Context, id string) (*DeleteResponse, error) {
	var out DeleteResponse
	if err := c.api.Do(ctx, http.MethodDelete, "conversations/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddItems appends messages to a conversation.
func (c *Client) AddItems(ctx context.Context, id string, items []messages.Message) (*ItemList, error) {
	var out ItemList
	if err := c.api.Do(ctx, http.MethodPost, "conversations/"+id+"/items", addItemsBody{Items: messages.AsInput(items)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Items pages through the conversation content.
func (c *Client) Items(ctx context.Context, id string, limit int, after string) (*ItemList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", after)
	}
	path := "conversations/" + id + "/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out ItemList
	if err := c.api.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetItem fetches one item of a conversation.
func (c *Client) GetItem(ctx context.Context, conversationID, itemID string) (*Item, error) {
	var out Item
	if err := c.api.Do(ctx, http.MethodGet, "conversations/"+conversationID+"/items/"+itemID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteItem removes one item from a conversation.
func (c *Client) DeleteItem(ctx context.Context, conversationID, itemID string) (*Conversation, error) {
	var out Conversation
	if err := c.api.Do(ctx, http.MethodDelete, "conversations/"+conversationID+"/items/"+itemID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
