// Package api is the shared HTTP layer under the typed API surfaces.
package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/auth"
)

const defaultTimeout = 120 * time.Second

// Client performs JSON and multipart round-trips against a provider
// endpoint.
type Client struct {
	provider *auth.Provider
	http     *http.Client
	headers  http.Header
	logger   *slog.Logger
}

// Config configures a Client. Provider is required.
type Config struct {
	Provider     *auth.Provider
	Timeout      time.Duration
	HTTPClient   *http.Client
	ExtraHeaders http.Header
	Logger       *slog.Logger
}

func New(cfg Config) (*Client, error) {
	if cfg.Provider == nil {
		return nil, &apierr.ConfigError{Field: "provider", Reason: "required"}
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("name", "openai-api")
	}
	return &Client{provider: cfg.Provider, http: hc, headers: cfg.ExtraHeaders, logger: logger}, nil
}

// Provider exposes the configured endpoint provider.
func (c *Client) Provider() *auth.Provider { return c.provider }

// Logger exposes the client logger for API surfaces that warn on dropped
// parameters.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Do performs a JSON request. body and result may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &apierr.DecodeError{What: "request body", Err: err}
		}
		reader = bytes.NewReader(data)
	}
	return c.roundTrip(ctx, method, path, "application/json", reader, result)
}

// MultipartField is one part of a multipart/form-data request.
type MultipartField struct {
	Name     string
	Value    string
	Filename string
	Reader   io.Reader
}

// DoMultipart performs a multipart/form-data request, used by the file,
// image and audio upload endpoints.
func (c *Client) DoMultipart(ctx context.Context, method, path string, fields []MultipartField, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.Reader != nil {
			part, err := w.CreateFormFile(f.Name, f.Filename)
			if err != nil {
				return &apierr.TransportError{Op: "multipart", Err: err}
			}
			if _, err := io.Copy(part, f.Reader); err != nil {
				return &apierr.TransportError{Op: "multipart", Err: err}
			}
			continue
		}
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return &apierr.TransportError{Op: "multipart", Err: err}
		}
	}
	if err := w.Close(); err != nil {
		return &apierr.TransportError{Op: "multipart", Err: err}
	}
	return c.roundTrip(ctx, method, path, w.FormDataContentType(), &buf, result)
}

// DoRaw performs a request whose response body is returned verbatim,
// used by binary endpoints like audio/speech and file content.
func (c *Client) DoRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &apierr.DecodeError{What: "request body", Err: err}
		}
		reader = bytes.NewReader(data)
	}
	resp, err := c.send(ctx, method, path, "application/json", reader)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apierr.TransportError{Op: "read body", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return raw, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apierr.TransportError{Op: "read body", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, raw)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return &apierr.DecodeError{What: path, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	u, err := c.provider.BuildURL(path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &apierr.TransportError{Op: "new request", Err: err}
	}
	for key, values := range c.provider.Headers() {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &apierr.TransportError{Op: method + " " + path, Err: err}
	}
	return resp, nil
}

// errorEnvelope is the vendor error shape: {"error": {...}}.
type errorEnvelope struct {
	Error *apierr.APIError `json:"error"`
}

func decodeAPIError(status int, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		env.Error.StatusCode = status
		return env.Error
	}
	return &apierr.APIError{StatusCode: status, Type: "unknown", Message: string(body)}
}
