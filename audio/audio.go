// Package audio implements the speech, transcription and translation
// endpoints.
package audio

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// SpeechRequest drives audio/speech (text to speech).
type SpeechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format,omitempty"`
	Speed          float64 `json:"speed,omitempty"`
	Instructions   string  `json:"instructions,omitempty"`
}

// TranscribeRequest drives audio/transcriptions.
type TranscribeRequest struct {
	Model          string
	File           io.Reader
	Filename       string
	Language       string
	Prompt         string
	ResponseFormat string
	Temperature    *float64
	// TimestampGranularities requires the verbose_json response format.
	TimestampGranularities []string
}

// TranslateRequest drives audio/translations (to English).
type TranslateRequest struct {
	Model          string
	File           io.Reader
	Filename       string
	Prompt         string
	ResponseFormat string
	Temperature    *float64
}

// Word is a word-level timestamp of a verbose transcription.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a segment-level entry of a verbose transcription.
type Segment struct {
	ID               int     `json:"id"`
	Seek             int     `json:"seek"`
	Start            float64 `json:"start"`
	End              float64 `json:"end"`
	Text             string  `json:"text"`
	Tokens           []int   `json:"tokens,omitempty"`
	Temperature      float64 `json:"temperature,omitempty"`
	AvgLogprob       float64 `json:"avg_logprob,omitempty"`
	CompressionRatio float64 `json:"compression_ratio,omitempty"`
	NoSpeechProb     float64 `json:"no_speech_prob,omitempty"`
}

// Transcription is the transcription/translation result. Language,
// Duration, Words and Segments are only present for verbose_json.
type Transcription struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Duration float64   `json:"duration,omitempty"`
	Words    []Word    `json:"words,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

// Client exposes the audio endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Speech synthesizes audio and returns the raw encoded bytes.
func (c *Client) Speech(ctx context.Context, req SpeechRequest) ([]byte, error) {
	if req.Model == "" || req.Input == "" || req.Voice == "" {
		return nil, &apierr.ConfigError{Field: "speech", Reason: "model, input and voice required"}
	}
	return c.api.DoRaw(ctx, http.MethodPost, "audio/speech", req)
}

// Transcribe converts speech to text in the source language.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (*Transcription, error) {
	if req.File == nil {
		return nil, &apierr.ConfigError{Field: "file", Reason: "required"}
	}
	fields := []api.MultipartField{
		{Name: "model", Value: req.Model},
		{Name: "file", Filename: orDefault(req.Filename, "audio.wav"), Reader: req.File},
	}
	if req.Language != "" {
		fields = append(fields, api.MultipartField{Name: "language", Value: req.Language})
	}
	if req.Prompt != "" {
		fields = append(fields, api.MultipartField{Name: "prompt", Value: req.Prompt})
	}
	if req.ResponseFormat != "" {
		fields = append(fields, api.MultipartField{Name: "response_format", Value: req.ResponseFormat})
	}
	if req.Temperature != nil {
		fields = append(fields, api.MultipartField{Name: "temperature", Value: strconv.FormatFloat(*req.Temperature, 'f', -1, 64)})
	}
	for _, g := range req.TimestampGranularities {
		fields = append(fields, api.MultipartField{Name: "timestamp_granularities[]", Value: g})
	}
	var out Transcription
	if err := c.api.DoMultipart(ctx, http.MethodPost, "audio/transcriptions", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Translate converts speech in any supported language to English text.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*Transcription, error) {
	if req.File == nil {
		return nil, &apierr.ConfigError{Field: "file", Reason: "required"}
	}
	fields := []api.MultipartField{
		{Name: "model", Value: req.Model},
		{Name: "file", Filename: orDefault(req.Filename, "audio.wav"), Reader: req.File},
	}
	if req.Prompt != "" {
		fields = append(fields, api.MultipartField{Name: "prompt", Value: req.Prompt})
	}
	if req.ResponseFormat != "" {
		fields = append(fields, api.MultipartField{Name: "response_format", Value: req.ResponseFormat})
	}
	if req.Temperature != nil {
		fields = append(fields, api.MultipartField{Name: "temperature", Value: strconv.FormatFloat(*req.Temperature, 'f', -1, 64)})
	}
	var out Transcription
	if err := c.api.DoMultipart(ctx, http.MethodPost, "audio/translations", fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
