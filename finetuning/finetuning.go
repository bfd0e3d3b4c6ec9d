// Package finetuning implements the fine_tuning/jobs endpoints.
package finetuning

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/internal/api"
)

// Hyperparameters of a supervised fine-tuning run. Values may be
// numbers or the string "auto".
type Hyperparameters struct {
	NEpochs                any `json:"n_epochs,omitempty"`
	BatchSize              any `json:"batch_size,omitempty"`
	LearningRateMultiplier any `json:"learning_rate_multiplier,omitempty"`
}

// Method selects the training method.
type Method struct {
	Type       string `json:"type"`
	Supervised *struct {
		Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	} `json:"supervised,omitempty"`
	DPO *struct {
		Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	} `json:"dpo,omitempty"`
}

// Integration notifies an external tracker about the run.
type Integration struct {
	Type  string `json:"type"`
	Wandb any    `json:"wandb,omitempty"`
}

// CreateRequest starts a fine-tuning job.
type CreateRequest struct {
	Model          string        `json:"model"`
	TrainingFile   string        `json:"training_file"`
	ValidationFile string        `json:"validation_file,omitempty"`
	Suffix         string        `json:"suffix,omitempty"`
	Seed           *int          `json:"seed,omitempty"`
	Method         *Method       `json:"method,omitempty"`
	Integrations   []Integration `json:"integrations,omitempty"`
}

// Job is the fine-tuning job object.
type Job struct {
	ID              string           `json:"id"`
	Object          string           `json:"object"`
	Model           string           `json:"model"`
	CreatedAt       int64            `json:"created_at"`
	FinishedAt      int64            `json:"finished_at,omitempty"`
	FineTunedModel  string           `json:"fine_tuned_model,omitempty"`
	OrganizationID  string           `json:"organization_id,omitempty"`
	ResultFiles     []string         `json:"result_files,omitempty"`
	Status          string           `json:"status"`
	ValidationFile  string           `json:"validation_file,omitempty"`
	TrainingFile    string           `json:"training_file"`
	TrainedTokens   int64            `json:"trained_tokens,omitempty"`
	Error           any              `json:"error,omitempty"`
	Hyperparameters *Hyperparameters `json:"hyperparameters,omitempty"`
	Seed            int              `json:"seed,omitempty"`
	EstimatedFinish int64            `json:"estimated_finish,omitempty"`
	Method          *Method          `json:"method,omitempty"`
}

// Event is one log line of a job.
type Event struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	CreatedAt int64  `json:"created_at"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// Checkpoint is an intermediate model snapshot of a job.
type Checkpoint struct {
	ID                       string         `json:"id"`
	Object                   string         `json:"object"`
	CreatedAt                int64          `json:"created_at"`
	FineTunedModelCheckpoint string         `json:"fine_tuned_model_checkpoint"`
	FineTuningJobID          string         `json:"fine_tuning_job_id"`
	Metrics                  map[string]any `json:"metrics,omitempty"`
	StepNumber               int            `json:"step_number"`
}

type listEnvelope[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
}

// JobList is a page of jobs.
type JobList = listEnvelope[Job]

// EventList is a page of job events.
type EventList = listEnvelope[Event]

// CheckpointList is a page of job checkpoints.
type CheckpointList = listEnvelope[Checkpoint]

// Client exposes the fine-tuning endpoints.
type Client struct {
	api *api.Client
}

func NewClient(api *api.Client) *Client { return &Client{api: api} }

// Create starts a job.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*Job, error) {
	if req.Model == "" || req.TrainingFile == "" {
		return nil, &apierr.ConfigError{Field: "fine_tuning", Reason: "model and training_file required"}
	}
	var out Job
	if err := c.api.Do(ctx, http.MethodPost, "fine_tuning/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Retrieve fetches a job by ID.
func (c *Client) Retrieve(ctx context.Context, id string) (*Job, error) {
	var out Job
	if err := c.api.Do(ctx, http.MethodGet, "fine_tuning/jobs/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel stops a running job.
func (c *Client) Cancel(ctx context.Context, id string) (*Job, error) {
	var out Job
	if err := c.api.Do(ctx, http.MethodPost, "fine_tuning/jobs/"+id+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List pages through jobs.
func (c *Client) List(ctx context.Context, limit int, after string) (*JobList, error) {
	var out JobList
	if err := c.api.Do(ctx, http.MethodGet, paged("fine_tuning/jobs", limit, after), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Events pages through the log of a job.
func (c *Client) Events(ctx context.Context, id string, limit int, after string) (*EventList, error) {
	var out EventList
	if err := c.api.Do(ctx, http.MethodGet, paged("fine_tuning/jobs/"+id+"/events", limit, after), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Checkpoints pages through the checkpoints of a job.
func (c *Client) Checkpoints(ctx context.Context, id string, limit int, after string) (*CheckpointList, error) {
	var out CheckpointList
	if err := c.api.Do(ctx, http.MethodGet, paged("fine_tuning/jobs/"+id+"/checkpoints", limit, after), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func paged(path string, limit int, after string) string {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", after)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
