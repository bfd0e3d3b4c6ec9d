package models

import (
	"log/slog"
	"strings"
)

// Restriction describes what a model accepts for one sampling parameter.
type Restriction struct {
	fixed *float64
	deny  bool
}

// Any accepts every value.
func Any() Restriction { return Restriction{} }

// Fixed accepts only v; other values are dropped.
func Fixed(v float64) Restriction { return Restriction{fixed: &v} }

// Unsupported rejects the parameter entirely.
func Unsupported() Restriction { return Restriction{deny: true} }

// Allows reports whether v may be sent for this parameter.
func (r Restriction) Allows(v float64) bool {
	if r.deny {
		return false
	}
	if r.fixed != nil {
		return *r.fixed == v
	}
	return true
}

// Denied reports whether the parameter is unsupported outright.
func (r Restriction) Denied() bool { return r.deny }

// Support is the per-model policy table for request parameters.
type Support struct {
	Temperature      Restriction
	TopP             Restriction
	FrequencyPenalty Restriction
	PresencePenalty  Restriction
	Logprobs         bool
	TopLogprobs      Restriction
	LogitBias        bool
	MaxN             int
	Reasoning        bool
}

func standardSupport() Support {
	return Support{
		Temperature:      Any(),
		TopP:             Any(),
		FrequencyPenalty: Any(),
		PresencePenalty:  Any(),
		Logprobs:         true,
		TopLogprobs:      Any(),
		LogitBias:        true,
		MaxN:             128,
	}
}

// Reasoning models pin sampling to deterministic defaults and take a
// reasoning effort instead.
func reasoningSupport() Support {
	return Support{
		Temperature:      Fixed(1.0),
		TopP:             Fixed(1.0),
		FrequencyPenalty: Fixed(0.0),
		PresencePenalty:  Fixed(0.0),
		Logprobs:         false,
		TopLogprobs:      Unsupported(),
		LogitBias:        false,
		MaxN:             1,
		Reasoning:        true,
	}
}

// SupportFor returns the parameter policy for a model ID. Unknown models
// get the permissive standard policy.
func SupportFor(model string) Support {
	if strings.HasPrefix(model, "gpt-5") ||
		strings.HasPrefix(model, "o1") ||
		strings.HasPrefix(model, "o3") ||
		strings.HasPrefix(model, "o4") {
		return reasoningSupport()
	}
	return standardSupport()
}

// WarnDropped logs the standard message for a parameter removed by policy.
func WarnDropped(logger *slog.Logger, model, param string, value any) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("parameter not supported by model, ignoring",
		"model", model,
		"param", param,
		"value", value,
	)
}
