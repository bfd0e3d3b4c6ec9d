// Package models names the vendor model catalogue and the per-model
// sampling-parameter policy.
package models

// Chat model identifiers. Any other string is accepted as a custom model.
const (
	GPT52           = "gpt-5.2"
	GPT52ChatLatest = "gpt-5.2-chat-latest"
	GPT52Pro        = "gpt-5.2-pro"
	GPT51           = "gpt-5.1"
	GPT51ChatLatest = "gpt-5.1-chat-latest"
	GPT51CodexMax   = "gpt-5.1-codex-max"
	GPT5Mini        = "gpt-5-mini"
	GPT41           = "gpt-4.1"
	GPT41Mini       = "gpt-4.1-mini"
	GPT41Nano       = "gpt-4.1-nano"
	GPT4o           = "gpt-4o"
	GPT4oMini       = "gpt-4o-mini"
	GPT4oAudio      = "gpt-4o-audio-preview"
	GPT4Turbo       = "gpt-4-turbo"
	GPT4            = "gpt-4"
	GPT35Turbo      = "gpt-3.5-turbo"
	O1              = "o1"
	O1Pro           = "o1-pro"
	O3              = "o3"
	O3Mini          = "o3-mini"
	O4Mini          = "o4-mini"
)

// Embedding model identifiers.
const (
	TextEmbedding3Small = "text-embedding-3-small"
	TextEmbedding3Large = "text-embedding-3-large"
	TextEmbeddingAda002 = "text-embedding-ada-002"
)

// EmbeddingDimensions returns the native vector width of an embedding
// model, or 0 when unknown.
func EmbeddingDimensions(model string) int {
	switch model {
	case TextEmbedding3Small, TextEmbeddingAda002:
		return 1536
	case TextEmbedding3Large:
		return 3072
	}
	return 0
}

// Realtime model identifiers.
const (
	GPT4oRealtime     = "gpt-4o-realtime-preview"
	GPT4oMiniRealtime = "gpt-4o-mini-realtime-preview"
)

// Fine-tunable model identifiers.
const (
	FineTuneGPT4o     = GPT4o
	FineTuneGPT4oMini = GPT4oMini
	FineTuneGPT41     = GPT41
	FineTuneGPT41Mini = GPT41Mini
)
