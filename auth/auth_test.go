package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaitools/openaitools-go/apierr"
)

func TestOpenAIHeadersAndURL(t *testing.T) {
	p := OpenAI("sk-test")
	assert.Equal(t, "Bearer sk-test", p.Headers().Get("Authorization"))
	assert.False(t, p.IsAzure())

	u, err := p.BuildURL("chat/completions")
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com/v1/chat/completions", u)
}

func TestOpenAICompatibleTrimsSlash(t *testing.T) {
	p := OpenAICompatible("k", "http://localhost:8080/v1/")
	u, err := p.BuildURL("/embeddings")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1/embeddings", u)
}

func TestAzureDynamicURL(t *testing.T) {
	p, err := Azure(AzureConfig{APIKey: "k", Resource: "myres", Deployment: "gpt4o"})
	require.NoError(t, err)
	assert.True(t, p.IsAzure())
	assert.Equal(t, "k", p.Headers().Get("api-key"))
	assert.Empty(t, p.Headers().Get("Authorization"))

	u, err := p.BuildURL("chat/completions")
	require.NoError(t, err)
	assert.Equal(t,
		"https://myres.openai.azure.com/openai/deployments/gpt4o/chat/completions?api-version=2024-08-01-preview",
		u)
}

func TestAzureTokenHeader(t *testing.T) {
	p, err := Azure(AzureConfig{Token: "tok", Resource: "r", Deployment: "d"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", p.Headers().Get("Authorization"))
	assert.Empty(t, p.Headers().Get("api-key"))
}

func TestAzureStaticURL(t *testing.T) {
	p, err := Azure(AzureConfig{
		APIKey:  "k",
		BaseURL: "https://myres.openai.azure.com/openai/deployments/gpt4o?api-version=2024-10-21",
	})
	require.NoError(t, err)

	u, err := p.BuildURL("chat/completions")
	require.NoError(t, err)
	assert.Equal(t,
		"https://myres.openai.azure.com/openai/deployments/gpt4o/chat/completions?api-version=2024-10-21",
		u)
}

func TestAzureStaticURLDefaultsVersion(t *testing.T) {
	p, err := Azure(AzureConfig{APIKey: "k", BaseURL: "https://myres.openai.azure.com/openai/deployments/gpt4o"})
	require.NoError(t, err)

	u, err := p.BuildURL("embeddings")
	require.NoError(t, err)
	assert.Contains(t, u, "api-version=2024-08-01-preview")
}

func TestAzureValidation(t *testing.T) {
	_, err := Azure(AzureConfig{Resource: "r", Deployment: "d"})
	assert.ErrorIs(t, err, apierr.ErrMissingAPIKey)

	_, err = Azure(AzureConfig{APIKey: "k"})
	var cfgErr *apierr.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDetect(t *testing.T) {
	p, err := Detect("https://myres.openai.azure.com/openai/deployments/d", "k")
	require.NoError(t, err)
	assert.True(t, p.IsAzure())

	p, err = Detect("", "k")
	require.NoError(t, err)
	assert.False(t, p.IsAzure())
	u, err := p.BuildURL("models")
	require.NoError(t, err)
	assert.Equal(t, "https://api.openai.com/v1/models", u)
}

func TestRealtimeURLOpenAI(t *testing.T) {
	p := OpenAI("sk-test")
	u, h, err := p.RealtimeURL("gpt-4o-realtime-preview")
	require.NoError(t, err)
	assert.Equal(t, "wss://api.openai.com/v1/realtime?model=gpt-4o-realtime-preview", u)
	assert.Equal(t, "realtime=v1", h.Get("OpenAI-Beta"))
	assert.Equal(t, "Bearer sk-test", h.Get("Authorization"))
}

func TestRealtimeURLCompatible(t *testing.T) {
	p := OpenAICompatible("k", "http://localhost:8080/v1")
	u, _, err := p.RealtimeURL("gpt-4o-realtime-preview")
	require.NoError(t, err)
	assert.Equal(t, "ws://localhost:8080/v1/realtime?model=gpt-4o-realtime-preview", u)
}

func TestRealtimeURLAzure(t *testing.T) {
	p, err := Azure(AzureConfig{APIKey: "k", Resource: "myres", Deployment: "rt"})
	require.NoError(t, err)
	u, h, err := p.RealtimeURL("ignored")
	require.NoError(t, err)
	assert.Equal(t, "wss://myres.openai.azure.com/openai/realtime?api-version=2024-08-01-preview&deployment=rt", u)
	assert.Equal(t, "k", h.Get("api-key"))
}
