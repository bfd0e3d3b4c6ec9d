// Package auth resolves credentials and endpoint URLs for OpenAI and
// Azure OpenAI deployments.
package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/oaitools/openaitools-go/apierr"
)

const (
	openAIBaseURL          = "https://api.openai.com/v1"
	openAIRealtimeURL      = "wss://api.openai.com/v1/realtime"
	defaultAzureAPIVersion = "2024-08-01-preview"
)

var loadEnvOnce sync.Once

// loadEnv pulls a .env file into the process environment once. Missing
// files are fine.
func loadEnv() {
	loadEnvOnce.Do(func() { _ = godotenv.Load() })
}

type kind int

const (
	kindOpenAI kind = iota
	kindAzure
)

// Provider carries a credential plus everything needed to build request
// URLs and headers for one API endpoint.
type Provider struct {
	kind       kind
	apiKey     string
	token      string
	resource   string
	deployment string
	apiVersion string
	baseURL    string
}

// OpenAI returns a provider using a bearer API key against the public
// endpoint.
func OpenAI(apiKey string) *Provider {
	return &Provider{kind: kindOpenAI, apiKey: apiKey, baseURL: openAIBaseURL}
}

// OpenAIFromEnv reads OPENAI_API_KEY.
func OpenAIFromEnv() (*Provider, error) {
	loadEnv()
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, apierr.ErrMissingAPIKey
	}
	return OpenAI(key), nil
}

// OpenAICompatible targets a non-Azure endpoint that speaks the OpenAI
// wire protocol.
func OpenAICompatible(apiKey, baseURL string) *Provider {
	return &Provider{kind: kindOpenAI, apiKey: apiKey, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// AzureConfig configures an Azure OpenAI provider. Either APIKey or
// Token must be set; Token takes an Entra bearer credential.
type AzureConfig struct {
	APIKey     string
	Token      string
	Resource   string
	Deployment string
	APIVersion string
	// BaseURL switches to static mode: paths are inserted before the
	// query string of this URL instead of being built from Resource
	// and Deployment.
	BaseURL string
}

// Azure returns an Azure OpenAI provider.
func Azure(cfg AzureConfig) (*Provider, error) {
	if cfg.APIKey == "" && cfg.Token == "" {
		return nil, apierr.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" && (cfg.Resource == "" || cfg.Deployment == "") {
		return nil, &apierr.ConfigError{Field: "azure", Reason: "resource and deployment required without a base URL"}
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAzureAPIVersion
	}
	return &Provider{
		kind:       kindAzure,
		apiKey:     cfg.APIKey,
		token:      cfg.Token,
		resource:   cfg.Resource,
		deployment: cfg.Deployment,
		apiVersion: cfg.APIVersion,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
	}, nil
}

// AzureFromEnv reads AZURE_OPENAI_API_KEY or AZURE_OPENAI_TOKEN together
// with AZURE_OPENAI_RESOURCE_NAME, AZURE_OPENAI_DEPLOYMENT_NAME,
// AZURE_OPENAI_API_VERSION and AZURE_OPENAI_ENDPOINT.
func AzureFromEnv() (*Provider, error) {
	loadEnv()
	return Azure(AzureConfig{
		APIKey:     os.Getenv("AZURE_OPENAI_API_KEY"),
		Token:      os.Getenv("AZURE_OPENAI_TOKEN"),
		Resource:   os.Getenv("AZURE_OPENAI_RESOURCE_NAME"),
		Deployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
		APIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		BaseURL:    os.Getenv("AZURE_OPENAI_ENDPOINT"),
	})
}

// Detect picks a provider from a URL: anything under .openai.azure.com is
// treated as Azure in static mode, everything else as OpenAI-compatible.
func Detect(baseURL, apiKey string) (*Provider, error) {
	if strings.Contains(baseURL, ".openai.azure.com") {
		return Azure(AzureConfig{APIKey: apiKey, BaseURL: baseURL})
	}
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return OpenAICompatible(apiKey, baseURL), nil
}

// FromEnv tries Azure configuration first, then falls back to OPENAI_API_KEY.
func FromEnv() (*Provider, error) {
	loadEnv()
	if os.Getenv("AZURE_OPENAI_API_KEY") != "" || os.Getenv("AZURE_OPENAI_TOKEN") != "" {
		return AzureFromEnv()
	}
	return OpenAIFromEnv()
}

// IsAzure reports whether the provider targets an Azure deployment.
func (p *Provider) IsAzure() bool { return p.kind == kindAzure }

// Headers returns the auth headers for HTTP requests.
func (p *Provider) Headers() http.Header {
	h := http.Header{}
	switch p.kind {
	case kindAzure:
		if p.token != "" {
			h.Set("Authorization", "Bearer "+p.token)
		} else {
			h.Set("api-key", p.apiKey)
		}
	default:
		h.Set("Authorization", "Bearer "+p.apiKey)
	}
	return h
}

// BuildURL resolves an API path like "chat/completions" against the
// provider endpoint. For Azure the api-version query parameter is always
// present.
func (p *Provider) BuildURL(path string) (string, error) {
	path = strings.TrimPrefix(path, "/")
	switch p.kind {
	case kindAzure:
		if p.baseURL != "" {
			return azureStaticURL(p.baseURL, path, p.apiVersion)
		}
		return fmt.Sprintf("https://%s.openai.azure.com/openai/deployments/%s/%s?api-version=%s",
			p.resource, p.deployment, path, url.QueryEscape(p.apiVersion)), nil
	default:
		return p.baseURL + "/" + path, nil
	}
}

// azureStaticURL splices the path between the configured base URL and its
// query string, keeping api-version set.
func azureStaticURL(base, path, version string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", &apierr.ConfigError{Field: "base_url", Reason: err.Error()}
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + path
	q := u.Query()
	if q.Get("api-version") == "" {
		q.Set("api-version", version)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// RealtimeURL returns the websocket endpoint and headers for a realtime
// session with the given model.
func (p *Provider) RealtimeURL(model string) (string, http.Header, error) {
	h := p.Headers()
	switch p.kind {
	case kindAzure:
		deployment := p.deployment
		if deployment == "" {
			deployment = model
		}
		if p.resource == "" {
			return "", nil, &apierr.ConfigError{Field: "resource", Reason: "required for realtime"}
		}
		u := fmt.Sprintf("wss://%s.openai.azure.com/openai/realtime?api-version=%s&deployment=%s",
			p.resource, url.QueryEscape(p.apiVersion), url.QueryEscape(deployment))
		return u, h, nil
	default:
		h.Set("OpenAI-Beta", "realtime=v1")
		base := openAIRealtimeURL
		if p.baseURL != openAIBaseURL && p.baseURL != "" {
			u, err := url.Parse(p.baseURL)
			if err != nil {
				return "", nil, &apierr.ConfigError{Field: "base_url", Reason: err.Error()}
			}
			switch u.Scheme {
			case "https":
				u.Scheme = "wss"
			case "http":
				u.Scheme = "ws"
			}
			u.Path = strings.TrimSuffix(u.Path, "/") + "/realtime"
			base = u.String()
		}
		return base + "?model=" + url.QueryEscape(model), h, nil
	}
}
