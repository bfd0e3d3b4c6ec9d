package responses

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/internal/api"
	"github.com/oaitools/openaitools-go/messages"
	"github.com/oaitools/openaitools-go/models"
	"github.com/oaitools/openaitools-go/schema"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	apiClient, err := api.New(api.Config{Provider: auth.OpenAICompatible("test-key", srv.URL)})
	require.NoError(t, err)
	return NewClient(apiClient)
}

func floatPtr(v float64) *float64 { return &v }

func TestCreateValidation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	var cfgErr *apierr.ConfigError
	_, err := c.Create(context.Background(), Request{Input: "hi"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "model", cfgErr.Field)

	_, err = c.Create(context.Background(), Request{Model: models.GPT4o})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "input", cfgErr.Field)
}

func TestBuildBodyStringInput(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	b, err := c.buildBody(Request{Model: models.GPT4o, Input: "tell me a joke"})
	require.NoError(t, err)
	assert.Equal(t, "tell me a joke", b.Input)
}

func TestBuildBodyMessagesInput(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	b, err := c.buildBody(Request{
		Model: models.GPT4o,
		Messages: []messages.Message{
			messages.UserParts(messages.Text("describe"), messages.Image("https://example.com/a.png")),
		},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	doc := gjson.ParseBytes(raw)
	assert.Equal(t, "input_text", doc.Get("input.0.content.0.type").String())
	assert.Equal(t, "input_image", doc.Get("input.0.content.1.type").String())
	assert.Equal(t, "https://example.com/a.png", doc.Get("input.0.content.1.image_url").String())
}

func TestBuildBodyReasoningPolicy(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	b, err := c.buildBody(Request{
		Model:       models.O3Mini,
		Input:       "think",
		Temperature: floatPtr(0.2),
		Reasoning:   &Reasoning{Effort: EffortHigh},
	})
	require.NoError(t, err)
	assert.Nil(t, b.Temperature)
	require.NotNil(t, b.Reasoning)
	assert.Equal(t, EffortHigh, b.Reasoning.Effort)

	b, err = c.buildBody(Request{
		Model:     models.GPT4o,
		Input:     "no thinking",
		Reasoning: &Reasoning{Effort: EffortLow},
	})
	require.NoError(t, err)
	assert.Nil(t, b.Reasoning)
}

func TestBuildBodySchemaFormat(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	s := schema.New("answer")
	s.Def.AddString("text", "")
	b, err := c.buildBody(Request{Model: models.GPT4o, Input: "hi", Schema: s, TextVerbosity: "low"})
	require.NoError(t, err)

	raw, err := json.Marshal(b)
	require.NoError(t, err)
	doc := gjson.ParseBytes(raw)
	assert.Equal(t, "json_schema", doc.Get("text.format.type").String())
	assert.Equal(t, "answer", doc.Get("text.format.name").String())
	assert.Equal(t, "low", doc.Get("text.verbosity").String())
}

func TestCreateRoundTrip(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"resp_1","object":"response","status":"completed","model":"gpt-4o",
			"output":[{"type":"message","id":"msg_1","role":"assistant","status":"completed",
				"content":[{"type":"output_text","text":"hello"}]}],
			"usage":{"input_tokens":3,"output_tokens":1,"total_tokens":4}
		}`))
	})

	resp, err := c.Create(context.Background(), Request{Model: models.GPT4o, Input: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text())
	assert.Equal(t, "completed", resp.Status)

	doc := gjson.ParseBytes(gotBody)
	assert.Equal(t, "hi", doc.Get("input").String())
}

func TestGetCancelDelete(t *testing.T) {
	var paths []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"resp_1","object":"response","status":"cancelled"}`))
	})

	_, err := c.Get(context.Background(), "resp_1")
	require.NoError(t, err)
	_, err = c.Cancel(context.Background(), "resp_1")
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "resp_1"))

	assert.Equal(t, []string{
		"GET /responses/resp_1",
		"POST /responses/resp_1/cancel",
		"DELETE /responses/resp_1",
	}, paths)
}
