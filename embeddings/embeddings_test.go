package embeddings

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/internal/api"
	"github.com/oaitools/openaitools-go/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	apiClient, err := api.New(api.Config{Provider: auth.OpenAICompatible("test-key", srv.URL)})
	require.NoError(t, err)
	return NewClient(apiClient)
}

func TestCreateValidation(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {})

	var cfgErr *apierr.ConfigError
	_, err := c.Create(context.Background(), Request{Input: "hi"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "model", cfgErr.Field)

	_, err = c.Create(context.Background(), Request{Model: models.TextEmbedding3Small})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "input", cfgErr.Field)
}

func TestCreateSingleInput(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object":"list","model":"text-embedding-3-small",
			"data":[{"object":"embedding","index":0,"embedding":[0.1,0.2,0.3]}],
			"usage":{"prompt_tokens":2,"total_tokens":2}
		}`))
	})

	resp, err := c.Create(context.Background(), Request{
		Model: models.TextEmbedding3Small,
		Input: "hello world",
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.InDelta(t, 0.2, resp.Data[0].Embedding[1], 1e-9)
	assert.Equal(t, 2, resp.Usage.TotalTokens)

	doc := gjson.ParseBytes(gotBody)
	assert.Equal(t, "hello world", doc.Get("input").String())
}

func TestCreateBase64Encoding(t *testing.T) {
	// [0.5, -1.0] as packed little-endian float32
	packed := make([]byte, 8)
	binary.LittleEndian.PutUint32(packed[0:], math.Float32bits(0.5))
	binary.LittleEndian.PutUint32(packed[4:], math.Float32bits(-1.0))
	encoded := base64.StdEncoding.EncodeToString(packed)

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object":"list","model":"text-embedding-3-small",
			"data":[{"object":"embedding","index":0,"embedding":"` + encoded + `"}],
			"usage":{"prompt_tokens":1,"total_tokens":1}
		}`))
	})

	resp, err := c.Create(context.Background(), Request{
		Model:          models.TextEmbedding3Small,
		Input:          "hi",
		EncodingFormat: EncodingBase64,
	})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, encoded, resp.Data[0].Base64)

	floats, err := resp.Data[0].Floats()
	require.NoError(t, err)
	require.Len(t, floats, 2)
	assert.InDelta(t, 0.5, floats[0], 1e-6)
	assert.InDelta(t, -1.0, floats[1], 1e-6)
}

func TestCreateBatchInput(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[],"model":"text-embedding-3-large","usage":{"prompt_tokens":0,"total_tokens":0}}`))
	})

	dims := 256
	_, err := c.Create(context.Background(), Request{
		Model:      models.TextEmbedding3Large,
		Inputs:     []string{"a", "b"},
		Dimensions: &dims,
	})
	require.NoError(t, err)

	doc := gjson.ParseBytes(gotBody)
	assert.Len(t, doc.Get("input").Array(), 2)
	assert.Equal(t, int64(256), doc.Get("dimensions").Int())
}
