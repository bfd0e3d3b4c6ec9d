package batch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/oaitools/openaitools-go/apierr"
	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/internal/api"
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
	_, err := c.Create(context.Background(), CreateRequest{Endpoint: "/v1/chat/completions"})
	require.ErrorAs(t, err, &cfgErr)
}

func TestCreateDefaultsWindow(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batches", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"batch_1","object":"batch","endpoint":"/v1/chat/completions","input_file_id":"file-1","completion_window":"24h","status":"validating","created_at":1}`))
	})

	b, err := c.Create(context.Background(), CreateRequest{
		InputFileID: "file-1",
		Endpoint:    "/v1/chat/completions",
	})
	require.NoError(t, err)
	assert.Equal(t, "validating", b.Status)
	assert.Equal(t, "24h", gjson.GetBytes(gotBody, "completion_window").String())
}

func TestRetrieveAndCancel(t *testing.T) {
	var paths []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"batch_1","object":"batch","status":"cancelling","created_at":1,
			"request_counts":{"total":10,"completed":4,"failed":1}}`))
	})

	b, err := c.Retrieve(context.Background(), "batch_1")
	require.NoError(t, err)
	require.NotNil(t, b.RequestCounts)
	assert.Equal(t, 4, b.RequestCounts.Completed)

	_, err = c.Cancel(context.Background(), "batch_1")
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /batches/batch_1", "POST /batches/batch_1/cancel"}, paths)
}

func TestListPagination(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "batch_0", r.URL.Query().Get("after"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"batch_1","object":"batch","status":"completed","created_at":1}],"has_more":false}`))
	})

	list, err := c.List(context.Background(), 5, "batch_0")
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.False(t, list.HasMore)
}
