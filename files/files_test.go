package files

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestUpload(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "batch", r.FormValue("purpose"))

		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "requests.jsonl", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-1","object":"file","bytes":42,"created_at":1,"filename":"requests.jsonl","purpose":"batch"}`))
	})

	f, err := c.Upload(context.Background(), "requests.jsonl", strings.NewReader(`{"custom_id":"1"}`), PurposeBatch)
	require.NoError(t, err)
	assert.Equal(t, "file-1", f.ID)
	assert.Equal(t, PurposeBatch, f.Purpose)
}

func TestListWithPurposeFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fine-tune", r.URL.Query().Get("purpose"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"file-1","object":"file","filename":"a.jsonl","purpose":"fine-tune"}]}`))
	})

	list, err := c.List(context.Background(), PurposeFineTune)
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "file-1", list.Data[0].ID)
}

func TestContent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/files/file-1/content", r.URL.Path)
		_, _ = w.Write([]byte("raw bytes"))
	})

	raw, err := c.Content(context.Background(), "file-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("raw bytes"), raw)
}

func TestDelete(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/files/file-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"file-1","object":"file","deleted":true}`))
	})

	resp, err := c.Delete(context.Background(), "file-1")
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
}
