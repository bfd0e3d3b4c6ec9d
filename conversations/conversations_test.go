package conversations

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/oaitools/openaitools-go/auth"
	"github.com/oaitools/openaitools-go/internal/api"
	"github.com/oaitools/openaitools-go/messages"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	apiClient, err := api.New(api.Config{Provider: auth.OpenAICompatible("test-key", srv.URL)})
	require.NoError(t, err)
	return NewClient(apiClient)
}

func TestCreateWithSeedItems(t *testing.T) {
	var gotBody []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/conversations", r.URL.Path)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"conv_1","object":"conversation","created_at":1,"metadata":{"topic":"support"}}`))
	})

	conv, err := c.Create(context.Background(),
		map[string]string{"topic": "support"},
		[]messages.Message{messages.User("hi")},
	)
	require.NoError(t, err)
	assert.Equal(t, "conv_1", conv.ID)
	assert.Equal(t, "support", conv.Metadata["topic"])

	doc := gjson.ParseBytes(gotBody)
	assert.Equal(t, "support", doc.Get("metadata.topic").String())
	assert.Equal(t, "user", doc.Get("items.0.role").String())
	assert.Equal(t, "hi", doc.Get("items.0.content").String())
}

func TestGetUpdateDelete(t *testing.T) {
	var paths []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodDelete {
			_, _ = w.Write([]byte(`{"id":"conv_1","object":"conversation.deleted","deleted":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"conv_1","object":"conversation","created_at":1}`))
	})

	_, err := c.Get(context.Background(), "conv_1")
	require.NoError(t, err)
	_, err = c.Update(context.Background(), "conv_1", map[string]string{"topic": "billing"})
	require.NoError(t, err)
	del, err := c.Delete(context.Background(), "conv_1")
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	assert.Equal(t, []string{
		"GET /conversations/conv_1",
		"POST /conversations/conv_1",
		"DELETE /conversations/conv_1",
	}, paths)
}

func TestItems(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations/conv_1/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"item_1","object":"conversation.item","type":"message","role":"user","content":[{"type":"input_text","text":"hi"}]}],"has_more":false}`))
		case http.MethodGet:
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "item_0", r.URL.Query().Get("after"))
			_, _ = w.Write([]byte(`{"object":"list","data":[],"first_id":"","last_id":"","has_more":false}`))
		}
	})

	added, err := c.AddItems(context.Background(), "conv_1", []messages.Message{messages.User("hi")})
	require.NoError(t, err)
	require.Len(t, added.Data, 1)
	assert.Equal(t, "hi", added.Data[0].Content[0].Text)

	list, err := c.Items(context.Background(), "conv_1", 2, "item_0")
	require.NoError(t, err)
	assert.Empty(t, list.Data)
}

func TestGetAndDeleteItem(t *testing.T) {
	var paths []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"id":"item_1","object":"conversation.item","type":"message","role":"assistant","content":[{"type":"text","text":"hello"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"conv_1","object":"conversation","created_at":1}`))
	})

	item, err := c.GetItem(context.Background(), "conv_1", "item_1")
	require.NoError(t, err)
	assert.Equal(t, "assistant", item.Role)

	_, err = c.DeleteItem(context.Background(), "conv_1", "item_1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /conversations/conv_1/items/item_1",
		"DELETE /conversations/conv_1/items/item_1",
	}, paths)
}
