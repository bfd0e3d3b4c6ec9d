package messages

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMarshalPlainText(t *testing.T) {
	raw, err := json.Marshal(Chat{User("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","content":"hello"}`, string(raw))
}

func TestChatMarshalParts(t *testing.T) {
	m := UserParts(Text("what is this"), Image("https://example.com/cat.png"))
	raw, err := json.Marshal(Chat{m})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role":"user",
		"content":[
			{"type":"text","text":"what is this"},
			{"type":"image_url","image_url":{"url":"https://example.com/cat.png"}}
		]
	}`, string(raw))
}

func TestChatMarshalToolCallsOmitContent(t *testing.T) {
	m := Message{
		Role: RoleAssistant,
		ToolCalls: []ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: FunctionCall{Name: "get_weather", Arguments: `{"city":"Berlin"}`},
		}},
	}
	raw, err := json.Marshal(Chat{m})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"content"`)
	assert.Contains(t, string(raw), `"get_weather"`)
}

func TestChatMarshalToolResult(t *testing.T) {
	raw, err := json.Marshal(Chat{ToolResult("call_1", "22C")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"tool","tool_call_id":"call_1","content":"22C"}`, string(raw))
}

func TestChatUnmarshalStringContent(t *testing.T) {
	var c Chat
	require.NoError(t, json.Unmarshal([]byte(`{"role":"assistant","content":"hi there"}`), &c))
	assert.Equal(t, RoleAssistant, c.Role)
	assert.Equal(t, "hi there", c.Content)
	assert.Nil(t, c.Parts)
}

func TestChatUnmarshalPartsContent(t *testing.T) {
	data := []byte(`{"role":"user","content":[
		{"type":"text","text":"look"},
		{"type":"image_url","image_url":{"url":"https://example.com/a.png"}}
	]}`)
	var c Chat
	require.NoError(t, json.Unmarshal(data, &c))
	require.Len(t, c.Parts, 2)
	assert.Equal(t, "look", c.Parts[0].Text)
	assert.Equal(t, "https://example.com/a.png", c.Parts[1].ImageURL)
}

func TestChatUnmarshalToolCalls(t *testing.T) {
	data := []byte(`{"role":"assistant","content":null,"tool_calls":[
		{"id":"call_9","type":"function","function":{"name":"lookup","arguments":"{}"}}
	]}`)
	var c Chat
	require.NoError(t, json.Unmarshal(data, &c))
	require.Len(t, c.ToolCalls, 1)
	assert.Equal(t, "lookup", c.ToolCalls[0].Function.Name)
}

func TestInputMarshalPlainText(t *testing.T) {
	raw, err := json.Marshal(Input{User("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"user","content":"hello"}`, string(raw))
}

func TestInputMarshalParts(t *testing.T) {
	m := UserParts(Text("what is this"), Image("https://example.com/cat.png"))
	raw, err := json.Marshal(Input{m})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"role":"user",
		"content":[
			{"type":"input_text","text":"what is this"},
			{"type":"input_image","image_url":"https://example.com/cat.png"}
		]
	}`, string(raw))
}

func TestAdapters(t *testing.T) {
	ms := []Message{System("a"), User("b")}
	assert.Len(t, AsChat(ms), 2)
	assert.Len(t, AsInput(ms), 2)
	assert.Equal(t, RoleSystem, AsInput(ms)[0].Role)
}
