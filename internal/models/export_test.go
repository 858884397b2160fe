package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentUnmarshalShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "parts of strings", in: `{"content_type":"text","parts":["Hello","World"]}`, want: []string{"Hello", "World"}},
		{name: "bare string", in: `"just text"`, want: []string{"just text"}},
		{name: "text field", in: `{"text":"from text field"}`, want: []string{"from text field"}},
		{name: "list of objects", in: `[{"text":"one"},{"text":"two"}]`, want: []string{"one", "two"}},
		{name: "mixed parts", in: `{"parts":["plain",{"text":"nested"}]}`, want: []string{"plain", "nested"}},
		{name: "image pointer ignored", in: `{"parts":[{"asset_pointer":"file-abc","content_type":"image_asset_pointer"},"caption"]}`, want: []string{"caption"}},
		{name: "empty strings dropped", in: `{"parts":["", "  ", "kept"]}`, want: []string{"kept"}},
		{name: "null", in: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Content
			require.NoError(t, json.Unmarshal([]byte(tt.in), &c))
			assert.Equal(t, tt.want, c.Parts)
		})
	}
}

func TestContentText(t *testing.T) {
	c := Content{Parts: []string{"one", "two"}}
	assert.Equal(t, "one\n\ntwo", c.Text())
}

func TestContentSizeGuard(t *testing.T) {
	// A huge fragment list stops growing once the cap is hit instead of
	// hanging on a pathological export.
	big := `["` + strings.Repeat(`x`, 1000) + `"`
	for range 5000 {
		big += `,"` + strings.Repeat(`y`, 1000) + `"`
	}
	big += `]`

	var c Content
	require.NoError(t, json.Unmarshal([]byte(big), &c))
	assert.Less(t, len(c.Parts), 5001)
}

func TestMessageHidden(t *testing.T) {
	hidden := Message{Metadata: map[string]any{"is_visually_hidden_from_conversation": true}}
	assert.True(t, hidden.Hidden())

	visible := Message{Metadata: map[string]any{"other": "stuff"}}
	assert.False(t, visible.Hidden())

	assert.False(t, (&Message{}).Hidden())
}

func TestConversationUnmarshal(t *testing.T) {
	raw := `{
		"id": "conv-1",
		"title": "$tech$GPU Notes",
		"create_time": 1700000000.25,
		"update_time": 1700000100.5,
		"current_node": "n2",
		"mapping": {
			"n1": {"id": "n1", "parent": null, "children": ["n2"], "message": null},
			"n2": {"id": "n2", "parent": "n1", "children": [], "message": {
				"id": "m1",
				"author": {"role": "user"},
				"content": {"content_type": "text", "parts": ["Hello"]}
			}}
		}
	}`

	var conv Conversation
	require.NoError(t, json.Unmarshal([]byte(raw), &conv))

	assert.Equal(t, "conv-1", conv.ID)
	assert.Equal(t, "n2", conv.CurrentNode)
	require.Contains(t, conv.Mapping, "n2")

	n2 := conv.Mapping["n2"]
	require.NotNil(t, n2.Parent)
	assert.Equal(t, "n1", *n2.Parent)
	require.NotNil(t, n2.Message)
	assert.Equal(t, RoleUser, n2.Message.Author.Role)
	assert.Equal(t, []string{"Hello"}, n2.Message.Content.Parts)

	assert.Nil(t, conv.Mapping["n1"].Message)
}

func TestConversationUnmarshalLMShape(t *testing.T) {
	raw := `{
		"name": "Re-import",
		"createdAt": 1700000000000,
		"systemPrompt": "Be brief",
		"pinned": true,
		"messages": [
			{"versions": [{
				"type": "singleStep",
				"role": "user",
				"content": [{"type": "text", "text": "Hello"}]
			}]},
			{"versions": [{
				"type": "multiStep",
				"role": "assistant",
				"steps": [{"stepIdentifier": "s-0", "content": ["bare string block"]}]
			}]}
		]
	}`

	var conv Conversation
	require.NoError(t, json.Unmarshal([]byte(raw), &conv))

	assert.Nil(t, conv.Mapping)
	assert.Equal(t, "Re-import", conv.Name)
	assert.Equal(t, float64(1700000000000), conv.CreatedAt)
	assert.True(t, conv.Pinned)

	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "Hello", conv.Messages[0].Versions[0].Content[0].Text)

	steps := conv.Messages[1].Versions[0].Steps
	require.Len(t, steps, 1)
	assert.Equal(t, "s-0", steps[0].StepID)
	assert.Equal(t, "bare string block", steps[0].Content[0].Text)
	assert.Equal(t, "text", steps[0].Content[0].Type)
}
