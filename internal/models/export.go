package models

import (
	"encoding/json"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Role identifies the author of a message in the source export.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Conversation is one entry of the ChatGPT conversations.json export.
// The mapping is an arena keyed by node id; parent/child references are
// ids, never pointers, so a malformed export can't send us chasing a
// broken object graph.
type Conversation struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	CreateTime  float64         `json:"create_time"`
	UpdateTime  float64         `json:"update_time"`
	CurrentNode string          `json:"current_node,omitempty"`
	Mapping     map[string]Node `json:"mapping"`

	// Already-LM-shaped input: a previously converted file fed back in
	// carries messages instead of a mapping tree and is re-normalized
	// rather than rebuilt. Mapping wins when both are present.
	Name          string            `json:"name,omitempty"`
	CreatedAt     float64           `json:"createdAt,omitempty"`
	SystemPrompt  string            `json:"systemPrompt,omitempty"`
	Pinned        bool              `json:"pinned,omitempty"`
	Preset        string            `json:"preset,omitempty"`
	Messages      []ChatMessage     `json:"messages,omitempty"`
	PerChatConfig *PredictionConfig `json:"perChatPredictionConfig,omitempty"`
	LastUsedModel *ModelRef         `json:"lastUsedModel,omitempty"`
}

// Node is a single entry in a conversation's mapping tree. Structural
// nodes (the synthetic root, hidden scaffolding) carry no Message.
type Node struct {
	ID       string   `json:"id"`
	Parent   *string  `json:"parent"`
	Children []string `json:"children"`
	Message  *Message `json:"message"`
}

// Message is the payload of a message-bearing node.
type Message struct {
	ID         string         `json:"id"`
	Author     Author         `json:"author"`
	CreateTime float64        `json:"create_time"`
	Content    Content        `json:"content"`
	Metadata   map[string]any `json:"metadata"`
}

type Author struct {
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
}

// MessageMeta is the subset of the loose per-message metadata map that
// affects conversion.
type MessageMeta struct {
	Hidden bool `mapstructure:"is_visually_hidden_from_conversation"`
}

// Meta decodes the untyped metadata map. Decode errors are treated as
// "no metadata": the export puts arbitrary junk in here and a message
// must never be lost over it.
func (m *Message) Meta() MessageMeta {
	var meta MessageMeta
	if m.Metadata == nil {
		return meta
	}
	_ = mapstructure.Decode(m.Metadata, &meta)
	return meta
}

// Hidden reports whether the export marks this message as not part of the
// visible conversation.
func (m *Message) Hidden() bool {
	return m.Meta().Hidden
}

// maxContentBytes caps fragment collection so a pathological export
// can't balloon memory while we flatten nested content.
const maxContentBytes = 2_000_000

// Content holds the text fragments of a message. ChatGPT emits several
// shapes here: a bare string, {"parts": [...]} with string or object
// parts, {"text": "..."}, and nested lists for multimodal messages.
// UnmarshalJSON accepts all of them and keeps only the text.
type Content struct {
	Parts []string
}

func (c *Content) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Parts = collectText(raw)
	return nil
}

func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"parts": c.Parts})
}

// Text joins the fragments into one message body.
func (c Content) Text() string {
	return strings.Join(c.Parts, "\n\n")
}

// collectText walks an arbitrary decoded JSON value iteratively,
// gathering non-empty strings in document order.
func collectText(root any) []string {
	stack := []any{root}
	var parts []string
	seen := 0

	for len(stack) > 0 && seen <= maxContentBytes {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := obj.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				parts = append(parts, s)
				seen += len(s)
			}
		case []any:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		case map[string]any:
			if p, ok := v["parts"].([]any); ok {
				for i := len(p) - 1; i >= 0; i-- {
					stack = append(stack, p[i])
				}
			} else if t, ok := v["text"].(string); ok {
				if s := strings.TrimSpace(t); s != "" {
					parts = append(parts, s)
					seen += len(s)
				}
			}
			// Other object shapes (image pointers, audio refs) carry no
			// text and are skipped.
		}
	}
	return parts
}
