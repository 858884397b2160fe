package models

import "encoding/json"

// DefaultModelName is stamped into documents when no model is configured.
const DefaultModelName = "qwen2.5-vl-72b-instruct"

// ChatDocument is the per-conversation JSON file LM Studio reads from its
// conversations directory. Field names and defaults follow the files the
// app itself writes.
type ChatDocument struct {
	Name             string           `json:"name"`
	Pinned           bool             `json:"pinned"`
	CreatedAt        int64            `json:"createdAt"`
	Preset           string           `json:"preset"`
	TokenCount       int              `json:"tokenCount"`
	SystemPrompt     string           `json:"systemPrompt"`
	Messages         []ChatMessage    `json:"messages"`
	UsePerChatConfig bool             `json:"usePerChatPredictionConfig"`
	PerChatConfig    PredictionConfig `json:"perChatPredictionConfig"`
	ClientInput      string           `json:"clientInput"`
	ClientInputFiles []any            `json:"clientInputFiles"`
	UserFilesBytes   int64            `json:"userFilesSizeBytes"`
	LastUsedModel    ModelRef         `json:"lastUsedModel"`
	Notes            []any            `json:"notes"`
	Plugins          []any            `json:"plugins"`
	PluginConfigs    map[string]any   `json:"pluginConfigs"`
	DisabledTools    []any            `json:"disabledPluginTools"`
	LooseFiles       []any            `json:"looseFiles"`
}

// ChatMessage wraps one turn. LM Studio keeps every regenerated version;
// an import produces exactly one.
type ChatMessage struct {
	Versions []MessageVersion `json:"versions"`
	Selected int              `json:"currentlySelected"`
}

// MessageVersion is either a singleStep user turn (Content set) or a
// multiStep assistant turn (Steps set).
type MessageVersion struct {
	Type       string          `json:"type"`
	Role       Role            `json:"role"`
	Content    []TextBlock     `json:"content,omitempty"`
	SenderInfo *SenderInfo     `json:"senderInfo,omitempty"`
	Steps      []AssistantStep `json:"steps,omitempty"`
}

type SenderInfo struct {
	SenderName string `json:"senderName"`
}

// AssistantStep is one content block of a multiStep assistant message.
// StepID must be unique within the document.
type AssistantStep struct {
	Type             string      `json:"type"`
	StepID           string      `json:"stepIdentifier"`
	Content          []TextBlock `json:"content"`
	DefaultInContext bool        `json:"defaultShouldIncludeInContext"`
	InContext        bool        `json:"shouldIncludeInContext"`
	GenInfo          GenInfo     `json:"genInfo"`
}

type TextBlock struct {
	Type           string `json:"type"`
	Text           string `json:"text"`
	FromDraftModel bool   `json:"fromDraftModel"`
	IsStructural   bool   `json:"isStructural"`
}

// UnmarshalJSON accepts both the standard block object and a bare
// string, which some hand-edited files use for content entries.
func (b *TextBlock) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		b.Type = "text"
		return json.Unmarshal(data, &b.Text)
	}
	type plain TextBlock
	return json.Unmarshal(data, (*plain)(b))
}

// NewTextBlock builds the standard text block LM Studio expects.
func NewTextBlock(text string) TextBlock {
	return TextBlock{Type: "text", Text: text}
}

// GenInfo is the minimal generation-info stub LM Studio tolerates on
// imported steps.
type GenInfo struct {
	IndexedModelIdentifier string      `json:"indexedModelIdentifier"`
	Identifier             string      `json:"identifier"`
	LoadModelConfig        ConfigStub  `json:"loadModelConfig"`
	PredictionConfig       ConfigStub  `json:"predictionConfig"`
	Stats                  PredictStat `json:"stats"`
}

type PredictStat struct {
	StopReason           string  `json:"stopReason"`
	TokensPerSecond      float64 `json:"tokensPerSecond"`
	NumGpuLayers         int     `json:"numGpuLayers"`
	TimeToFirstTokenSec  float64 `json:"timeToFirstTokenSec"`
	TotalTimeSec         float64 `json:"totalTimeSec"`
	PromptTokensCount    int     `json:"promptTokensCount"`
	PredictedTokensCount int     `json:"predictedTokensCount"`
	TotalTokensCount     int     `json:"totalTokensCount"`
}

// NewGenInfo builds the stub for a given model name.
func NewGenInfo(model string) GenInfo {
	return GenInfo{
		IndexedModelIdentifier: model,
		Identifier:             model,
		LoadModelConfig:        ConfigStub{Fields: []ConfigField{}},
		PredictionConfig:       ConfigStub{Fields: []ConfigField{}},
		Stats:                  PredictStat{StopReason: "eosFound", NumGpuLayers: -1},
	}
}

type ModelRef struct {
	Identifier             string     `json:"identifier"`
	IndexedModelIdentifier string     `json:"indexedModelIdentifier"`
	LoadTimeConfig         ConfigStub `json:"instanceLoadTimeConfig"`
	OperationTimeConfig    ConfigStub `json:"instanceOperationTimeConfig"`
}

// NewModelRef builds a lastUsedModel reference for a model name.
func NewModelRef(model string) ModelRef {
	return ModelRef{
		Identifier:             model,
		IndexedModelIdentifier: model,
		LoadTimeConfig:         ConfigStub{Fields: []ConfigField{}},
		OperationTimeConfig:    ConfigStub{Fields: []ConfigField{}},
	}
}

type PredictionConfig struct {
	Fields []ConfigField `json:"fields"`
}

type ConfigField struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type ConfigStub struct {
	Fields []ConfigField `json:"fields"`
}

// NewPredictionConfig builds the per-chat prediction config stamped into
// every imported document.
func NewPredictionConfig(temperature float64, systemPrompt string) PredictionConfig {
	return PredictionConfig{
		Fields: []ConfigField{
			{Key: "llm.prediction.temperature", Value: temperature},
			{Key: "llm.prediction.systemPrompt", Value: systemPrompt},
		},
	}
}

// EstimateTokens is the rough chars/4 token estimate the target app uses
// for imported history.
func EstimateTokens(messages []ChatMessage) int {
	chars := 0
	for _, m := range messages {
		for _, v := range m.Versions {
			for _, b := range v.Content {
				chars += len(b.Text)
			}
			for _, s := range v.Steps {
				for _, b := range s.Content {
					chars += len(b.Text)
				}
			}
		}
	}
	return chars / 4
}
