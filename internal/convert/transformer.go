// Package convert turns source conversations into LM Studio chat
// documents: it linearizes the mapping tree, scrubs message text, routes
// $tag$ titles into subfolders, and assigns the monotonically increasing
// identifiers that name the output files.
package convert

import (
	"fmt"

	"github.com/openlmtools/lmimport/internal/models"
	"github.com/openlmtools/lmimport/internal/normalize"
	"github.com/openlmtools/lmimport/internal/title"
	"github.com/openlmtools/lmimport/internal/tree"
)

// DefaultTemperature is stamped into per-chat prediction configs when
// no temperature is configured.
const DefaultTemperature = 0.7

// Options configure a Transformer.
type Options struct {
	// ModelName is stamped into genInfo and lastUsedModel fields.
	ModelName string
	// Temperature for the per-chat prediction config, used as-is: zero
	// is a valid temperature, not "unset".
	Temperature float64
}

// Transformer converts one source conversation at a time. It holds no
// per-conversation state; the id allocator is passed in by the driver.
type Transformer struct {
	opts Options
}

// NewTransformer returns a Transformer, applying the default model name
// when none is set.
func NewTransformer(opts Options) *Transformer {
	if opts.ModelName == "" {
		opts.ModelName = models.DefaultModelName
	}
	return &Transformer{opts: opts}
}

// Result is one converted conversation plus its placement metadata.
type Result struct {
	Doc models.ChatDocument
	// Folder is the sanitized routing subfolder; empty means the output
	// root.
	Folder string
	// CreatedAtMs is the derived identifier: filename stem, document
	// createdAt, and file mtime.
	CreatedAtMs int64
	SourceID    string
}

// turn is one visible transcript entry on the active path.
type turn struct {
	role models.Role
	text string
}

// Convert produces the target document for one conversation. Errors are
// per-conversation: the caller records them and moves on. A conversation
// whose transcript normalizes to nothing still yields a valid, empty
// document.
//
// Three input shapes are handled: a mapping tree is flattened and
// rebuilt, an already-LM-shaped conversation (messages present, no
// mapping) is re-normalized in place, and a conversation with neither
// becomes an empty document.
func (t *Transformer) Convert(conv models.Conversation, alloc *IDAllocator) (*Result, error) {
	rawTitle := conv.Title
	if rawTitle == "" {
		rawTitle = conv.Name
	}
	folder, cleanTitle := title.ParseFolderTag(rawTitle)
	if folder != "" {
		folder = title.SanitizeFolder(folder)
	}

	createdAtMs := alloc.Next(sourceTimestamp(conv))

	var doc models.ChatDocument
	switch {
	case conv.Mapping != nil:
		turns, systemPrompt, err := t.collectTurns(conv)
		if err != nil {
			return nil, err
		}
		doc = t.newDocument(cleanTitle, createdAtMs, systemPrompt,
			buildMessages(turns, t.opts.ModelName, createdAtMs))
	case conv.Messages != nil:
		doc = t.renormalize(conv, cleanTitle, createdAtMs)
	default:
		doc = t.newDocument(cleanTitle, createdAtMs, "", []models.ChatMessage{})
	}

	return &Result{
		Doc:         doc,
		Folder:      folder,
		CreatedAtMs: createdAtMs,
		SourceID:    conv.ID,
	}, nil
}

// sourceTimestamp picks the timestamp the derived id starts from: last
// update, creation time, or the createdAt an LM-shaped file carries.
func sourceTimestamp(conv models.Conversation) float64 {
	if conv.UpdateTime > 0 {
		return conv.UpdateTime
	}
	if conv.CreateTime > 0 {
		return conv.CreateTime
	}
	return conv.CreatedAt
}

// newDocument assembles a document around a ready message list.
func (t *Transformer) newDocument(name string, createdAtMs int64, systemPrompt string, messages []models.ChatMessage) models.ChatDocument {
	return models.ChatDocument{
		Name:             name,
		CreatedAt:        createdAtMs,
		SystemPrompt:     systemPrompt,
		Messages:         messages,
		TokenCount:       models.EstimateTokens(messages),
		UsePerChatConfig: true,
		PerChatConfig:    models.NewPredictionConfig(t.opts.Temperature, systemPrompt),
		ClientInputFiles: []any{},
		LastUsedModel:    models.NewModelRef(t.opts.ModelName),
		Notes:            []any{},
		Plugins:          []any{},
		PluginConfigs:    map[string]any{},
		DisabledTools:    []any{},
		LooseFiles:       []any{},
	}
}

// renormalize rebuilds a conversation that is already in the target
// shape, typically a previously converted file fed back in. Text is
// scrubbed again, missing step identifiers and genInfo stubs are filled,
// and model and config defaults applied; fields the app owns (pinned,
// preset, an existing prediction config) pass through.
func (t *Transformer) renormalize(conv models.Conversation, name string, createdAtMs int64) models.ChatDocument {
	systemPrompt := normalize.Text(conv.SystemPrompt)

	stepIdx := 0
	nextStepID := func() string {
		id := fmt.Sprintf("%d-%d", createdAtMs, stepIdx)
		stepIdx++
		return id
	}

	messages := []models.ChatMessage{}
	for _, m := range conv.Messages {
		if len(m.Versions) == 0 {
			continue
		}
		v := m.Versions[0]

		if v.Type == "singleStep" && v.Role == models.RoleUser {
			messages = append(messages, models.ChatMessage{
				Versions: []models.MessageVersion{{
					Type:    "singleStep",
					Role:    models.RoleUser,
					Content: []models.TextBlock{models.NewTextBlock(normalize.Text(firstBlockText(v.Content)))},
				}},
			})
			continue
		}

		steps := make([]models.AssistantStep, 0, len(v.Steps))
		for _, s := range v.Steps {
			stepID := s.StepID
			if stepID == "" {
				stepID = nextStepID()
			}
			genInfo := s.GenInfo
			if genInfo.Identifier == "" {
				genInfo = models.NewGenInfo(t.opts.ModelName)
			}
			steps = append(steps, models.AssistantStep{
				Type:             "contentBlock",
				StepID:           stepID,
				Content:          []models.TextBlock{models.NewTextBlock(normalize.Text(firstBlockText(s.Content)))},
				DefaultInContext: true,
				InContext:        true,
				GenInfo:          genInfo,
			})
		}

		sender := v.SenderInfo
		if sender == nil || sender.SenderName == "" {
			sender = &models.SenderInfo{SenderName: t.opts.ModelName}
		}
		messages = append(messages, models.ChatMessage{
			Versions: []models.MessageVersion{{
				Type:       "multiStep",
				Role:       models.RoleAssistant,
				SenderInfo: sender,
				Steps:      steps,
			}},
		})
	}

	doc := t.newDocument(name, createdAtMs, systemPrompt, messages)
	doc.Pinned = conv.Pinned
	doc.Preset = conv.Preset
	if conv.PerChatConfig != nil && len(conv.PerChatConfig.Fields) > 0 {
		doc.PerChatConfig = *conv.PerChatConfig
	}
	if conv.LastUsedModel != nil && conv.LastUsedModel.Identifier != "" {
		ref := *conv.LastUsedModel
		if ref.IndexedModelIdentifier == "" {
			ref.IndexedModelIdentifier = ref.Identifier
		}
		if ref.LoadTimeConfig.Fields == nil {
			ref.LoadTimeConfig.Fields = []models.ConfigField{}
		}
		if ref.OperationTimeConfig.Fields == nil {
			ref.OperationTimeConfig.Fields = []models.ConfigField{}
		}
		doc.LastUsedModel = ref
	}
	return doc
}

func firstBlockText(blocks []models.TextBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	return blocks[0].Text
}

// collectTurns walks the active path and returns the visible transcript
// in order, plus the system prompt (the first visible system message).
// Structural nodes, hidden messages, tool output, and messages that
// normalize to empty are dropped.
func (t *Transformer) collectTurns(conv models.Conversation) ([]turn, string, error) {
	var turns []turn
	systemPrompt := ""

	for node, err := range tree.ActivePath(conv) {
		if err != nil {
			return nil, "", fmt.Errorf("flattening mapping: %w", err)
		}
		msg := node.Message
		if msg == nil || msg.Hidden() {
			continue
		}

		text := normalizeFragments(msg.Content.Parts)
		if text == "" {
			continue
		}

		switch msg.Author.Role {
		case models.RoleSystem:
			if systemPrompt == "" {
				systemPrompt = text
			}
		case models.RoleUser, models.RoleAssistant:
			turns = append(turns, turn{role: msg.Author.Role, text: text})
		}
		// Tool output is internal plumbing and never part of the
		// visible transcript.
	}

	return turns, systemPrompt, nil
}

func normalizeFragments(parts []string) string {
	joined := ""
	for _, p := range parts {
		if clean := normalize.Text(p); clean != "" {
			if joined != "" {
				joined += "\n\n"
			}
			joined += clean
		}
	}
	return joined
}

// buildMessages converts the linear transcript into LM Studio messages,
// grouping consecutive assistant turns into the steps of one multiStep
// message. Step identifiers are unique within the document.
func buildMessages(turns []turn, model string, createdAtMs int64) []models.ChatMessage {
	messages := []models.ChatMessage{}
	stepIdx := 0
	nextStepID := func() string {
		id := fmt.Sprintf("%d-%d", createdAtMs, stepIdx)
		stepIdx++
		return id
	}

	for i := 0; i < len(turns); {
		switch turns[i].role {
		case models.RoleUser:
			messages = append(messages, models.ChatMessage{
				Versions: []models.MessageVersion{{
					Type:    "singleStep",
					Role:    models.RoleUser,
					Content: []models.TextBlock{models.NewTextBlock(turns[i].text)},
				}},
			})
			i++
		case models.RoleAssistant:
			var steps []models.AssistantStep
			for i < len(turns) && turns[i].role == models.RoleAssistant {
				steps = append(steps, models.AssistantStep{
					Type:             "contentBlock",
					StepID:           nextStepID(),
					Content:          []models.TextBlock{models.NewTextBlock(turns[i].text)},
					DefaultInContext: true,
					InContext:        true,
					GenInfo:          models.NewGenInfo(model),
				})
				i++
			}
			messages = append(messages, models.ChatMessage{
				Versions: []models.MessageVersion{{
					Type:       "multiStep",
					Role:       models.RoleAssistant,
					SenderInfo: &models.SenderInfo{SenderName: model},
					Steps:      steps,
				}},
			})
		default:
			i++
		}
	}

	return messages
}
