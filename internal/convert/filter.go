package convert

import (
	"strings"

	"github.com/openlmtools/lmimport/internal/models"
)

// Filter decides which source conversations are in scope for a run.
// An explicit id beats keywords; with neither set everything matches.
type Filter struct {
	// ID selects exactly one conversation by its export id.
	ID string
	// Keywords match case-insensitively against the title and all
	// message text in the mapping. Abandoned branches count: "find the
	// conversation mentioning X" should work even when X only appears
	// in a regenerated reply.
	Keywords []string
}

// Match reports whether the conversation is in scope.
func (f Filter) Match(c models.Conversation) bool {
	if f.ID != "" {
		return c.ID == f.ID
	}
	if len(f.Keywords) == 0 {
		return true
	}

	if containsAny(c.Title, f.Keywords) {
		return true
	}
	for _, node := range c.Mapping {
		if node.Message == nil {
			continue
		}
		for _, part := range node.Message.Content.Parts {
			if containsAny(part, f.Keywords) {
				return true
			}
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
