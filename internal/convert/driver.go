package convert

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openlmtools/lmimport/internal/models"
)

// Writer receives converted conversations. The concrete implementation
// writes files; tests substitute an in-memory fake.
type Writer interface {
	// Write persists one result and returns the path it landed at.
	Write(res *Result) (string, error)
}

// Driver runs a whole batch: filter, convert, write, count. It owns the
// id allocator, the only state shared across conversations.
type Driver struct {
	Transformer *Transformer
	Filter      Filter
	Writer      Writer
}

// Run processes conversations sequentially in source order. A failure to
// convert or write one conversation is recorded in the summary and the
// batch continues.
func (d *Driver) Run(convs []models.Conversation) models.Summary {
	summary := models.Summary{
		RunID:     uuid.NewString(),
		Timestamp: time.Now(),
	}
	alloc := &IDAllocator{}

	for i, conv := range convs {
		log := slog.With("conversation", conv.ID, "title", conv.Title, "index", i+1, "total", len(convs))

		if !d.Filter.Match(conv) {
			summary.Skipped++
			log.Debug("skipped by filter")
			continue
		}

		res, err := d.Transformer.Convert(conv, alloc)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, models.Failure{
				ConversationID: conv.ID,
				Title:          conv.Title,
				Err:            err.Error(),
			})
			log.Warn("conversion failed", "error", err)
			continue
		}

		path, err := d.Writer.Write(res)
		if err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, models.Failure{
				ConversationID: conv.ID,
				Title:          conv.Title,
				Err:            err.Error(),
			})
			log.Warn("write failed", "error", err)
			continue
		}

		summary.Processed++
		log.Debug("wrote conversation", "path", path, "messages", len(res.Doc.Messages))
	}

	return summary
}
