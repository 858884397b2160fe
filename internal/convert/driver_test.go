package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlmtools/lmimport/internal/models"
)

// captureWriter collects results; failPaths simulates write errors for
// specific conversations.
type captureWriter struct {
	results []*Result
	failFor map[string]bool
}

func (w *captureWriter) Write(res *Result) (string, error) {
	if w.failFor[res.SourceID] {
		return "", errors.New("disk full")
	}
	w.results = append(w.results, res)
	return res.Folder, nil
}

func driverConv(id string, updateTime float64, text string) models.Conversation {
	return models.Conversation{
		ID:         id,
		Title:      "Conv " + id,
		UpdateTime: updateTime,
		Mapping: map[string]models.Node{
			"root": {ID: "root", Children: []string{"u1"}},
			"u1": {ID: "u1", Parent: ptr("root"), Message: &models.Message{
				Author:  models.Author{Role: models.RoleUser},
				Content: models.Content{Parts: []string{text}},
			}},
		},
	}
}

func ptr(s string) *string { return &s }

func newDriver(w Writer, f Filter) *Driver {
	return &Driver{
		Transformer: NewTransformer(Options{}),
		Filter:      f,
		Writer:      w,
	}
}

func TestDriverProcessesInOrder(t *testing.T) {
	w := &captureWriter{}
	d := newDriver(w, Filter{})

	summary := d.Run([]models.Conversation{
		driverConv("c1", 1700000000, "one"),
		driverConv("c2", 1700000000, "two"), // same timestamp
		driverConv("c3", 1600000000, "three"),
	})

	assert.Equal(t, 3, summary.Processed)
	assert.Zero(t, summary.Skipped)
	assert.Zero(t, summary.Failed)
	assert.NotEmpty(t, summary.RunID)

	require.Len(t, w.results, 3)
	assert.Less(t, w.results[0].CreatedAtMs, w.results[1].CreatedAtMs)
	assert.Less(t, w.results[1].CreatedAtMs, w.results[2].CreatedAtMs)
}

func TestDriverCountsSkipped(t *testing.T) {
	w := &captureWriter{}
	d := newDriver(w, Filter{ID: "c2"})

	summary := d.Run([]models.Conversation{
		driverConv("c1", 1700000000, "one"),
		driverConv("c2", 1700000001, "two"),
	})

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, w.results, 1)
	assert.Equal(t, "c2", w.results[0].SourceID)
}

func TestDriverRecordsFailuresAndContinues(t *testing.T) {
	broken := models.Conversation{
		ID:         "bad",
		Title:      "Broken",
		UpdateTime: 1700000000,
		Mapping: map[string]models.Node{
			"root": {ID: "root", Children: []string{"gone"}},
		},
	}

	w := &captureWriter{failFor: map[string]bool{"c2": true}}
	d := newDriver(w, Filter{})

	summary := d.Run([]models.Conversation{
		driverConv("c1", 1700000000, "one"),
		broken,
		driverConv("c2", 1700000002, "two"),
		driverConv("c3", 1700000003, "three"),
	})

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Failed)
	require.Len(t, summary.Failures, 2)
	assert.Equal(t, "bad", summary.Failures[0].ConversationID)
	assert.Contains(t, summary.Failures[0].Err, "missing child")
	assert.Equal(t, "c2", summary.Failures[1].ConversationID)
	assert.Contains(t, summary.Failures[1].Err, "disk full")
}
