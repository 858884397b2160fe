// Package export reads a conversations.json bulk export from disk into
// typed structs. All shape tolerance lives here, at the boundary, so the
// rest of the pipeline can assume well-formed conversations.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/openlmtools/lmimport/internal/models"
)

var gzipMagic = []byte{0x1f, 0x8b}

// Load reads an export file and returns its conversations. The top level
// may be a single conversation object or an array. Gzip-compressed
// exports are detected by magic bytes and decompressed transparently.
// Errors from here are fatal to the run.
func Load(path string) ([]models.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decompressing export file: %w", err)
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, fmt.Errorf("decompressing export file: %w", err)
		}
	}

	return Parse(data)
}

// Parse decodes export JSON whose top level is a conversation object or
// an array of them.
func Parse(data []byte) ([]models.Conversation, error) {
	switch firstByte(data) {
	case '[':
		var convs []models.Conversation
		if err := json.Unmarshal(data, &convs); err != nil {
			return nil, fmt.Errorf("parsing export file: %w", err)
		}
		return convs, nil
	case '{':
		var conv models.Conversation
		if err := json.Unmarshal(data, &conv); err != nil {
			return nil, fmt.Errorf("parsing export file: %w", err)
		}
		return []models.Conversation{conv}, nil
	default:
		return nil, fmt.Errorf("export file must contain a JSON object or array of conversations")
	}
}

func firstByte(data []byte) byte {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b
	}
	return 0
}
