// Package output writes converted conversations to the LM Studio
// conversations directory layout: <root>/<folder>/<id>.conversation.json,
// with file times set to the derived identifier so directory listings
// sort chronologically.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/openlmtools/lmimport/internal/convert"
)

// DirWriter writes each result under Root. It implements
// [convert.Writer].
type DirWriter struct {
	Root string
}

// Filename returns the file name for a derived identifier.
func Filename(createdAtMs int64) string {
	return fmt.Sprintf("%d.conversation.json", createdAtMs)
}

// Write serializes the document to <root>/<folder>/<id>.conversation.json
// and stamps the file's times with the document's identifier.
func (w *DirWriter) Write(res *convert.Result) (string, error) {
	dir := w.Root
	if res.Folder != "" {
		dir = filepath.Join(w.Root, res.Folder)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(res.Doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal conversation: %w", err)
	}

	path := filepath.Join(dir, Filename(res.CreatedAtMs))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write conversation: %w", err)
	}

	mtime := time.UnixMilli(res.CreatedAtMs)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		return "", fmt.Errorf("set file times: %w", err)
	}

	return path, nil
}

// Clean removes the output root. Used by --clean before a run; a missing
// root is not an error.
func (w *DirWriter) Clean() error {
	if err := os.RemoveAll(w.Root); err != nil {
		return fmt.Errorf("clean output dir: %w", err)
	}
	return nil
}

// MemWriter collects results in memory for tests.
type MemWriter struct {
	Results []*convert.Result
	// Err, when set, is returned by every Write.
	Err error
}

func (w *MemWriter) Write(res *convert.Result) (string, error) {
	if w.Err != nil {
		return "", w.Err
	}
	w.Results = append(w.Results, res)
	return filepath.Join(res.Folder, Filename(res.CreatedAtMs)), nil
}
