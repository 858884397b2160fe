// Package appdir resolves the default LM Studio conversations directory.
package appdir

import (
	"os"
	"path/filepath"
	"strings"
)

// pointerFile optionally redirects the LM Studio home to another
// location; the app writes it when the user moves their data directory.
const pointerFile = ".lmstudio-home-pointer"

const defaultHomeDir = ".lmstudio"

// ConversationsDir returns the directory LM Studio reads conversations
// from, honoring the home-pointer redirect when present.
func ConversationsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(lmHome(home), "conversations"), nil
}

func lmHome(userHome string) string {
	data, err := os.ReadFile(filepath.Join(userHome, pointerFile))
	if err == nil {
		if target := strings.TrimSpace(string(data)); target != "" {
			return target
		}
	}
	return filepath.Join(userHome, defaultHomeDir)
}
