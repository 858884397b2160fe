// Package title handles the $folder$ routing prefix a conversation title
// may carry, and makes the folder name safe to use as a directory.
package title

import (
	"regexp"
	"strings"
)

// folderTag matches a single leading $name$ prefix. Tags appearing later
// in the title are plain text. The tag body is taken as-is and cleaned by
// SanitizeFolder, so a separator inside a tag cannot smuggle a path.
var folderTag = regexp.MustCompile(`^\s*\$([^$]+)\$\s*(.*)$`)

// unsafeChars are characters that can't appear in a directory name on at
// least one supported platform.
var unsafeChars = regexp.MustCompile(`[<>:"|?*\x00]`)

var multiSpace = regexp.MustCompile(`\s{2,}`)

// FallbackFolder is where untagged conversations land.
const FallbackFolder = "Uncategorized"

// ParseFolderTag splits a raw title into its routing folder and display
// title. Without a leading $tag$ the folder is empty and the title is
// returned trimmed.
func ParseFolderTag(raw string) (folder, clean string) {
	m := folderTag.FindStringSubmatch(raw)
	if m == nil {
		return "", strings.TrimSpace(raw)
	}
	folder = strings.TrimSpace(m[1])
	clean = strings.TrimSpace(m[2])
	if clean == "" {
		clean = strings.TrimSpace(raw)
	}
	return folder, clean
}

// SanitizeFolder makes a tag usable as a single directory name. Path
// separators and reserved characters become underscores so a tag can
// never escape the output root.
func SanitizeFolder(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = unsafeChars.ReplaceAllString(s, "_")
	s = multiSpace.ReplaceAllString(s, " ")
	if s == "" || s == "." || s == ".." {
		return FallbackFolder
	}
	return s
}
