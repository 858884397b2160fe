package title

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFolderTag(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantFolder string
		wantTitle  string
	}{
		{name: "tagged title", in: "$tech$GPU Notes", wantFolder: "tech", wantTitle: "GPU Notes"},
		{name: "tag with surrounding space", in: "  $work$  Standup notes ", wantFolder: "work", wantTitle: "Standup notes"},
		{name: "plain title", in: "Plain Title", wantFolder: "", wantTitle: "Plain Title"},
		{name: "dollar later in title is text", in: "Costs are $5$ apiece", wantFolder: "", wantTitle: "Costs are $5$ apiece"},
		{name: "tag only keeps raw title", in: "$tech$", wantFolder: "tech", wantTitle: "$tech$"},
		{name: "empty title", in: "", wantFolder: "", wantTitle: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, clean := ParseFolderTag(tt.in)
			assert.Equal(t, tt.wantFolder, folder)
			assert.Equal(t, tt.wantTitle, clean)
		})
	}
}

func TestSanitizeFolder(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean name untouched", in: "tech", want: "tech"},
		{name: "forward slash replaced", in: "a/b", want: "a_b"},
		{name: "backslash replaced", in: `a\b`, want: "a_b"},
		{name: "reserved chars replaced", in: `no:"quotes?*`, want: "no__quotes__"},
		{name: "collapses runs of spaces", in: "too   many spaces", want: "too many spaces"},
		{name: "empty falls back", in: "   ", want: FallbackFolder},
		{name: "dot dot falls back", in: "..", want: FallbackFolder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFolder(tt.in))
		})
	}
}

func TestTagWithPathSeparatorIsSanitized(t *testing.T) {
	folder, clean := ParseFolderTag("$a/b$Title")
	assert.Equal(t, "a/b", folder)
	assert.Equal(t, "Title", clean)
	assert.Equal(t, "a_b", SanitizeFolder(folder))
}
