package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validExport = `[{
	"id": "conv-1",
	"title": "Sample",
	"create_time": 1700000000.0,
	"update_time": 1700000100.5,
	"mapping": {
		"root": {"id": "root", "parent": null, "children": ["n1"]},
		"n1": {"id": "n1", "parent": "root", "children": [], "message": {
			"author": {"role": "user"},
			"content": {"parts": ["hi"]}
		}}
	}
}]`

func TestValidateExportBytesValid(t *testing.T) {
	assert.Empty(t, ValidateExportBytes([]byte(validExport)))
}

func TestValidateExportBytesSingleObject(t *testing.T) {
	single := `{"mapping": {"root": {"id": "root", "parent": null, "children": []}}}`
	assert.Empty(t, ValidateExportBytes([]byte(single)))
}

func TestValidateExportBytesNullTimestamps(t *testing.T) {
	doc := `{"title": null, "create_time": null, "update_time": null,
		"mapping": {"root": {"id": "root", "parent": null, "children": []}}}`
	assert.Empty(t, ValidateExportBytes([]byte(doc)))
}

func TestValidateExportBytesMappinglessShapes(t *testing.T) {
	// LM-shaped and empty conversations are convertible, so they conform.
	assert.Empty(t, ValidateExportBytes([]byte(`{"name": "Re-import", "messages": [{"versions": []}]}`)))
	assert.Empty(t, ValidateExportBytes([]byte(`[{"id": "conv-1", "title": "bare"}]`)))
}

func TestValidateExportBytesBadMappingType(t *testing.T) {
	errs := ValidateExportBytes([]byte(`{"mapping": []}`))
	require.NotEmpty(t, errs)
}

func TestValidateExportBytesBadNode(t *testing.T) {
	doc := `{"mapping": {"root": {"parent": null, "children": [42]}}}`
	errs := ValidateExportBytes([]byte(doc))
	require.NotEmpty(t, errs)
}

func TestValidateExportBytesNotJSON(t *testing.T) {
	errs := ValidateExportBytes([]byte("{nope"))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "JSON parse error")
}

func TestValidateExportBytesWrongTopLevel(t *testing.T) {
	errs := ValidateExportBytes([]byte(`"a string"`))
	require.NotEmpty(t, errs)
}
