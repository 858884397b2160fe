// Package schemas holds the embedded JSON Schemas shipped with lmimport.
package schemas

import _ "embed"

// ExportSchemaJSON describes the shape of a conversations.json export.
//
//go:embed export.schema.json
var ExportSchemaJSON string
