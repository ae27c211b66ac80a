// Package schema holds the JSON schema for the diff interchange document.
package schema

import "encoding/json"

// diffDocumentSchema is the canonical schema source. Keeping it as JSON makes
// it trivial to share with non-Go producers of the interchange format.
const diffDocumentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["hunks"],
  "properties": {
    "oldPath": {"type": "string"},
    "newPath": {"type": "string"},
    "hunks": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "contextBefore": {"type": "array", "items": {"type": "string"}},
          "deletions": {"type": "array", "items": {"type": "string"}},
          "additions": {"type": "array", "items": {"type": "string"}},
          "contextAfter": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

// DiffDocumentSchema returns the interchange document schema as a generic
// map, suitable for loading into a JSON schema validator.
func DiffDocumentSchema() (map[string]any, error) {
	var schemaMap map[string]any
	if err := json.Unmarshal([]byte(diffDocumentSchema), &schemaMap); err != nil {
		return nil, err
	}
	return schemaMap, nil
}
