package fudiff

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/asynkron/fudiff/internal/schema"
)

var (
	diffSchemaLoader     gojsonschema.JSONLoader
	diffSchemaLoaderErr  error
	diffSchemaLoaderOnce sync.Once
)

// ToJSON serializes the diff to the interchange document format: a single
// JSON object with optional path metadata and the hunk list. The output
// validates against the same schema ParseJSON enforces.
func (d *Diff) ToJSON() ([]byte, error) {
	doc := *d
	if doc.Hunks == nil {
		doc.Hunks = []Hunk{}
	}
	return json.MarshalIndent(&doc, "", "  ")
}

// ParseJSON hydrates a Diff from the interchange document format, validating
// the payload against the document schema before unmarshalling so malformed
// machine-generated documents fail with a description of every violation.
func ParseJSON(data []byte) (*Diff, error) {
	loader, err := loadDiffSchema()
	if err != nil {
		return nil, fmt.Errorf("fudiff: load diff schema: %w", err)
	}

	result, err := gojsonschema.Validate(loader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &Error{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("invalid interchange document: %v", err),
		}
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &Error{
			Code:    ErrCodeParse,
			Message: "interchange document failed schema validation: " + strings.Join(issues, "; "),
		}
	}

	var diff Diff
	if err := json.Unmarshal(data, &diff); err != nil {
		return nil, &Error{
			Code:    ErrCodeParse,
			Message: fmt.Sprintf("invalid interchange document: %v", err),
		}
	}
	return &diff, nil
}

func loadDiffSchema() (gojsonschema.JSONLoader, error) {
	diffSchemaLoaderOnce.Do(func() {
		schemaMap, err := schema.DiffDocumentSchema()
		if err != nil {
			diffSchemaLoaderErr = err
			return
		}
		diffSchemaLoader = gojsonschema.NewGoLoader(schemaMap)
	})
	if diffSchemaLoaderErr != nil {
		return nil, diffSchemaLoaderErr
	}
	return diffSchemaLoader, nil
}
