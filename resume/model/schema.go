package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// FieldError is a single schema violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every schema violation found in a resume.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("resume validation failed:")
	for i, e := range ve.Errors {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, e.Field, e.Message)
	}
	return sb.String()
}

// Validate checks r against the canonical resume schema.
func Validate(r Resume) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal resume: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate resume: %w", err)
	}
	if result.Valid() {
		return nil
	}
	ve := &ValidationError{}
	for _, e := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{Field: e.Field(), Message: e.Description()})
	}
	return ve
}
