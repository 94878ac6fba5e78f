package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"resume-parser/internal/schema"
)

// Violation is a single schema violation: the path of the offending field
// and the kind of constraint it broke (required, invalid_type, format, ...).
type Violation struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationError reports why a document failed schema validation.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, fmt.Sprintf("%s: %s", v.Path, v.Message))
	}
	return "schema validation failed: " + strings.Join(msgs, "; ")
}

var (
	compileOnce    sync.Once
	compiledSchema *gojsonschema.Schema
	compileErr     error
)

func resumeSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schema.ResumeSchema())
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// ValidateJSON validates raw JSON bytes against the resume schema. It
// returns nil for a valid document and a *ValidationError listing every
// violation otherwise.
func ValidateJSON(doc []byte) error {
	return validate(gojsonschema.NewBytesLoader(doc))
}

// ValidateMap validates a generic map against the resume schema.
func ValidateMap(m map[string]interface{}) error {
	return validate(gojsonschema.NewGoLoader(m))
}

// Validate marshals the typed resume back to JSON and validates it, so a
// resume built in memory passes through exactly the same contract as one
// arriving over the wire.
func (r *Resume) Validate() error {
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return ValidateJSON(b)
}

func validate(doc gojsonschema.JSONLoader) error {
	s, err := resumeSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}

	res, err := s.Validate(doc)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	violations := make([]Violation, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		violations = append(violations, Violation{
			Path:    violationPath(e),
			Kind:    e.Type(),
			Message: e.Description(),
		})
	}
	return &ValidationError{Violations: violations}
}

// violationPath points at the field that broke the constraint. For missing
// required properties gojsonschema reports the parent object, so the missing
// property name is appended to get a usable path.
func violationPath(e gojsonschema.ResultError) string {
	path := e.Field()
	if e.Type() == "required" {
		if prop, ok := e.Details()["property"].(string); ok {
			if path == "(root)" {
				return prop
			}
			return path + "." + prop
		}
	}
	return path
}
