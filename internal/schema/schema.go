// Package schema holds the resume JSON Schema (draft-07) that every parsed
// resume document is validated against before it is stored or served.
package schema

import (
	_ "embed"
)

//go:embed resume.schema.json
var resumeSchema []byte

// ResumeSchema returns the raw resume schema document.
func ResumeSchema() []byte {
	return resumeSchema
}
