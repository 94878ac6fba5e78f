// Package jsonio reads and writes the JSON documents the toolkit works
// with: parsed resumes and ad-hoc JSON payloads.
package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a JSON object from disk.
func Load(path string) (map[string]interface{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode json in %s: %w", path, err)
	}
	return out, nil
}

// Save writes v to path as indented JSON. Non-ASCII characters are written
// as-is rather than escaped.
func Save(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json for %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// SaveRaw writes already-encoded JSON to path, indenting it on the way for
// readability. Invalid JSON is written untouched.
func SaveRaw(path string, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		buf.Reset()
		buf.Write(raw)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
