// Package doc defines the open, schema-flexible document type used at the
// system's boundary: query input, query output, and per-model-family
// configuration parameter bags. It is deliberately map[string]any rather
// than a closed struct so that "unknown fields are preserved and passed
// through" (spec.md §6) holds for every field this package's callers don't
// know about yet.
package doc

import "encoding/json"

// Document is an open key/value document, typically decoded from or
// encoded to JSON.
type Document map[string]any

// Decode parses JSON bytes into a Document.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return d, nil
}

// Encode serializes a Document to JSON.
func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Float64 reads a numeric field, returning ok=false if absent or not a number.
func (d Document) Float64(key string) (float64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64) // encoding/json decodes all JSON numbers as float64
	return f, ok
}

// String reads a string field, returning ok=false if absent or not a string.
func (d Document) String(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Section reads a nested object field (e.g. the "traversal" parameter bag
// within a configuration document), returning ok=false if absent or not an
// object.
func (d Document) Section(key string) (Document, bool) {
	v, ok := d[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}

	return Document(m), true
}

// With returns a shallow copy of d with key set to value, leaving d
// untouched. Used by output transforms that augment an input document
// without mutating the caller's copy.
func (d Document) With(key string, value any) Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[key] = value

	return out
}
