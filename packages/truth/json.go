package truth

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// jsonDocument returns the subject as JSON text. Strings and byte slices
// are taken as is; other values are marshalled.
func (s *Subject) jsonDocument() ([]byte, bool) {
	s.t.Helper()
	if str, ok := asString(s.actual); ok {
		return []byte(str), true
	}
	data, err := json.Marshal(s.actual)
	if err != nil {
		s.invalid("%s cannot be encoded as JSON: %v", s.subjectString(), err)
		return nil, false
	}
	return data, true
}

func (s *Subject) IsValidJSON() {
	s.t.Helper()
	s.resolve()
	str, ok := s.str()
	if !ok {
		return
	}
	if !gjson.Valid(str) {
		s.failWithProposition("is valid JSON", "")
	}
}

// IsJSONEqualTo asserts that the subject and expected decode to the same
// JSON value, ignoring formatting and key order. expected may be JSON
// text or any value that encodes to JSON.
func (s *Subject) IsJSONEqualTo(expected any) {
	s.t.Helper()
	s.resolve()
	doc, ok := s.jsonDocument()
	if !ok {
		return
	}
	var got any
	if err := json.Unmarshal(doc, &got); err != nil {
		s.failWithProposition("is valid JSON", "")
		return
	}
	want, err := decodeJSON(expected)
	if err != nil {
		s.invalid("<%s> is not JSON: %v", repr(expected), err)
		return
	}
	if equal(got, want) {
		return
	}
	suffix := ""
	if d := diff(want, got); d != "" {
		suffix = "\nDiff (-expected +actual):\n" + d
	}
	s.failWithProposition(fmt.Sprintf("is JSON equal to <%s>", repr(expected)), suffix)
}

func decodeJSON(v any) (any, error) {
	data, ok := asString(v)
	raw := []byte(data)
	if !ok {
		var err error
		if raw, err = json.Marshal(v); err != nil {
			return nil, err
		}
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	return strings.TrimPrefix(bracketIndex.ReplaceAllString(path, ".$1"), ".")
}

// JSONPath returns a subject for the value at path in the JSON subject,
// in gjson syntax with [N] accepted for array indexes. Objects decode to
// map[string]any, arrays to []any and numbers to float64.
func (s *Subject) JSONPath(path string) *Subject {
	s.t.Helper()
	s.resolve()
	doc, ok := s.jsonDocument()
	if !ok {
		return s.detached()
	}
	result := gjson.GetBytes(doc, convertBracketNotation(path))
	if !result.Exists() {
		s.failComparingValues("has JSON path", path)
		return s.detached()
	}
	d := s.derive(result.Value())
	d.name = path
	return d
}

// MatchesJSONSchema validates the subject against schema, given inline
// as JSON text or as the path of a schema file.
func (s *Subject) MatchesJSONSchema(schema string) {
	s.t.Helper()
	s.resolve()
	doc, ok := s.jsonDocument()
	if !ok {
		return
	}
	var schemaLoader gojsonschema.JSONLoader
	if trimmed := strings.TrimSpace(schema); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		schemaLoader = gojsonschema.NewStringLoader(schema)
	} else {
		abs, err := filepath.Abs(schema)
		if err != nil {
			s.invalid("bad schema path %q: %v", schema, err)
			return
		}
		schemaLoader = gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs))
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		s.invalid("schema validation error: %v", err)
		return
	}
	if result.Valid() {
		return
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	s.failWithProposition("matches the JSON schema", " Errors: "+strings.Join(errs, "; "))
}
