// Package manifest implements the mutable project descriptor (package.json)
// that plugins read and edit during generation. The descriptor preserves
// top-level key insertion order so canonical sorting and serialization stay
// deterministic.
package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Field names with merge semantics of their own.
const (
	FieldDependencies    = "dependencies"
	FieldDevDependencies = "devDependencies"
	FieldScripts         = "scripts"
)

// DependencyFields lists the manifest fields holding package→range maps.
var DependencyFields = []string{FieldDependencies, FieldDevDependencies}

// Manifest is an insertion-ordered string→JSON-value mapping.
type Manifest struct {
	keys   []string
	values map[string]any
}

// New creates an empty manifest.
func New() *Manifest {
	return &Manifest{values: make(map[string]any)}
}

// FromMap creates a manifest from a plain map. Key order follows the order
// slice where given; remaining keys are appended in lexicographic order so
// construction from an unordered map stays deterministic.
func FromMap(m map[string]any, order ...string) *Manifest {
	out := New()
	seen := make(map[string]bool, len(order))
	for _, k := range order {
		if v, ok := m[k]; ok && !seen[k] {
			out.Set(k, v)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(m))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		out.Set(k, m[k])
	}
	return out
}

// FromJSON parses a manifest, preserving top-level key order.
func FromJSON(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("parse manifest: top-level value is not an object")
	}

	out := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse manifest key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse manifest: unexpected key token %v", keyTok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse manifest field %q: %w", key, err)
		}
		out.Set(key, value)
	}
	return out, nil
}

// Get returns the value stored under key.
func (m *Manifest) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Manifest) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores value under key, appending the key on first insertion.
func (m *Manifest) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Delete removes key if present.
func (m *Manifest) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the top-level keys in insertion order.
func (m *Manifest) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of top-level keys.
func (m *Manifest) Len() int {
	return len(m.keys)
}

// Name returns the manifest's name field, if it is a string.
func (m *Manifest) Name() string {
	if v, ok := m.values["name"].(string); ok {
		return v
	}
	return ""
}

// StringMap returns the named field as a string→string map. Non-string
// values are skipped. Returns nil when the field is absent or not an object.
func (m *Manifest) StringMap(field string) map[string]string {
	obj, ok := m.values[field].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

// Clone returns a deep copy. The generator keeps a clone of the pre-run
// manifest so extraction never clobbers user-authored fields.
func (m *Manifest) Clone() *Manifest {
	out := New()
	for _, k := range m.keys {
		out.Set(k, deepCopyValue(m.values[k]))
	}
	return out
}

func deepCopyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = deepCopyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}

// ToJSON serializes the manifest as pretty-printed JSON with 2-space
// indentation, preserving top-level key order, with a trailing newline.
// Nested objects serialize with encoding/json's sorted map keys, so output
// is a pure function of content.
func (m *Manifest) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n  ")
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, fmt.Errorf("marshal manifest key %q: %w", k, err)
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		valJSON, err := m.marshalField(k)
		if err != nil {
			return nil, fmt.Errorf("marshal manifest field %q: %w", k, err)
		}
		buf.Write(valJSON)
	}
	if len(m.keys) > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

// marshalField serializes one top-level value, indented for nesting under
// the manifest object. The scripts field keeps its priority prefix order;
// everything else goes through encoding/json, whose sorted map keys give
// dependency fields their alphabetical order.
func (m *Manifest) marshalField(key string) ([]byte, error) {
	if key == FieldScripts {
		if scripts, ok := m.values[key].(map[string]any); ok {
			return marshalOrderedObject(scripts, scriptOrder, "  ")
		}
	}
	return json.MarshalIndent(m.values[key], "  ", "  ")
}

// marshalOrderedObject serializes obj with keys ordered by the priority
// prefix, remaining keys lexicographic, using prefix as the base indent.
func marshalOrderedObject(obj map[string]any, priority []string, prefix string) ([]byte, error) {
	if len(obj) == 0 {
		return []byte("{}"), nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	ordered := orderKeys(keys, priority)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range ordered {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
		buf.WriteString(prefix)
		buf.WriteString("  ")
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteString(": ")
		valJSON, err := json.MarshalIndent(obj[k], prefix+"  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(valJSON)
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
