// Package transform implements the declarative rules that move manifest
// fields into standalone config files. A transform names its candidate
// filenames per output format, in preference order; extraction picks the
// target filename, serializes the field's value for that format, and removes
// the field from the manifest.
package transform

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/scaffold/internal/tree"
)

// Format identifies a config file output format family.
type Format string

const (
	FormatJS    Format = "js"    // script file assigning the value to module.exports
	FormatJSON  Format = "json"  // pretty-printed JSON
	FormatYAML  Format = "yaml"  // YAML document
	FormatLines Format = "lines" // one list entry per line
)

// Candidates pairs a format with its candidate filenames in preference order.
type Candidates struct {
	Format    Format
	Filenames []string
}

// Transform converts one manifest field into a standalone config file.
// Candidate format families are tried in declaration order; within a family,
// filenames are tried in declaration order.
type Transform struct {
	Candidates []Candidates
}

// NewTransform builds a transform from (format, filenames...) groups.
func NewTransform(groups ...Candidates) Transform {
	return Transform{Candidates: groups}
}

// Resolve picks the target filename and serializes value for it. When
// checkExisting is set, a candidate already present in files wins, so an
// existing config file of a different format is extended rather than
// silently shadowed by a new one; otherwise the first candidate of the
// preferred format is used. The returned content always ends with exactly
// one trailing newline.
func (t Transform) Resolve(value any, checkExisting bool, files tree.Tree) (string, string, error) {
	filename, format := t.target(checkExisting, files)
	if filename == "" {
		return "", "", fmt.Errorf("transform has no candidate filenames")
	}
	content, err := Serialize(value, format)
	if err != nil {
		return "", "", err
	}
	return filename, content, nil
}

func (t Transform) target(checkExisting bool, files tree.Tree) (string, Format) {
	if checkExisting && files != nil {
		for _, group := range t.Candidates {
			for _, name := range group.Filenames {
				if files.Has(name) {
					return name, group.Format
				}
			}
		}
	}
	for _, group := range t.Candidates {
		if len(group.Filenames) > 0 {
			return group.Filenames[0], group.Format
		}
	}
	return "", ""
}

// Serialize renders value in the given format with a trailing newline.
func Serialize(value any, format Format) (string, error) {
	switch format {
	case FormatJS:
		return GenJSConfig(value)
	case FormatJSON:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json config: %w", err)
		}
		return ensureEOL(string(data)), nil
	case FormatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("marshal yaml config: %w", err)
		}
		return ensureEOL(string(data)), nil
	case FormatLines:
		list, ok := value.([]any)
		if !ok {
			return "", fmt.Errorf("line-list config requires an array value, got %T", value)
		}
		lines := make([]string, 0, len(list))
		for _, entry := range list {
			lines = append(lines, fmt.Sprint(entry))
		}
		return ensureEOL(strings.Join(lines, "\n")), nil
	default:
		return "", fmt.Errorf("unknown config format %q", format)
	}
}

// GenJSConfig renders value as a script-format config file body: the value
// serialized as an assigned module value.
func GenJSConfig(value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal js config: %w", err)
	}
	return ensureEOL("module.exports = " + string(data)), nil
}

func ensureEOL(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
