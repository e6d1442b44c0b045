package transform

import "log/slog"

// Registry maps manifest field names to config transforms. Lookup precedence
// is reserved → plugin-contributed → built-in, so plugins may override the
// defaults but never the reserved set.
type Registry struct {
	builtin  map[string]Transform
	plugin   map[string]Transform
	reserved map[string]Transform
}

// NewRegistry creates a registry seeded with the built-in and reserved
// transforms.
func NewRegistry() *Registry {
	return &Registry{
		builtin:  defaultTransforms(),
		plugin:   make(map[string]Transform),
		reserved: reservedTransforms(),
	}
}

// Add registers a plugin-contributed transform for a manifest field.
// Attempts to override a reserved field are dropped with a warning.
func (r *Registry) Add(key string, t Transform) {
	if _, ok := r.reserved[key]; ok {
		slog.Warn("config transform for reserved field ignored", "field", key)
		return
	}
	r.plugin[key] = t
}

// Lookup returns the transform registered for a manifest field.
func (r *Registry) Lookup(key string) (Transform, bool) {
	if t, ok := r.reserved[key]; ok {
		return t, true
	}
	if t, ok := r.plugin[key]; ok {
		return t, true
	}
	t, ok := r.builtin[key]
	return t, ok
}

// Has reports whether a transform is registered for the field.
func (r *Registry) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// defaultTransforms are the built-in field-to-file rules.
func defaultTransforms() map[string]Transform {
	return map[string]Transform{
		"babel": NewTransform(
			Candidates{Format: FormatJS, Filenames: []string{"babel.config.js"}},
		),
		"postcss": NewTransform(
			Candidates{Format: FormatJS, Filenames: []string{".postcssrc.js"}},
			Candidates{Format: FormatJSON, Filenames: []string{".postcssrc.json", ".postcssrc"}},
			Candidates{Format: FormatYAML, Filenames: []string{".postcssrc.yaml", ".postcssrc.yml"}},
		),
		"eslintConfig": NewTransform(
			Candidates{Format: FormatJS, Filenames: []string{".eslintrc.js"}},
			Candidates{Format: FormatJSON, Filenames: []string{".eslintrc.json", ".eslintrc"}},
			Candidates{Format: FormatYAML, Filenames: []string{".eslintrc.yaml", ".eslintrc.yml"}},
		),
		"jest": NewTransform(
			Candidates{Format: FormatJS, Filenames: []string{"jest.config.js"}},
		),
		"browserslist": NewTransform(
			Candidates{Format: FormatLines, Filenames: []string{".browserslistrc"}},
		),
	}
}

// reservedTransforms cannot be overridden by plugins: the tool's own config
// field must always land in its canonical file.
func reservedTransforms() map[string]Transform {
	return map[string]Transform{
		"scaffold": NewTransform(
			Candidates{Format: FormatJS, Filenames: []string{"scaffold.config.js"}},
		),
	}
}
