// Package tree implements the virtual file tree: the in-memory path→content
// mapping that represents the target project state before persistence.
// Whole-file writes are last-writer-wins; path keys are normalized to
// forward-slash form before injection or comparison.
package tree

import (
	"sort"
	"strings"
)

// Tree maps slash-separated relative paths to file content. Content may be
// text or binary; callers that know they hold text use the string helpers.
type Tree map[string][]byte

// New creates an empty tree.
func New() Tree {
	return make(Tree)
}

// Write stores content under path, replacing any previous entry.
func (t Tree) Write(path string, content []byte) {
	t[path] = content
}

// WriteString stores text content under path, replacing any previous entry.
func (t Tree) WriteString(path, content string) {
	t[path] = []byte(content)
}

// Read returns the content stored under path.
func (t Tree) Read(path string) ([]byte, bool) {
	c, ok := t[path]
	return c, ok
}

// ReadString returns the content stored under path as text.
func (t Tree) ReadString(path string) (string, bool) {
	c, ok := t[path]
	return string(c), ok
}

// Has reports whether path is present.
func (t Tree) Has(path string) bool {
	_, ok := t[path]
	return ok
}

// Delete removes path if present.
func (t Tree) Delete(path string) {
	delete(t, path)
}

// Paths returns all paths in lexicographic order.
func (t Tree) Paths() []string {
	paths := make([]string, 0, len(t))
	for p := range t {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Snapshot returns a deep copy of the tree. The generation pipeline snapshots
// the tree before extraction so the writer can diff final against initial.
func (t Tree) Snapshot() Tree {
	out := make(Tree, len(t))
	for p, c := range t {
		dup := make([]byte, len(c))
		copy(dup, c)
		out[p] = dup
	}
	return out
}

// NormalizePath converts a path to canonical forward-slash form and strips
// any leading "./". Backslashes are replaced unconditionally: a
// backslash-separated key must collapse onto its forward-slash twin on every
// platform, not only where the platform separator is a backslash.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// Normalize rewrites every key to its canonical form, in place. Keys are
// processed in lexicographic order of their original form, so when a
// backslash-separated and a forward-slash-separated key collide the outcome
// is deterministic: exactly one entry survives.
func (t Tree) Normalize() {
	keys := make([]string, 0, len(t))
	for p := range t {
		keys = append(keys, p)
	}
	sort.Strings(keys)
	for _, p := range keys {
		norm := NormalizePath(p)
		if norm == p {
			continue
		}
		t[norm] = t[p]
		delete(t, p)
	}
}
