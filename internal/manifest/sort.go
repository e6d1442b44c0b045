package manifest

import "sort"

// keyOrder is the canonical top-level field order for serialized manifests.
// Fields not listed here trail in lexicographic order, which keeps the sort
// a pure function of the manifest's contents.
var keyOrder = []string{
	"name",
	"version",
	"private",
	"description",
	"author",
	"scripts",
	"main",
	"module",
	"browser",
	"jsDelivr",
	"unpkg",
	"files",
	FieldDependencies,
	FieldDevDependencies,
	"peerDependencies",
	"scaffold",
	"babel",
	"eslintConfig",
	"prettier",
	"postcss",
	"browserslist",
	"jest",
}

// scriptOrder is the fixed priority prefix for the scripts field. Scripts
// not listed trail in lexicographic order.
var scriptOrder = []string{"serve", "build", "test", "e2e", "lint", "deploy"}

// Sort reorders the manifest's top-level keys to the canonical priority
// list. Dependency fields serialize alphabetically by package name and
// scripts by the fixed priority prefix; both orderings are applied by
// ToJSON, since nested values stay plain maps.
func (m *Manifest) Sort() {
	m.keys = orderKeys(m.keys, keyOrder)
}

// orderKeys returns keys reordered so that entries of priority come first,
// in priority order, followed by the remaining keys sorted lexicographically.
func orderKeys(keys, priority []string) []string {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	out := make([]string, 0, len(keys))
	picked := make(map[string]bool, len(priority))
	for _, k := range priority {
		if present[k] {
			out = append(out, k)
			picked[k] = true
		}
	}
	rest := make([]string, 0, len(keys))
	for _, k := range keys {
		if !picked[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}
