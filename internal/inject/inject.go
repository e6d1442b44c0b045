// Package inject merges deferred import statements and root-option fragments
// into already-generated source files. The engine is deliberately text-level:
// it guarantees where and in what order content lands, not that the merged
// result is syntactically perfect.
package inject

import (
	"fmt"
	"strings"
)

// Injector merges accumulated ledger entries into file content, one concern
// at a time. Implementations must be deterministic and idempotent under
// repeated entries.
type Injector interface {
	// InjectImports merges import statements into content, preserving the
	// given order and skipping statements already present.
	InjectImports(content string, imports []string) (string, error)

	// InjectRootOptions merges option fragments into the root-options object
	// literal of content, preserving the given order and skipping fragments
	// already present.
	InjectRootOptions(content string, options []string) (string, error)
}

// TextInjector is the stock line-oriented Injector for JavaScript sources.
type TextInjector struct{}

// NewTextInjector creates the default injector.
func NewTextInjector() *TextInjector {
	return &TextInjector{}
}

// InjectImports inserts missing import statements after the last existing
// import, or at the top of the file when there are none.
func (TextInjector) InjectImports(content string, imports []string) (string, error) {
	lines := strings.Split(content, "\n")

	existing := make(map[string]bool, len(lines))
	lastImport := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "import{") {
			existing[trimmed] = true
			lastImport = i
		}
	}

	var missing []string
	for _, imp := range imports {
		if !existing[strings.TrimSpace(imp)] {
			missing = append(missing, imp)
			existing[strings.TrimSpace(imp)] = true
		}
	}
	if len(missing) == 0 {
		return content, nil
	}

	out := make([]string, 0, len(lines)+len(missing))
	out = append(out, lines[:lastImport+1]...)
	out = append(out, missing...)
	out = append(out, lines[lastImport+1:]...)
	return strings.Join(out, "\n"), nil
}

// InjectRootOptions inserts missing option fragments after the opening brace
// of the root-options object literal: the first line ending in "({".
func (TextInjector) InjectRootOptions(content string, options []string) (string, error) {
	lines := strings.Split(content, "\n")

	anchor := -1
	indent := ""
	existing := make(map[string]bool, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if anchor == -1 && strings.HasSuffix(trimmed, "({") {
			anchor = i
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))] + "  "
			continue
		}
		existing[strings.TrimRight(strings.TrimSpace(line), ",")] = true
	}
	if anchor == -1 {
		return "", fmt.Errorf("no root options object found")
	}

	var missing []string
	for _, opt := range options {
		normalized := strings.TrimRight(strings.TrimSpace(opt), ",")
		if !existing[normalized] {
			missing = append(missing, indent+normalized+",")
			existing[normalized] = true
		}
	}
	if len(missing) == 0 {
		return content, nil
	}

	out := make([]string, 0, len(lines)+len(missing))
	out = append(out, lines[:anchor+1]...)
	out = append(out, missing...)
	out = append(out, lines[anchor+1:]...)
	return strings.Join(out, "\n"), nil
}
