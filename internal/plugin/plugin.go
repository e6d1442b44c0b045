// Package plugin defines the plugin contract for the scaffolding engine.
// A plugin contributes files, manifest edits, and deferred injection
// requests through the API handle it receives during the apply pass; it may
// additionally export a hooks registration invoked during the discovery
// pass over every installed plugin.
package plugin

import (
	"context"
	"fmt"
)

// ApplyFunc is a plugin's apply entry point. The invoking flag is true when
// the plugin is being added to an existing project rather than applied
// during initial creation.
type ApplyFunc func(ctx context.Context, api API, options map[string]any, rootOptions *RootOptions, invoking bool) error

// HooksFunc is a plugin's optional global-hook registration entry point.
// During the discovery pass it runs for every installed plugin with a
// placeholder API handle that only accepts after-any-invoke registration;
// during the apply pass it runs with the plugin's real options.
type HooksFunc func(ctx context.Context, api API, options map[string]any, rootOptions *RootOptions, pluginIDs []string) error

// Plugin is a scaffolding plugin: a unique scoped ID plus its entry points.
type Plugin struct {
	// ID is the scoped package name, e.g. "@scaffold/cli-plugin-babel".
	ID string

	// Apply contributes files, manifest edits, and injection requests.
	Apply ApplyFunc

	// Hooks registers global callbacks. Optional.
	Hooks HooksFunc

	// Options are the caller-supplied options for this invocation.
	Options map[string]any
}

// Validate checks the plugin satisfies the contract.
func (p *Plugin) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("plugin id is required")
	}
	if p.Apply == nil {
		return fmt.Errorf("plugin %s has no apply function", p.ID)
	}
	return nil
}

// RootOptions is the project-level configuration shared with every plugin:
// either the core service plugin's options when that plugin is part of the
// explicit invocation list, or values inferred from the manifest.
type RootOptions struct {
	// ProjectName is the target project's name.
	ProjectName string

	// Bare suppresses demo content in generated entry files.
	Bare bool

	// Plugins maps installed plugin IDs to their recorded options.
	Plugins map[string]map[string]any

	// Raw carries the unmodeled remainder of the service plugin's options.
	Raw map[string]any
}
