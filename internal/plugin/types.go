package plugin

import (
	"context"

	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/transform"
	"git.home.luguber.info/inful/scaffold/internal/tree"
)

// RenderFunc renders a template body with the given data. The templating
// engine itself is external to the core; middlewares receive this capability
// during file resolution.
type RenderFunc func(body string, data map[string]any) (string, error)

// HookCallback runs once generation completes. After-invoke callbacks are
// scoped to the plugin that registered them; after-any-invoke callbacks are
// global and fire for every installed plugin's registration.
type HookCallback func(ctx context.Context) error

// FileMiddleware is a whole-tree transform step, sequenced before path
// normalization and injection. Middlewares may add, remove, or rewrite any
// path and may render templates.
type FileMiddleware func(ctx context.Context, files tree.Tree, render RenderFunc) error

// PostProcessFunc is a whole-tree transform step, sequenced after injection
// and before manifest finalization.
type PostProcessFunc func(ctx context.Context, files tree.Tree) error

// LogSeverity tags a queued exit-log message.
type LogSeverity string

const (
	SeverityLog   LogSeverity = "log"
	SeverityInfo  LogSeverity = "info"
	SeverityDone  LogSeverity = "done"
	SeverityWarn  LogSeverity = "warn"
	SeverityError LogSeverity = "error"
)

// API is the handle a plugin uses to interact with the generation run.
// Discovery-pass handles accept AfterAnyInvoke registration only; every
// mutating operation is reserved for the apply pass.
type API interface {
	// PluginID returns the ID of the plugin this handle is bound to.
	PluginID() string

	// HasPlugin reports whether a plugin matching id (full or short form)
	// is present among the invoked or installed plugins. When a version
	// range is given, the installed version must also satisfy it. Never
	// errors: unmatched IDs and failed range checks both report false.
	HasPlugin(id string, versionRange ...string) bool

	// ExtendPackage merges fields into the manifest (see manifest.Extend).
	ExtendPackage(fields map[string]any, opts manifest.ExtendOptions)

	// WriteFile stores text content in the virtual file tree. Whole-file
	// writes are last-writer-wins.
	WriteFile(path, content string)

	// Render registers a file middleware that renders the given inline
	// template bodies into the tree, keyed by target path.
	Render(files map[string]string, data map[string]any)

	// InjectImports records import specifiers to merge into the named file
	// once every plugin has run.
	InjectImports(file string, imports ...string)

	// InjectRootOptions records root-option fragments to merge into the
	// named file once every plugin has run.
	InjectRootOptions(file string, options ...string)

	// AddConfigTransform registers a manifest-field-to-config-file
	// transform. Reserved fields cannot be overridden.
	AddConfigTransform(key string, t transform.Transform)

	// AddFileMiddleware registers a whole-tree transform step.
	AddFileMiddleware(mw FileMiddleware)

	// PostProcessFiles registers a whole-tree callback run after injection.
	PostProcessFiles(cb PostProcessFunc)

	// AfterInvoke registers a completion callback scoped to this plugin.
	AfterInvoke(cb HookCallback)

	// AfterAnyInvoke registers a global completion callback. This is the
	// only registration permitted during the discovery pass.
	AfterAnyInvoke(cb HookCallback)

	// ExitLog queues a message flushed at the end of the run.
	ExitLog(severity LogSeverity, message string)

	// EntryFile returns the project's main entry file: src/main.ts when the
	// project uses typescript, src/main.js otherwise.
	EntryFile() string
}
