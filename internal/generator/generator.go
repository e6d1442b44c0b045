// Package generator implements the orchestration engine: plugin-application
// ordering and hook composition, the virtual file tree merge discipline, the
// manifest-field-to-config-file extraction, and the deferred cross-plugin
// source-injection pipeline.
package generator

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/inject"
	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/pkgmgr"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/transform"
	"git.home.luguber.info/inful/scaffold/internal/tree"
	"git.home.luguber.info/inful/scaffold/internal/util/sets"
	"git.home.luguber.info/inful/scaffold/internal/writer"
)

// ManifestFile is the tree entry the serialized manifest lands in.
const ManifestFile = "package.json"

// TestEnvFlag suppresses the always-on extraction of the reserved scaffold
// field (kept extractable via extractAll) to keep fixture output stable.
const TestEnvFlag = "SCAFFOLD_TEST"

// Options configures a Generator. Zero-value collaborators get stock
// implementations.
type Options struct {
	// Manifest is the caller-supplied project descriptor. Required.
	Manifest *manifest.Manifest

	// Files pre-seeds the virtual file tree, e.g. with existing disk state
	// when re-invoking on an existing project.
	Files tree.Tree

	// Plugins is the explicit invocation list, in caller order.
	Plugins []*plugin.Plugin

	// CompletedCbs seeds the after-invoke callback list.
	CompletedCbs []plugin.HookCallback

	// Invoking is true when plugins are added to an existing project.
	Invoking bool

	// Registry answers discovery-pass hook lookups for installed plugins.
	// Defaults to the global registry.
	Registry *plugin.Registry

	// Versions resolves installed package versions for HasPlugin range
	// checks. Defaults to reading node_modules under the project dir.
	Versions pkgmgr.VersionResolver

	// Injector performs the text-level injection. Defaults to the stock
	// line-oriented injector.
	Injector inject.Injector

	// Writer persists the final tree. Defaults to the diff-based disk writer.
	Writer writer.Writer
}

// Generator drives one generation run. It is single-threaded by design:
// every phase completes before the next begins, so the tree, manifest, and
// ledger need no locking.
type Generator struct {
	dir   string
	runID string

	pkg         *manifest.Manifest
	originalPkg *manifest.Manifest
	files       tree.Tree

	plugins      []*plugin.Plugin
	allPluginIDs []string
	rootOptions  *plugin.RootOptions
	invoking     bool

	registry   *plugin.Registry
	transforms *transform.Registry
	versions   pkgmgr.VersionResolver
	injector   inject.Injector
	writer     writer.Writer

	// Deferred injection ledger: per-path ordered sets, accumulated across
	// all plugins regardless of apply order.
	importLedger  map[string]*sets.Ordered[string]
	optionsLedger map[string]*sets.Ordered[string]

	completedCbs      []plugin.HookCallback
	afterInvokeCbs    []plugin.HookCallback
	afterAnyInvokeCbs []plugin.HookCallback
	postProcessCbs    []plugin.PostProcessFunc
	fileMiddlewares   []plugin.FileMiddleware

	exitLogs []exitLogEntry
}

// New creates a Generator for the project rooted at dir.
func New(dir string, opts Options) *Generator {
	pkg := opts.Manifest
	if pkg == nil {
		pkg = manifest.New()
	}
	files := opts.Files
	if files == nil {
		files = tree.New()
	}
	registry := opts.Registry
	if registry == nil {
		registry = plugin.DefaultRegistry()
	}
	versions := opts.Versions
	if versions == nil {
		versions = pkgmgr.NewNodeModulesResolver(dir)
	}
	injector := opts.Injector
	if injector == nil {
		injector = inject.NewTextInjector()
	}
	w := opts.Writer
	if w == nil {
		w = writer.NewDiskWriter()
	}

	return &Generator{
		dir:           dir,
		runID:         uuid.NewString(),
		pkg:           pkg,
		originalPkg:   pkg.Clone(),
		files:         files,
		plugins:       opts.Plugins,
		invoking:      opts.Invoking,
		registry:      registry,
		transforms:    transform.NewRegistry(),
		versions:      versions,
		injector:      injector,
		writer:        w,
		importLedger:  make(map[string]*sets.Ordered[string]),
		optionsLedger: make(map[string]*sets.Ordered[string]),
		completedCbs:  opts.CompletedCbs,
	}
}

// RunID identifies this generation run.
func (g *Generator) RunID() string { return g.runID }

// Files exposes the virtual file tree.
func (g *Generator) Files() tree.Tree { return g.files }

// Manifest exposes the mutable project descriptor.
func (g *Generator) Manifest() *manifest.Manifest { return g.pkg }

// Generate runs the whole pipeline: compose plugins, snapshot the tree,
// extract config files, resolve files, sort and serialize the manifest,
// persist, then run completion hooks and flush the exit log. A failure at
// any stage aborts the remainder; nothing is written in that case since the
// writer runs last.
func (g *Generator) Generate(ctx context.Context, extractAll, checkExisting bool) error {
	ctx = observability.WithRunID(ctx, g.runID)

	if err := g.composePlugins(ctx); err != nil {
		return err
	}

	initial := g.files.Snapshot()

	if err := g.extractConfigFiles(ctx, extractAll, checkExisting); err != nil {
		return err
	}
	if err := g.resolveFiles(ctx); err != nil {
		return err
	}

	g.pkg.Sort()
	data, err := g.pkg.ToJSON()
	if err != nil {
		return errors.Wrap(err, errors.CategoryManifest, errors.SeverityFatal, "serialize manifest")
	}
	g.files.Write(ManifestFile, data)

	writeCtx := observability.WithStage(ctx, "write")
	if err := g.writer.Write(writeCtx, g.dir, g.files, initial); err != nil {
		return errors.WriteFailed(g.dir, err)
	}

	if err := g.runCompletionHooks(ctx); err != nil {
		return err
	}
	g.flushExitLogs(ctx)

	observability.InfoContext(ctx, "generation complete",
		slog.Int("files", len(g.files)), slog.Int("plugins", len(g.plugins)))
	return nil
}

// runCompletionHooks runs after-invoke callbacks, then after-any-invoke
// callbacks, each awaited in registration order.
func (g *Generator) runCompletionHooks(ctx context.Context) error {
	hookCtx := observability.WithStage(ctx, "hooks")
	for _, cb := range g.afterInvokeCbs {
		if err := cb(hookCtx); err != nil {
			return errors.Wrap(err, errors.CategoryPlugin, errors.SeverityFatal, "after-invoke hook failed")
		}
	}
	for _, cb := range g.afterAnyInvokeCbs {
		if err := cb(hookCtx); err != nil {
			return errors.Wrap(err, errors.CategoryPlugin, errors.SeverityFatal, "after-any-invoke hook failed")
		}
	}
	return nil
}

// HasPlugin reports whether a plugin matching id is invoked or installed,
// optionally gated on a semver range. It never errors: an unmatched ID or a
// failed or unresolvable version check reports false.
func (g *Generator) HasPlugin(id string, versionRange ...string) bool {
	full, ok := g.matchPlugin(id)
	if !ok {
		return false
	}
	if len(versionRange) == 0 || versionRange[0] == "" {
		return true
	}
	return g.versionSatisfies(full, versionRange[0])
}

func (g *Generator) matchPlugin(id string) (string, bool) {
	for _, p := range g.plugins {
		if plugin.MatchesID(id, p.ID) {
			return p.ID, true
		}
	}
	for _, full := range g.allPluginIDs {
		if plugin.MatchesID(id, full) {
			return full, true
		}
	}
	return "", false
}
