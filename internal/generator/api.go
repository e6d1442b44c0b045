package generator

import (
	"context"
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/transform"
	"git.home.luguber.info/inful/scaffold/internal/tree"
	"git.home.luguber.info/inful/scaffold/internal/util/sets"
)

// api is the per-plugin handle implementing plugin.API. A discovery-pass
// handle only accepts after-any-invoke registration; every other operation
// is dropped with a warning, so a misbehaving hooks registration cannot
// mutate the tree or manifest before the apply pass.
type api struct {
	id        string
	g         *Generator
	options   map[string]any
	discovery bool
}

var _ plugin.API = (*api)(nil)

// newAPI instantiates a handle bound to the given plugin's options.
func (g *Generator) newAPI(id string, options map[string]any, discovery bool) *api {
	return &api{id: id, g: g, options: options, discovery: discovery}
}

func (a *api) PluginID() string { return a.id }

func (a *api) HasPlugin(id string, versionRange ...string) bool {
	return a.g.HasPlugin(id, versionRange...)
}

// guard reports whether the operation is allowed on this handle.
func (a *api) guard(op string) bool {
	if a.discovery {
		slog.Warn("operation not permitted during discovery pass",
			"plugin", a.id, "operation", op)
		return false
	}
	return true
}

func (a *api) ExtendPackage(fields map[string]any, opts manifest.ExtendOptions) {
	if !a.guard("ExtendPackage") {
		return
	}
	if opts.Source == "" {
		opts.Source = a.id
	}
	a.g.pkg.Extend(fields, opts)
}

func (a *api) WriteFile(path, content string) {
	if !a.guard("WriteFile") {
		return
	}
	a.g.files.WriteString(tree.NormalizePath(path), content)
}

// Render registers a file middleware rendering the given inline template
// bodies, keyed by target path. Templates see the plugin's options as
// .options and the root options as .rootOptions, under any caller data.
func (a *api) Render(files map[string]string, data map[string]any) {
	if !a.guard("Render") {
		return
	}
	options := a.options
	rootOptions := a.g.rootOptions

	a.AddFileMiddleware(func(ctx context.Context, t tree.Tree, render plugin.RenderFunc) error {
		merged := map[string]any{
			"options":     options,
			"rootOptions": rootOptions,
		}
		for k, v := range data {
			merged[k] = v
		}

		paths := make([]string, 0, len(files))
		for p := range files {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		for _, p := range paths {
			rendered, err := render(files[p], merged)
			if err != nil {
				return errors.RenderFailed(p, err)
			}
			t.WriteString(tree.NormalizePath(p), rendered)
		}
		return nil
	})
}

func (a *api) InjectImports(file string, imports ...string) {
	if !a.guard("InjectImports") {
		return
	}
	key := tree.NormalizePath(file)
	ledger := a.g.importLedger[key]
	if ledger == nil {
		ledger = sets.NewOrdered[string]()
		a.g.importLedger[key] = ledger
	}
	for _, imp := range imports {
		ledger.Add(imp)
	}
}

func (a *api) InjectRootOptions(file string, options ...string) {
	if !a.guard("InjectRootOptions") {
		return
	}
	key := tree.NormalizePath(file)
	ledger := a.g.optionsLedger[key]
	if ledger == nil {
		ledger = sets.NewOrdered[string]()
		a.g.optionsLedger[key] = ledger
	}
	for _, opt := range options {
		ledger.Add(opt)
	}
}

func (a *api) AddConfigTransform(key string, t transform.Transform) {
	if !a.guard("AddConfigTransform") {
		return
	}
	a.g.transforms.Add(key, t)
}

func (a *api) AddFileMiddleware(mw plugin.FileMiddleware) {
	if !a.guard("AddFileMiddleware") {
		return
	}
	a.g.fileMiddlewares = append(a.g.fileMiddlewares, mw)
}

func (a *api) PostProcessFiles(cb plugin.PostProcessFunc) {
	if !a.guard("PostProcessFiles") {
		return
	}
	a.g.postProcessCbs = append(a.g.postProcessCbs, cb)
}

func (a *api) AfterInvoke(cb plugin.HookCallback) {
	if !a.guard("AfterInvoke") {
		return
	}
	a.g.afterInvokeCbs = append(a.g.afterInvokeCbs, cb)
}

// AfterAnyInvoke is permitted on both passes: it is the one registration a
// discovery-pass handle accepts.
func (a *api) AfterAnyInvoke(cb plugin.HookCallback) {
	a.g.afterAnyInvokeCbs = append(a.g.afterAnyInvokeCbs, cb)
}

func (a *api) ExitLog(severity plugin.LogSeverity, message string) {
	a.g.exitLogs = append(a.g.exitLogs, exitLogEntry{
		pluginID: a.id,
		message:  message,
		severity: severity,
	})
}

// EntryFile returns src/main.ts when the project depends on typescript (or
// the tree already holds it), src/main.js otherwise.
func (a *api) EntryFile() string {
	if a.g.files.Has("src/main.ts") {
		return "src/main.ts"
	}
	for _, field := range manifest.DependencyFields {
		if _, ok := a.g.pkg.StringMap(field)["typescript"]; ok {
			return "src/main.ts"
		}
	}
	return "src/main.js"
}
