package generator

import (
	"context"
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/util/sets"
)

// composePlugins runs the two-pass hook composition.
//
// The discovery pass walks the installed set (the explicit invocation list
// plus every plugin package in the manifest's dependency fields) and invokes
// the hooks registration of each plugin that is not being invoked in this
// run, with a placeholder API handle, collecting their after-any-invoke
// callbacks. Invoked plugins register theirs in the apply pass instead, so
// each plugin's registration lands exactly once.
//
// The apply pass saves those callbacks, resets the transient accumulators,
// applies each explicitly invoked plugin in caller order with a fresh handle
// bound to its real options, and finally merges the discovery-pass callbacks
// back in after the apply-pass entries.
func (g *Generator) composePlugins(ctx context.Context) error {
	g.allPluginIDs = g.installedPluginIDs()
	g.rootOptions = g.resolveRootOptions()

	invoked := sets.New[string]()
	for _, p := range g.plugins {
		invoked.Add(p.ID)
	}

	// Discovery pass. Explicitly invoked plugins are skipped here: their
	// hooks run in the apply pass with real options, and collecting them in
	// both passes would fire the same registration twice.
	discoveryCtx := observability.WithStage(ctx, "discover")
	for _, id := range g.allPluginIDs {
		if invoked.Has(id) {
			continue
		}
		p, ok := g.registry.Get(id)
		if !ok || p.Hooks == nil {
			continue
		}
		api := g.newAPI(id, map[string]any{}, true)
		if err := p.Hooks(discoveryCtx, api, map[string]any{}, g.rootOptions, g.allPluginIDs); err != nil {
			return errors.PluginHooksFailed(id, err)
		}
	}
	discovered := g.afterAnyInvokeCbs

	// Reset transient accumulators at the pass boundary.
	g.afterInvokeCbs = append([]plugin.HookCallback(nil), g.completedCbs...)
	g.afterAnyInvokeCbs = nil
	g.postProcessCbs = nil

	// Apply pass.
	for _, p := range g.plugins {
		applyCtx := observability.WithPluginID(observability.WithStage(ctx, "apply"), p.ID)
		observability.DebugContext(applyCtx, "applying plugin")

		api := g.newAPI(p.ID, p.Options, false)
		if err := p.Apply(applyCtx, api, p.Options, g.rootOptions, g.invoking); err != nil {
			return errors.PluginApplyFailed(p.ID, err)
		}
		if p.Hooks != nil {
			if err := p.Hooks(applyCtx, api, p.Options, g.rootOptions, g.allPluginIDs); err != nil {
				return errors.PluginHooksFailed(p.ID, err)
			}
		}
	}

	g.afterAnyInvokeCbs = append(g.afterAnyInvokeCbs, discovered...)
	return nil
}

// installedPluginIDs returns the installed set: the explicit invocation list
// in caller order, followed by plugin packages from the manifest's
// dependency fields in lexicographic order.
func (g *Generator) installedPluginIDs() []string {
	ids := sets.NewOrdered[string]()
	for _, p := range g.plugins {
		ids.Add(p.ID)
	}
	for _, field := range manifest.DependencyFields {
		deps := g.pkg.StringMap(field)
		names := make([]string, 0, len(deps))
		for name := range deps {
			if plugin.IsPluginID(name) {
				names = append(names, name)
			}
		}
		sort.Strings(names)
		for _, name := range names {
			ids.Add(name)
		}
	}
	return ids.Values()
}

// resolveRootOptions takes root options from the core service plugin when it
// is part of the explicit invocation list, otherwise infers them from the
// manifest.
func (g *Generator) resolveRootOptions() *plugin.RootOptions {
	for _, p := range g.plugins {
		if p.ID == plugin.ServicePluginID {
			return rootOptionsFromMap(p.Options)
		}
	}
	return g.inferRootOptions()
}

func rootOptionsFromMap(m map[string]any) *plugin.RootOptions {
	opts := &plugin.RootOptions{Raw: m}
	if m == nil {
		return opts
	}
	if name, ok := m["projectName"].(string); ok {
		opts.ProjectName = name
	}
	if bare, ok := m["bare"].(bool); ok {
		opts.Bare = bare
	}
	if plugins, ok := m["plugins"].(map[string]any); ok {
		opts.Plugins = make(map[string]map[string]any, len(plugins))
		for id, po := range plugins {
			if pm, ok := po.(map[string]any); ok {
				opts.Plugins[id] = pm
			} else {
				opts.Plugins[id] = map[string]any{}
			}
		}
	}
	return opts
}

// inferRootOptions derives root options from the manifest when no
// already-configured service plugin is present.
func (g *Generator) inferRootOptions() *plugin.RootOptions {
	opts := &plugin.RootOptions{
		ProjectName: g.pkg.Name(),
		Plugins:     make(map[string]map[string]any),
	}
	for _, id := range g.allPluginIDs {
		opts.Plugins[id] = map[string]any{}
	}
	slog.Debug("inferred root options", "project", opts.ProjectName, "plugins", len(opts.Plugins))
	return opts
}
