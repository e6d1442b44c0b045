package generator

import (
	"context"
	"log/slog"
	"sort"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/util/sets"
)

// resolveFiles resolves the whole tree in four strictly ordered stages:
// file middlewares, path normalization, ledger injection, post-processing.
// Separating "what to inject" (per plugin) from "injection happens" (once,
// after every plugin has spoken) lets a later plugin's import request land
// in a file an earlier plugin created without either knowing the other.
func (g *Generator) resolveFiles(ctx context.Context) error {
	ctx = observability.WithStage(ctx, "resolve")

	for _, mw := range g.fileMiddlewares {
		if err := mw(ctx, g.files, g.renderTemplate); err != nil {
			return errors.Wrap(err, errors.CategoryRender, errors.SeverityFatal, "file middleware failed")
		}
	}

	g.files.Normalize()

	if err := g.applyInjections(ctx); err != nil {
		return err
	}

	for _, cb := range g.postProcessCbs {
		if err := cb(ctx, g.files); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, errors.SeverityFatal, "post-process callback failed")
		}
	}
	return nil
}

// applyInjections invokes the injection engine once per concern per path —
// imports first, then root options — with the ledger's entries in the order
// they were registered across all plugins. Paths without ledger entries are
// left untouched. An injection request for a path not in the tree is caller
// misuse; it is logged and skipped.
func (g *Generator) applyInjections(ctx context.Context) error {
	paths := sets.NewOrdered[string]()
	for p := range g.importLedger {
		paths.Add(p)
	}
	for p := range g.optionsLedger {
		paths.Add(p)
	}
	ordered := paths.Values()
	sort.Strings(ordered)

	for _, path := range ordered {
		content, ok := g.files.ReadString(path)
		if !ok {
			observability.WarnContext(ctx, "injection target not in tree",
				slog.String("path", path))
			continue
		}

		if ledger := g.importLedger[path]; ledger != nil && ledger.Len() > 0 {
			updated, err := g.injector.InjectImports(content, ledger.Values())
			if err != nil {
				return errors.InjectFailed(path, err)
			}
			content = updated
		}
		if ledger := g.optionsLedger[path]; ledger != nil && ledger.Len() > 0 {
			updated, err := g.injector.InjectRootOptions(content, ledger.Values())
			if err != nil {
				return errors.InjectFailed(path, err)
			}
			content = updated
		}
		g.files.WriteString(path, content)
	}
	return nil
}
