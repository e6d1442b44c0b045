package generator

import (
	"context"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/scaffold/internal/errors"
	"git.home.luguber.info/inful/scaffold/internal/observability"
)

// defaultExtractKeys are always extracted (extraction of the reserved
// scaffold field keeps other tools able to read the project's own config;
// babel is extracted for cross-tool compatibility with editors and test
// runners that cannot read package.json fields).
var defaultExtractKeys = []string{"scaffold", "babel"}

// extractConfigFiles moves manifest fields into standalone config files.
// Extraction is best-effort: a field with no registered transform, a field
// absent from the manifest, or a field the user authored in the original
// pre-run manifest all no-op silently. Extraction is a move — at most one
// transform is consumed per field per run.
func (g *Generator) extractConfigFiles(ctx context.Context, extractAll, checkExisting bool) error {
	ctx = observability.WithStage(ctx, "extract")

	extract := func(key string) error {
		t, ok := g.transforms.Lookup(key)
		if !ok {
			return nil
		}
		value, ok := g.pkg.Get(key)
		if !ok {
			return nil
		}
		if g.originalPkg.Has(key) {
			// Never clobber user-authored config.
			return nil
		}
		filename, content, err := t.Resolve(value, checkExisting, g.files)
		if err != nil {
			return errors.TransformFailed(key, err)
		}
		g.files.WriteString(filename, content)
		g.pkg.Delete(key)
		observability.DebugContext(ctx, "extracted config field",
			slog.String("field", key), slog.String("file", filename))
		return nil
	}

	if extractAll {
		for _, key := range g.pkg.Keys() {
			if err := extract(key); err != nil {
				return err
			}
		}
		return nil
	}

	for _, key := range defaultExtractKeys {
		if key == "scaffold" && os.Getenv(TestEnvFlag) != "" {
			continue
		}
		if err := extract(key); err != nil {
			return err
		}
	}
	return nil
}
