// Package babel wires the Babel toolchain into a scaffolded project. The
// babel manifest field it adds is extracted to babel.config.js by the
// default config-transform pass.
package babel

import (
	"context"

	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
)

// ID identifies the Babel plugin.
const ID = "@scaffold/cli-plugin-babel"

func apply(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, invoking bool) error {
	api.ExtendPackage(map[string]any{
		"babel": map[string]any{
			"presets": []any{"@scaffold/babel-preset-app"},
		},
		"dependencies": map[string]any{
			"core-js": "^3.8.3",
		},
		"devDependencies": map[string]any{
			"@scaffold/babel-preset-app": "^5.0.0",
		},
	}, manifest.ExtendOptions{})
	return nil
}

func init() {
	plugin.MustRegister(&plugin.Plugin{
		ID:    ID,
		Apply: apply,
	})
}
