// Package eslint wires ESLint into a scaffolded project. Its hooks
// registration is the canonical after-any-invoke consumer: once installed, it
// reacts to every later plugin invocation, not only its own.
package eslint

import (
	"context"

	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/observability"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
)

// ID identifies the ESLint plugin.
const ID = "@scaffold/cli-plugin-eslint"

func apply(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, invoking bool) error {
	config := "base"
	if c, ok := options["config"].(string); ok && c != "" {
		config = c
	}

	extends := []any{"eslint:recommended"}
	devDeps := map[string]any{
		"eslint": "^8.57.0",
	}
	switch config {
	case "prettier":
		extends = append(extends, "plugin:prettier/recommended")
		devDeps["prettier"] = "^2.8.8"
		devDeps["eslint-plugin-prettier"] = "^4.2.1"
		devDeps["eslint-config-prettier"] = "^8.10.0"
	case "airbnb":
		extends = append(extends, "airbnb-base")
		devDeps["eslint-config-airbnb-base"] = "^15.0.0"
		devDeps["eslint-plugin-import"] = "^2.29.0"
	}

	fields := map[string]any{
		"eslintConfig": map[string]any{
			"root":    true,
			"env":     map[string]any{"node": true},
			"extends": extends,
			"parserOptions": map[string]any{
				"ecmaVersion": 2020,
			},
		},
		"devDependencies": devDeps,
		"scripts": map[string]any{
			"lint": "scaffold-service lint",
		},
	}
	if lintOn, ok := options["lintOn"].(string); ok && lintOn == "save" {
		fields["scaffold"] = map[string]any{"lintOnSave": true}
	}
	api.ExtendPackage(fields, manifest.ExtendOptions{})
	return nil
}

func hooks(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, pluginIDs []string) error {
	api.AfterAnyInvoke(func(ctx context.Context) error {
		observability.InfoContext(ctx, "lint pass over generated sources queued")
		return nil
	})
	return nil
}

func init() {
	plugin.MustRegister(&plugin.Plugin{
		ID:    ID,
		Apply: apply,
		Hooks: hooks,
	})
}
