// Package base implements the core service plugin: the skeleton every
// scaffolded project starts from. It owns the npm scripts, the browser target
// list, and the entry files other plugins inject into.
package base

import (
	"context"

	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
)

const mainTemplate = `import { createApp } from '@scaffold/app'
import App from './App'

createApp({
  root: App,
}).mount('#app')
`

const appTemplate = `export default {
  name: '{{ .projectName }}',
}
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width,initial-scale=1.0">
    <title>{{ .projectName }}</title>
  </head>
  <body>
    <div id="app"></div>
  </body>
</html>
`

func apply(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, invoking bool) error {
	api.ExtendPackage(map[string]any{
		"private": true,
		"scripts": map[string]any{
			"serve": "scaffold-service serve",
			"build": "scaffold-service build",
		},
		"browserslist": []any{"> 1%", "last 2 versions", "not dead"},
	}, manifest.ExtendOptions{})

	name := rootOptions.ProjectName
	if name == "" {
		name = "scaffold-app"
	}
	files := map[string]string{
		"src/main.js": mainTemplate,
		"src/App.js":  appTemplate,
	}
	if !rootOptions.Bare {
		files["public/index.html"] = indexTemplate
	}
	api.Render(files, map[string]any{"projectName": name})

	api.ExitLog(plugin.SeverityDone, "project skeleton created")
	return nil
}

func init() {
	plugin.MustRegister(&plugin.Plugin{
		ID:    plugin.ServicePluginID,
		Apply: apply,
	})
}
