package base

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scaffold/internal/generator"
	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/pkgmgr"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/tree"
)

type treeWriter struct {
	files tree.Tree
}

func (w *treeWriter) Write(ctx context.Context, dir string, files, initial tree.Tree) error {
	w.files = files
	return nil
}

func run(t *testing.T, options map[string]any) tree.Tree {
	t.Helper()
	registered, ok := plugin.DefaultRegistry().Get(plugin.ServicePluginID)
	require.True(t, ok)

	pkg := manifest.New()
	pkg.Set("name", "demo")

	w := &treeWriter{}
	g := generator.New(t.TempDir(), generator.Options{
		Manifest: pkg,
		Plugins: []*plugin.Plugin{{
			ID:      registered.ID,
			Apply:   registered.Apply,
			Options: options,
		}},
		Versions: pkgmgr.StaticResolver{},
		Writer:   w,
	})
	require.NoError(t, g.Generate(context.Background(), false, false))
	return w.files
}

func TestApply_RendersProjectSkeleton(t *testing.T) {
	files := run(t, map[string]any{"projectName": "demo"})

	main, ok := files.ReadString("src/main.js")
	require.True(t, ok)
	require.Contains(t, main, "createApp({")

	app, _ := files.ReadString("src/App.js")
	require.Contains(t, app, "name: 'demo'")

	index, ok := files.ReadString("public/index.html")
	require.True(t, ok)
	require.Contains(t, index, "<title>demo</title>")
}

func TestApply_BareSkipsIndexPage(t *testing.T) {
	files := run(t, map[string]any{"projectName": "demo", "bare": true})

	require.True(t, files.Has("src/main.js"))
	require.False(t, files.Has("public/index.html"))
}

func TestApply_ManifestGetsScriptsAndTargets(t *testing.T) {
	files := run(t, map[string]any{"projectName": "demo"})

	data, ok := files.ReadString(generator.ManifestFile)
	require.True(t, ok)
	require.Contains(t, data, `"serve": "scaffold-service serve"`)
	require.Contains(t, data, `"build": "scaffold-service build"`)
	require.Contains(t, data, `"browserslist"`)
}
