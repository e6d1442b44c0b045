package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scaffold/internal/manifest"
	"git.home.luguber.info/inful/scaffold/internal/pkgmgr"
	"git.home.luguber.info/inful/scaffold/internal/plugin"
	"git.home.luguber.info/inful/scaffold/internal/tree"
)

// captureWriter records what the generator hands to the external writer.
type captureWriter struct {
	dir     string
	files   tree.Tree
	initial tree.Tree
}

func (w *captureWriter) Write(ctx context.Context, dir string, files, initial tree.Tree) error {
	w.dir = dir
	w.files = files
	w.initial = initial
	return nil
}

func applyFunc(fn func(api plugin.API)) plugin.ApplyFunc {
	return func(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, invoking bool) error {
		fn(api)
		return nil
	}
}

func newTestGenerator(t *testing.T, pkg *manifest.Manifest, plugins []*plugin.Plugin) (*Generator, *captureWriter) {
	t.Helper()
	w := &captureWriter{}
	g := New(t.TempDir(), Options{
		Manifest: pkg,
		Plugins:  plugins,
		Registry: plugin.NewRegistry(),
		Versions: pkgmgr.StaticResolver{},
		Writer:   w,
	})
	return g, w
}

func TestGenerate_BabelFieldExtractedToScriptConfig(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	plugins := []*plugin.Plugin{{
		ID: "@scaffold/cli-plugin-babel",
		Apply: applyFunc(func(api plugin.API) {
			api.ExtendPackage(map[string]any{
				"babel": map[string]any{"presets": []any{"a"}},
			}, manifest.ExtendOptions{})
		}),
	}}

	g, w := newTestGenerator(t, pkg, plugins)
	require.NoError(t, g.Generate(context.Background(), false, false))

	content, ok := w.files.ReadString("babel.config.js")
	require.True(t, ok)
	require.Equal(t, "module.exports = {\n  \"presets\": [\n    \"a\"\n  ]\n}\n", content)
	require.False(t, g.Manifest().Has("babel"))
}

func TestGenerate_OriginalFieldNeverExtracted(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")
	pkg.Set("babel", map[string]any{"presets": []any{"user-authored"}})

	g, w := newTestGenerator(t, pkg, nil)
	require.NoError(t, g.Generate(context.Background(), false, false))

	require.False(t, w.files.Has("babel.config.js"))
	require.True(t, g.Manifest().Has("babel"))
}

func TestExtractConfigFiles_Idempotent(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	g, _ := newTestGenerator(t, pkg, nil)
	g.pkg.Set("babel", map[string]any{"presets": []any{"a"}})

	require.NoError(t, g.extractConfigFiles(context.Background(), false, false))
	require.False(t, g.pkg.Has("babel"))
	snapshot := g.files.Snapshot()

	require.NoError(t, g.extractConfigFiles(context.Background(), false, false))
	require.Equal(t, snapshot, g.files)
	require.False(t, g.pkg.Has("babel"))
}

func TestGenerate_ExtractAllMovesEveryTransformedField(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	plugins := []*plugin.Plugin{{
		ID: "@scaffold/cli-plugin-eslint",
		Apply: applyFunc(func(api plugin.API) {
			api.ExtendPackage(map[string]any{
				"eslintConfig": map[string]any{"root": true},
				"browserslist": []any{"> 1%"},
			}, manifest.ExtendOptions{})
		}),
	}}

	g, w := newTestGenerator(t, pkg, plugins)
	require.NoError(t, g.Generate(context.Background(), true, false))

	require.True(t, w.files.Has(".eslintrc.js"))
	lines, _ := w.files.ReadString(".browserslistrc")
	require.Equal(t, "> 1%\n", lines)
	require.False(t, g.Manifest().Has("eslintConfig"))
	require.False(t, g.Manifest().Has("browserslist"))
}

func TestGenerate_TestEnvFlagSuppressesScaffoldExtraction(t *testing.T) {
	t.Setenv(TestEnvFlag, "1")

	pkg := manifest.New()
	pkg.Set("name", "x")

	plugins := []*plugin.Plugin{{
		ID: plugin.ServicePluginID,
		Apply: applyFunc(func(api plugin.API) {
			api.ExtendPackage(map[string]any{
				"scaffold": map[string]any{"lintOnSave": true},
			}, manifest.ExtendOptions{})
		}),
	}}

	g, w := newTestGenerator(t, pkg, plugins)
	require.NoError(t, g.Generate(context.Background(), false, false))

	require.False(t, w.files.Has("scaffold.config.js"))
	require.True(t, g.Manifest().Has("scaffold"))
}

func TestGenerate_LastWriterWinsThenInjectionOnTop(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	p1 := &plugin.Plugin{
		ID: "@scaffold/cli-plugin-one",
		Apply: applyFunc(func(api plugin.API) {
			api.WriteFile("src/main.js", "import App from './App'\n\ncreateApp({\n  root: App,\n}).mount('#app')\n")
			api.InjectImports("src/main.js", "import one from 'one'")
		}),
	}
	p2 := &plugin.Plugin{
		ID: "@scaffold/cli-plugin-two",
		Apply: applyFunc(func(api plugin.API) {
			api.WriteFile("src/main.js", "import App from './App2'\n\ncreateApp({\n  root: App,\n}).mount('#app')\n")
			api.InjectImports("src/main.js", "import two from 'two'")
		}),
	}

	g, w := newTestGenerator(t, pkg, []*plugin.Plugin{p1, p2})
	require.NoError(t, g.Generate(context.Background(), false, false))

	content, _ := w.files.ReadString("src/main.js")
	// P2's whole-file write won, and both plugins' imports landed on top,
	// P1's before P2's.
	require.Contains(t, content, "./App2")
	require.NotContains(t, content, "'./App'")
	oneAt := strings.Index(content, "import one from 'one'")
	twoAt := strings.Index(content, "import two from 'two'")
	require.NotEqual(t, -1, oneAt)
	require.NotEqual(t, -1, twoAt)
	require.Less(t, oneAt, twoAt)
}

func TestGenerate_RootOptionInjection(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	p1 := &plugin.Plugin{
		ID: "@scaffold/cli-plugin-base",
		Apply: applyFunc(func(api plugin.API) {
			api.WriteFile("src/main.js", "import App from './App'\n\ncreateApp({\n  root: App,\n}).mount('#app')\n")
		}),
	}
	p2 := &plugin.Plugin{
		ID: "@scaffold/cli-plugin-router",
		Apply: applyFunc(func(api plugin.API) {
			api.InjectImports("src/main.js", "import router from './router'")
			api.InjectRootOptions("src/main.js", "router")
		}),
	}

	g, w := newTestGenerator(t, pkg, []*plugin.Plugin{p1, p2})
	require.NoError(t, g.Generate(context.Background(), false, false))

	content, _ := w.files.ReadString("src/main.js")
	require.Contains(t, content, "import router from './router'")
	require.Contains(t, content, "  router,\n  root: App,")
}

func TestGenerate_PathNormalizationCollapsesKeys(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	p := &plugin.Plugin{
		ID: "@scaffold/cli-plugin-win",
		Apply: func(ctx context.Context, api plugin.API, options map[string]any, rootOptions *plugin.RootOptions, invoking bool) error {
			return nil
		},
	}

	g, w := newTestGenerator(t, pkg, []*plugin.Plugin{p})
	// Seed both separators directly; WriteFile normalizes eagerly, the
	// resolution stage must still canonicalize pre-seeded state.
	g.files["src\\util.js"] = []byte("a")
	g.files["src/util.js"] = []byte("b")
	require.NoError(t, g.Generate(context.Background(), false, false))

	count := 0
	for _, path := range w.files.Paths() {
		if path == "src/util.js" || path == "src\\util.js" {
			count++
			require.Equal(t, "src/util.js", path)
		}
	}
	require.Equal(t, 1, count)
}

func TestGenerate_ManifestSortedAndSerialized(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("dependencies", map[string]any{"vue": "^3.0.0", "axios": "^1.0.0"})
	pkg.Set("version", "0.1.0")
	pkg.Set("name", "x")

	g, w := newTestGenerator(t, pkg, nil)
	require.NoError(t, g.Generate(context.Background(), false, false))

	data, ok := w.files.Read(ManifestFile)
	require.True(t, ok)
	require.Equal(t, `{
  "name": "x",
  "version": "0.1.0",
  "dependencies": {
    "axios": "^1.0.0",
    "vue": "^3.0.0"
  }
}
`, string(data))
	_ = g
}

func TestGenerate_InitialSnapshotExcludesGeneratedFiles(t *testing.T) {
	pkg := manifest.New()
	pkg.Set("name", "x")

	files := tree.New()
	files.WriteString("README.md", "# existing\n")

	w := &captureWriter{}
	g := New(t.TempDir(), Options{
		Manifest: pkg,
		Files:    files,
		Plugins: []*plugin.Plugin{{
			ID: "@scaffold/cli-plugin-one",
			Apply: applyFunc(func(api plugin.API) {
				api.WriteFile("src/main.js", "x\n")
			}),
		}},
		Registry: plugin.NewRegistry(),
		Versions: pkgmgr.StaticResolver{},
		Writer:   w,
	})
	require.NoError(t, g.Generate(context.Background(), false, false))

	// Snapshot is taken after plugins apply, before extraction/resolution:
	// plugin writes are part of the initial state handed to the writer.
	require.True(t, w.initial.Has("README.md"))
	require.False(t, w.initial.Has(ManifestFile))
	require.True(t, w.files.Has(ManifestFile))
	require.True(t, w.files.Has("src/main.js"))
}
