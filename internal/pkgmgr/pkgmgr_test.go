package pkgmgr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeModulesResolver_ReadsInstalledVersion(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "@scaffold", "cli-plugin-babel")
	require.NoError(t, os.MkdirAll(pkgDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(pkgDir, "package.json"),
		[]byte(`{"name": "@scaffold/cli-plugin-babel", "version": "2.3.4"}`),
		0o600,
	))

	r := NewNodeModulesResolver(root)
	v, err := r.InstalledVersion("@scaffold/cli-plugin-babel")
	require.NoError(t, err)
	require.Equal(t, "2.3.4", v)
}

func TestNodeModulesResolver_MissingPackageErrors(t *testing.T) {
	r := NewNodeModulesResolver(t.TempDir())
	_, err := r.InstalledVersion("@scaffold/cli-plugin-babel")
	require.Error(t, err)
}

func TestNodeModulesResolver_MissingVersionFieldErrors(t *testing.T) {
	root := t.TempDir()
	pkgDir := filepath.Join(root, "node_modules", "leftpad")
	require.NoError(t, os.MkdirAll(pkgDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(pkgDir, "package.json"), []byte(`{}`), 0o600))

	r := NewNodeModulesResolver(root)
	_, err := r.InstalledVersion("leftpad")
	require.Error(t, err)
}

func TestStaticResolver(t *testing.T) {
	r := StaticResolver{"@scaffold/cli-plugin-babel": "1.9.0"}

	v, err := r.InstalledVersion("@scaffold/cli-plugin-babel")
	require.NoError(t, err)
	require.Equal(t, "1.9.0", v)

	_, err = r.InstalledVersion("other")
	require.Error(t, err)
}
