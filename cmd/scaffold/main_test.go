package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scaffold/internal/generator"
)

func TestLoadManifest_FreshProject(t *testing.T) {
	pkg, invoking, err := loadManifest(t.TempDir(), "demo")
	require.NoError(t, err)
	require.False(t, invoking)
	require.Equal(t, "demo", pkg.Name())
	require.True(t, pkg.Has("version"))
}

func TestLoadManifest_ExistingProjectIsInvocation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, generator.ManifestFile),
		[]byte(`{"name": "existing", "version": "2.0.0"}`),
		0o644))

	pkg, invoking, err := loadManifest(dir, "ignored")
	require.NoError(t, err)
	require.True(t, invoking)
	require.Equal(t, "existing", pkg.Name())
}

func TestLoadManifest_MalformedManifestFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, generator.ManifestFile),
		[]byte(`["not", "an", "object"]`),
		0o644))

	_, _, err := loadManifest(dir, "demo")
	require.Error(t, err)
}
