// Package pkgmgr is the facade over the package manager: it answers "what
// version of this package is installed" without the engine knowing how
// packages get installed.
package pkgmgr

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// VersionResolver reports the installed version of a package.
type VersionResolver interface {
	// InstalledVersion returns the installed version of id, or an error when
	// the package is not installed or its version cannot be determined.
	InstalledVersion(id string) (string, error)
}

// NodeModulesResolver resolves versions by reading
// node_modules/<id>/package.json under the project root.
type NodeModulesResolver struct {
	Root string
}

// NewNodeModulesResolver creates a resolver rooted at the project directory.
func NewNodeModulesResolver(root string) *NodeModulesResolver {
	return &NodeModulesResolver{Root: root}
}

// InstalledVersion reads the package's manifest from node_modules.
func (r *NodeModulesResolver) InstalledVersion(id string) (string, error) {
	path := filepath.Join(r.Root, "node_modules", filepath.FromSlash(id), "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read installed package %s: %w", id, err)
	}
	var pkg struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("parse installed package %s: %w", id, err)
	}
	if pkg.Version == "" {
		return "", fmt.Errorf("installed package %s has no version", id)
	}
	return pkg.Version, nil
}

// StaticResolver resolves versions from a fixed map. Used in tests and when
// the caller already knows the installed set.
type StaticResolver map[string]string

// InstalledVersion looks the package up in the map.
func (r StaticResolver) InstalledVersion(id string) (string, error) {
	v, ok := r[id]
	if !ok {
		return "", fmt.Errorf("package %s is not installed", id)
	}
	return v, nil
}
