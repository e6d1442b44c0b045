package generator

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"
)

// versionSatisfies checks the installed version of a matched plugin against
// a semver range. A missing or unresolvable installed version fails the
// check — presence alone never satisfies a range.
func (g *Generator) versionSatisfies(id, versionRange string) bool {
	constraint, err := semver.NewConstraint(versionRange)
	if err != nil {
		slog.Debug("invalid version range", "plugin", id, "range", versionRange, "error", err)
		return false
	}
	installed, err := g.versions.InstalledVersion(id)
	if err != nil {
		slog.Debug("installed version unresolvable", "plugin", id, "error", err)
		return false
	}
	version, err := semver.NewVersion(installed)
	if err != nil {
		slog.Debug("installed version unparseable", "plugin", id, "version", installed)
		return false
	}
	return constraint.Check(version)
}
