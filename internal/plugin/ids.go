package plugin

import (
	"regexp"
	"strings"
)

// ServicePluginID is the core service plugin. When it appears in the
// explicit invocation list its options become the root options for the run.
const ServicePluginID = "@scaffold/cli-service"

// pluginIDRe matches official, community, and scoped-community plugin
// package names: @scaffold/cli-plugin-*, scaffold-cli-plugin-*, and
// @scope/scaffold-cli-plugin-*.
var pluginIDRe = regexp.MustCompile(`^(@scaffold/|scaffold-|@[\w-]+(\.)?[\w-]+/scaffold-)cli-plugin-`)

// IsPluginID reports whether id names a scaffolding plugin package.
func IsPluginID(id string) bool {
	return pluginIDRe.MatchString(id)
}

var (
	scopeRe  = regexp.MustCompile(`^@scaffold/|^scaffold-|^@[\w-]+(\.)?[\w-]+/`)
	prefixRe = regexp.MustCompile(`^(scaffold-)?cli-plugin-`)
)

// ShortID strips the scope and cli-plugin prefix from a plugin ID, e.g.
// "@scaffold/cli-plugin-babel" → "babel".
func ShortID(id string) string {
	short := scopeRe.ReplaceAllString(id, "")
	return prefixRe.ReplaceAllString(short, "")
}

// MatchesID reports whether input names the plugin with the given full ID,
// accepting the full form, the short form, or another full form with the
// same short form.
func MatchesID(input, full string) bool {
	if input == full {
		return true
	}
	short := ShortID(full)
	return short == input || short == ShortID(input)
}

// IsOfficial reports whether the plugin ID lives in the @scaffold scope.
func IsOfficial(id string) bool {
	return strings.HasPrefix(id, "@scaffold/")
}
