package manifest

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ExtendOptions controls Extend's merge behavior.
type ExtendOptions struct {
	// Source identifies the plugin contributing the fields, for warnings.
	Source string

	// Prune deletes keys whose incoming value is nil instead of storing null.
	Prune bool

	// NoMerge overwrites object and array values wholesale instead of
	// deep-merging them. Dependency fields always merge per package.
	NoMerge bool

	// WarnIncompatibleVersions logs when two plugins request dependency
	// ranges that cannot both be honored.
	WarnIncompatibleVersions bool
}

// Extend merges fields into the manifest. Dependency fields merge per
// package with semver-aware range conflict resolution; other objects
// deep-merge, arrays union-merge preserving order, scalars overwrite.
func (m *Manifest) Extend(fields map[string]any, opts ExtendOptions) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := fields[key]
		if value == nil {
			if opts.Prune {
				m.Delete(key)
			}
			continue
		}
		existing, has := m.Get(key)
		incomingObj, incomingIsObj := value.(map[string]any)

		if incomingIsObj && isDependencyField(key) {
			existingObj, _ := existing.(map[string]any)
			m.Set(key, mergeDeps(opts.Source, existingObj, incomingObj, opts.WarnIncompatibleVersions))
			continue
		}
		if !has || opts.NoMerge {
			m.Set(key, value)
			continue
		}
		m.Set(key, mergeValue(existing, value))
	}
}

func isDependencyField(key string) bool {
	for _, f := range DependencyFields {
		if key == f {
			return true
		}
	}
	return false
}

// mergeValue deep-merges incoming into existing. Maps merge key-wise,
// arrays union-merge with duplicates suppressed, anything else is replaced
// by the incoming value.
func mergeValue(existing, incoming any) any {
	switch inc := incoming.(type) {
	case map[string]any:
		ex, ok := existing.(map[string]any)
		if !ok {
			return incoming
		}
		out := make(map[string]any, len(ex)+len(inc))
		for k, v := range ex {
			out[k] = v
		}
		incKeys := make([]string, 0, len(inc))
		for k := range inc {
			incKeys = append(incKeys, k)
		}
		sort.Strings(incKeys)
		for _, k := range incKeys {
			if cur, ok := out[k]; ok {
				out[k] = mergeValue(cur, inc[k])
			} else {
				out[k] = inc[k]
			}
		}
		return out
	case []any:
		ex, ok := existing.([]any)
		if !ok {
			return incoming
		}
		return mergeArrayWithDedupe(ex, inc)
	default:
		return incoming
	}
}

func mergeArrayWithDedupe(a, b []any) []any {
	out := make([]any, 0, len(a)+len(b))
	out = append(out, a...)
	for _, v := range b {
		if !containsValue(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func containsValue(list []any, v any) bool {
	for _, e := range list {
		if equalValue(e, v) {
			return true
		}
	}
	return false
}

func equalValue(a, b any) bool {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		// Composite array entries are never deduplicated.
		return false
	}
}

// mergeDeps merges a package→range map per package. When two plugins ask
// for different ranges of the same package, the range with the newer lower
// bound wins; unparseable ranges fall back to the incoming value.
func mergeDeps(source string, existing, incoming map[string]any, warnIncompatible bool) map[string]any {
	out := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		out[k] = v
	}

	names := make([]string, 0, len(incoming))
	for name := range incoming {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		incRange, ok := incoming[name].(string)
		if !ok {
			out[name] = incoming[name]
			continue
		}
		curRange, has := out[name].(string)
		if !has || curRange == incRange {
			out[name] = incRange
			continue
		}

		if !isValidRange(curRange) || !isValidRange(incRange) {
			slog.Warn("invalid dependency range, keeping requested value",
				"package", name, "existing", curRange, "requested", incRange, "source", source)
			out[name] = incRange
			continue
		}

		newer, comparable := newerRange(curRange, incRange)
		if comparable {
			out[name] = newer
		} else {
			out[name] = incRange
		}
		if warnIncompatible {
			slog.Warn("conflicting dependency ranges",
				"package", name, "existing", curRange, "requested", incRange,
				"resolved", out[name], "source", source)
		}
	}
	return out
}

func isValidRange(r string) bool {
	_, err := semver.NewConstraint(r)
	return err == nil
}

// newerRange picks the range whose lower bound is newer. The lower bound is
// approximated by stripping the leading range operator of the common forms
// (^, ~, >=, >, =) and parsing the remainder as a version.
func newerRange(a, b string) (string, bool) {
	va, okA := rangeLowerBound(a)
	vb, okB := rangeLowerBound(b)
	if !okA || !okB {
		return "", false
	}
	if va.GreaterThan(vb) {
		return a, true
	}
	return b, true
}

func rangeLowerBound(r string) (*semver.Version, bool) {
	r = strings.TrimSpace(r)
	for _, op := range []string{">=", "^", "~", ">", "="} {
		if strings.HasPrefix(r, op) {
			r = strings.TrimSpace(r[len(op):])
			break
		}
	}
	v, err := semver.NewVersion(r)
	if err != nil {
		return nil, false
	}
	return v, true
}
