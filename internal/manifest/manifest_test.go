package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromJSON_PreservesTopLevelKeyOrder(t *testing.T) {
	m, err := FromJSON([]byte(`{"zeta": 1, "alpha": {"nested": true}, "name": "x"}`))
	require.NoError(t, err)
	require.Equal(t, []string{"zeta", "alpha", "name"}, m.Keys())
}

func TestFromJSON_RejectsNonObject(t *testing.T) {
	_, err := FromJSON([]byte(`[1, 2, 3]`))
	require.Error(t, err)
}

func TestSetDelete_MaintainInsertionOrder(t *testing.T) {
	m := New()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("b")
	m.Set("b", 4)

	require.Equal(t, []string{"a", "c", "b"}, m.Keys())
}

func TestClone_IsDeepCopy(t *testing.T) {
	m := New()
	m.Set("babel", map[string]any{"presets": []any{"a"}})

	clone := m.Clone()
	babel, _ := m.Get("babel")
	babel.(map[string]any)["presets"] = []any{"mutated"}

	clonedBabel, _ := clone.Get("babel")
	require.Equal(t, []any{"a"}, clonedBabel.(map[string]any)["presets"])
}

func TestToJSON_TwoSpaceIndentWithTrailingNewline(t *testing.T) {
	m := New()
	m.Set("name", "x")
	m.Set("private", true)

	data, err := m.ToJSON()
	require.NoError(t, err)
	require.Equal(t, "{\n  \"name\": \"x\",\n  \"private\": true\n}\n", string(data))
}

func TestToJSON_EmptyManifest(t *testing.T) {
	data, err := New().ToJSON()
	require.NoError(t, err)
	require.Equal(t, "{}\n", string(data))
}

func TestSort_CanonicalTopLevelOrder(t *testing.T) {
	m := New()
	m.Set("devDependencies", map[string]any{})
	m.Set("custom", 1)
	m.Set("version", "0.1.0")
	m.Set("another", 2)
	m.Set("name", "x")
	m.Set("scripts", map[string]any{})
	m.Sort()

	require.Equal(t,
		[]string{"name", "version", "scripts", "devDependencies", "another", "custom"},
		m.Keys())
}

func TestSort_DeterministicAcrossInsertionOrders(t *testing.T) {
	a := New()
	a.Set("dependencies", map[string]any{"vue": "^3.0.0", "axios": "^1.0.0"})
	a.Set("name", "x")
	a.Set("scripts", map[string]any{"lint": "eslint .", "serve": "dev-server"})

	b := New()
	b.Set("scripts", map[string]any{"serve": "dev-server", "lint": "eslint ."})
	b.Set("dependencies", map[string]any{"axios": "^1.0.0", "vue": "^3.0.0"})
	b.Set("name", "x")

	a.Sort()
	b.Sort()
	aJSON, err := a.ToJSON()
	require.NoError(t, err)
	bJSON, err := b.ToJSON()
	require.NoError(t, err)

	require.Equal(t, string(aJSON), string(bJSON))
}

func TestToJSON_ScriptsPriorityPrefixThenLexicographic(t *testing.T) {
	m := New()
	m.Set("scripts", map[string]any{
		"custom": "run custom",
		"lint":   "eslint .",
		"build":  "bundler build",
		"serve":  "dev-server",
	})

	data, err := m.ToJSON()
	require.NoError(t, err)
	expected := `{
  "scripts": {
    "serve": "dev-server",
    "build": "bundler build",
    "lint": "eslint .",
    "custom": "run custom"
  }
}
`
	require.Equal(t, expected, string(data))
}

func TestToJSON_DependenciesAlphabetical(t *testing.T) {
	m := New()
	m.Set("dependencies", map[string]any{"vue": "^3.0.0", "axios": "^1.0.0", "core-js": "^3.8.3"})

	data, err := m.ToJSON()
	require.NoError(t, err)
	expected := `{
  "dependencies": {
    "axios": "^1.0.0",
    "core-js": "^3.8.3",
    "vue": "^3.0.0"
  }
}
`
	require.Equal(t, expected, string(data))
}

func TestStringMap_SkipsNonStringValues(t *testing.T) {
	m := New()
	m.Set("dependencies", map[string]any{"vue": "^3.0.0", "weird": 5})

	deps := m.StringMap("dependencies")
	require.Equal(t, map[string]string{"vue": "^3.0.0"}, deps)
	require.Nil(t, m.StringMap("devDependencies"))
}
