package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaffoldError_Error_IncludesCategoryAndSeverity(t *testing.T) {
	err := New(CategoryPlugin, SeverityFatal, "plugin apply failed")
	require.Equal(t, "plugin (fatal): plugin apply failed", err.Error())
}

func TestScaffoldError_Unwrap_ExposesCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(cause, CategoryInject, SeverityError, "source injection failed")

	require.True(t, stderrors.Is(err, cause))
	require.Contains(t, err.Error(), "boom")
}

func TestIsCategory_MatchesOnlyScaffoldErrors(t *testing.T) {
	err := New(CategoryTransform, SeverityWarning, "no transform registered")

	require.True(t, IsCategory(err, CategoryTransform))
	require.False(t, IsCategory(err, CategoryPlugin))
	require.False(t, IsCategory(stderrors.New("plain"), CategoryTransform))
}

func TestIsCategory_SurvivesWrapping(t *testing.T) {
	inner := New(CategoryGit, SeverityError, "git bootstrap failed")
	wrapped := fmt.Errorf("generate: %w", inner)

	require.True(t, IsCategory(wrapped, CategoryGit))
	require.Equal(t, CategoryGit, GetCategory(wrapped))

	double := fmt.Errorf("cli: %w", wrapped)
	require.Equal(t, CategoryGit, GetCategory(double))
}

func TestGetCategory_FallsBackToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	require.Equal(t, CategoryPreset, GetCategory(PresetNotFound("scaffold.yaml")))
}

func TestWithContext_AccumulatesFields(t *testing.T) {
	err := PluginApplyFailed("@scaffold/cli-plugin-babel", stderrors.New("nope")).
		WithContext("stage", "apply")

	require.Equal(t, "@scaffold/cli-plugin-babel", err.Context["plugin"])
	require.Equal(t, "apply", err.Context["stage"])
}
