package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite_LastWriterWins(t *testing.T) {
	tr := New()
	tr.WriteString("src/main.js", "first")
	tr.WriteString("src/main.js", "second")

	got, ok := tr.ReadString("src/main.js")
	require.True(t, ok)
	require.Equal(t, "second", got)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	tr := New()
	tr.Write("a.txt", []byte("aaa"))

	snap := tr.Snapshot()
	tr.WriteString("a.txt", "mutated")
	tr.WriteString("b.txt", "new")

	got, ok := snap.ReadString("a.txt")
	require.True(t, ok)
	require.Equal(t, "aaa", got)
	require.False(t, snap.Has("b.txt"))
}

func TestSnapshot_CopiesContentBytes(t *testing.T) {
	tr := New()
	content := []byte("abc")
	tr.Write("a.bin", content)

	snap := tr.Snapshot()
	content[0] = 'z'

	got, _ := snap.Read("a.bin")
	require.Equal(t, []byte("abc"), got)
}

func TestNormalizePath_ConvertsBackslashesAndDotPrefix(t *testing.T) {
	require.Equal(t, "src/main.js", NormalizePath("src\\main.js"))
	require.Equal(t, "src/main.js", NormalizePath("./src/main.js"))
	require.Equal(t, "src/main.js", NormalizePath("src/main.js"))
	require.Equal(t, "src/util/a.js", NormalizePath("src\\util/a.js"))
}

func TestNormalize_CollapsesEquivalentKeys(t *testing.T) {
	tr := New()
	tr.WriteString("src\\main.js", "backslash")
	tr.WriteString("src/main.js", "forward")
	tr.Normalize()

	require.Len(t, tr, 1)
	got, ok := tr.ReadString("src/main.js")
	require.True(t, ok)
	// Keys rewrite in lexicographic order of their original form, so the
	// backslash key lands last and wins.
	require.Equal(t, "backslash", got)
}

func TestPaths_SortedLexicographically(t *testing.T) {
	tr := New()
	tr.WriteString("b.txt", "")
	tr.WriteString("a.txt", "")
	tr.WriteString("src/main.js", "")

	require.Equal(t, []string{"a.txt", "b.txt", "src/main.js"}, tr.Paths())
}
