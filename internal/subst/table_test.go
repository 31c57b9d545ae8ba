package subst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Expand(t *testing.T) {
	t.Run("literal token replacement", func(t *testing.T) {
		table := NewTable()
		table.Register("%PATH%", "/usr/bin:/opt/bin")

		out, err := table.Expand("echo %PATH%")
		require.NoError(t, err)
		assert.Equal(t, "echo /usr/bin:/opt/bin", out)
	})

	t.Run("longest match wins over prefix token", func(t *testing.T) {
		table := NewTable()
		table.Register("%X%", "short")
		table.Register("%XY%", "long")

		// %XY% must not decompose into %X% plus literal Y.
		out, err := table.Expand("run %XY% and %X%")
		require.NoError(t, err)
		assert.Equal(t, "run long and short", out)
	})

	t.Run("later registration shadows earlier", func(t *testing.T) {
		table := NewTable()
		table.Register("%TOOL%", "old")
		table.Register("%TOOL%", "new")

		out, err := table.Expand("%TOOL%")
		require.NoError(t, err)
		assert.Equal(t, "new", out)
	})

	t.Run("bare tool names respect word boundaries", func(t *testing.T) {
		table := NewTable()
		table.Register("jvm", "/build/bin/jvm")
		table.Register("jvmc", "/build/bin/jvmc")

		out, err := table.Expand("jvmc -o %out && jvm %out")
		require.NoError(t, err)
		assert.Equal(t, "/build/bin/jvmc -o %out && /build/bin/jvm %out", out)
	})

	t.Run("forward indirection settles", func(t *testing.T) {
		// The tool expansion carries a deferred args token that is only
		// registered afterwards, mirroring the %{EXTRA_ARGS} convention.
		table := NewTable()
		table.Register("jvm", "/build/bin/jvm %{JVM_EXTRA_ARGS}")
		table.Register("%{JVM_EXTRA_ARGS}", "-Xss1m")

		out, err := table.Expand("jvm Main.class")
		require.NoError(t, err)
		assert.Equal(t, "/build/bin/jvm -Xss1m Main.class", out)
	})

	t.Run("backward indirection is resolved at registration", func(t *testing.T) {
		table := NewTable()
		table.Register("%OBJ%", "/build/obj")
		table.Register("%OUT%", "%OBJ%/out")

		out, err := table.Expand("%OUT%")
		require.NoError(t, err)
		assert.Equal(t, "/build/obj/out", out)

		// Shadowing %OBJ% later must not rewrite the already-resolved %OUT%.
		table.Register("%OBJ%", "/elsewhere")
		out, err = table.Expand("%OUT%")
		require.NoError(t, err)
		assert.Equal(t, "/build/obj/out", out)
	})

	t.Run("unregistered placeholder is an error", func(t *testing.T) {
		table := NewTable()
		table.Register("%KNOWN%", "x")

		_, err := table.Expand("%KNOWN% %MYSTERY%")
		var unresolved *UnresolvedError
		require.ErrorAs(t, err, &unresolved)
		assert.Equal(t, "%MYSTERY%", unresolved.Token)
	})

	t.Run("unregistered braced placeholder is an error", func(t *testing.T) {
		table := NewTable()
		_, err := table.Expand("run %{NOT_A_THING}")
		var unresolved *UnresolvedError
		require.ErrorAs(t, err, &unresolved)
	})

	t.Run("cycle fails deterministically", func(t *testing.T) {
		table := NewTable()
		table.Register("%A%", "%B%")
		table.Register("%B%", "%A%")

		_, err := table.Expand("%A%")
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle), "expected CycleError, got %v", err)
	})

	t.Run("self reference fails deterministically", func(t *testing.T) {
		table := NewTable()
		table.Register("%A%", "wrap %A% wrap")

		_, err := table.Expand("%A%")
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle), "expected CycleError, got %v", err)
	})

	t.Run("escaped percent output is not rescanned", func(t *testing.T) {
		// The %% escape emits a bare % that may land right before s, t, or
		// another %; the replacement must never re-form a placeholder.
		table := NewTable()
		table.Register("%s", "/suite/loop.j")
		table.Register("%t", "/build/tests/loop.tmp")
		table.Register("%%", "%")

		out, err := table.Expand("echo 100%%safe && echo 50%%total")
		require.NoError(t, err)
		assert.Equal(t, "echo 100%safe && echo 50%total", out)
	})

	t.Run("text without tokens passes through", func(t *testing.T) {
		table := NewTable()
		table.Register("%X%", "y")

		out, err := table.Expand("echo 100% plain")
		require.NoError(t, err)
		assert.Equal(t, "echo 100% plain", out)
	})
}

func TestTable_Derive(t *testing.T) {
	table := NewTable()
	table.Register("jvm", "/build/bin/jvm")

	derived := table.Derive(
		Pair{Token: "%s", Expansion: "/suite/loop.j"},
		Pair{Token: "%t", Expansion: "/build/tests/loop.tmp"},
	)

	out, err := derived.Expand("jvm %s -o %t")
	require.NoError(t, err)
	assert.Equal(t, "/build/bin/jvm /suite/loop.j -o /build/tests/loop.tmp", out)

	// Locals must not leak into the shared table.
	assert.Equal(t, 1, table.Len())
	_, err = table.Expand("%t")
	assert.Error(t, err)
}
