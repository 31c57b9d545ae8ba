package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jlit/internal/cli"
	"jlit/internal/config"
	"jlit/internal/storage"
)

// buildEndToEndSuite lays out a minimal suite: a fake compiler in a tool
// dir, a passing test, a failing test, and a fixture dir that must be
// ignored.
func buildEndToEndSuite(t *testing.T) (suiteDir string) {
	t.Helper()
	suiteDir = t.TempDir()

	binDir := filepath.Join(suiteDir, "bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	compiler := "#!/bin/sh\necho compiled: $1\nexit 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(binDir, "jcomp"), []byte(compiler), 0755))

	suite := `name: e2e
exec_root: build/tests
tool_dirs: [bin]
tools:
  - name: jcomp
suffixes: [".java"]
timeout: 30s
workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(suiteDir, "jlit.yaml"), []byte(suite), 0644))

	ok := "// RUN: jcomp %s\n// CHECK: compiled:\n"
	require.NoError(t, os.WriteFile(filepath.Join(suiteDir, "ok.java"), []byte(ok), 0644))

	bad := "// RUN: exit 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(suiteDir, "bad.java"), []byte(bad), 0644))

	fixtures := filepath.Join(suiteDir, "Inputs")
	require.NoError(t, os.MkdirAll(fixtures, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(fixtures, "aux.java"), []byte("// RUN: exit 1\n"), 0644))

	return suiteDir
}

func newRunCommand(flags *cli.Flags) *RunCommand {
	cmds := NewCommands(flags)
	return cmds.Run
}

func TestRunCommand_EndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("suite fixtures are unix shell scripts")
	}

	suiteDir := buildEndToEndSuite(t)
	flags := &cli.Flags{
		ConfigFile: filepath.Join(suiteDir, "jlit.yaml"),
		NoProgress: true,
	}
	rc := newRunCommand(flags)

	err := rc.Execute(&cobra.Command{}, nil)
	require.Error(t, err, "a suite with a failing test must report a nonzero outcome")
	assert.NotErrorIs(t, err, config.ErrConfiguration)
	assert.Contains(t, err.Error(), "1 of 2")

	// The stored results carry one pass and one fail, fixture dir excluded.
	cfg, cfgErr := config.Load(flags.ToConfigFlags())
	require.NoError(t, cfgErr)
	output, loadErr := storage.NewJSONStorage(cfg).Load()
	require.NoError(t, loadErr)

	assert.Equal(t, 2, output.Meta.TotalTests)
	assert.Equal(t, 1, output.Meta.Passed)
	assert.Equal(t, 1, output.Meta.Failed)
	require.Len(t, output.Failures, 1)
	assert.Equal(t, "bad.java", output.Failures[0].TestName)
}

func TestRunCommand_MissingToolIsConfigError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("suite fixtures are unix shell scripts")
	}

	suiteDir := buildEndToEndSuite(t)
	suite := `name: e2e
tools:
  - name: no-such-tool
suffixes: [".java"]
`
	require.NoError(t, os.WriteFile(filepath.Join(suiteDir, "jlit.yaml"), []byte(suite), 0644))

	flags := &cli.Flags{
		ConfigFile: filepath.Join(suiteDir, "jlit.yaml"),
		NoProgress: true,
	}
	rc := newRunCommand(flags)

	err := rc.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)

	// Fail fast, fail loud: no per-test results were written.
	cfg, cfgErr := config.Load(flags.ToConfigFlags())
	require.NoError(t, cfgErr)
	_, loadErr := storage.NewJSONStorage(cfg).Load()
	assert.Error(t, loadErr)
}

func TestRunCommand_FilterAndOnlyFailed(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("suite fixtures are unix shell scripts")
	}

	suiteDir := buildEndToEndSuite(t)
	flags := &cli.Flags{
		ConfigFile: filepath.Join(suiteDir, "jlit.yaml"),
		NoProgress: true,
	}
	rc := newRunCommand(flags)

	// Full run records the failure.
	require.Error(t, rc.Execute(&cobra.Command{}, nil))

	// --failed reruns only bad.java.
	flags.OnlyFailed = true
	err := rc.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1")

	cfg, cfgErr := config.Load(flags.ToConfigFlags())
	require.NoError(t, cfgErr)
	output, loadErr := storage.NewJSONStorage(cfg).Load()
	require.NoError(t, loadErr)
	assert.Equal(t, 1, output.Meta.TotalTests)
}

func TestListCommand_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("suite fixtures are unix shell scripts")
	}

	suiteDir := buildEndToEndSuite(t)
	flags := &cli.Flags{ConfigFile: filepath.Join(suiteDir, "jlit.yaml")}
	cmds := NewCommands(flags)

	require.NoError(t, cmds.List.Execute(&cobra.Command{}, nil))

	flags.NameFilter = "*missing*"
	require.NoError(t, cmds.List.Execute(&cobra.Command{}, nil))
}

func TestToolsCommand_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("suite fixtures are unix shell scripts")
	}

	suiteDir := buildEndToEndSuite(t)
	flags := &cli.Flags{ConfigFile: filepath.Join(suiteDir, "jlit.yaml")}
	cmds := NewCommands(flags)

	require.NoError(t, cmds.Tools.Execute(&cobra.Command{}, nil))

	suite := "tools:\n  - name: ghost-tool\n"
	require.NoError(t, os.WriteFile(filepath.Join(suiteDir, "jlit.yaml"), []byte(suite), 0644))
	err := cmds.Tools.Execute(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfiguration)
}
