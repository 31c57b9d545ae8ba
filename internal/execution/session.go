// Package execution is the convergence point of the harness: the resolved
// substitution table and the discovered tests meet here to produce results.
package execution

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"runtime"

	"jlit/internal/config"
	"jlit/internal/domain"
	"jlit/internal/environ"
	"jlit/internal/script"
	"jlit/internal/subst"
	"jlit/internal/tools"
)

// Session holds the read-only state shared by every test execution in one
// harness run: the projected environment, the fully resolved substitution
// table, and the feature set. Built once before any test executes; never
// mutated afterwards.
type Session struct {
	Config   *config.Config
	Env      environ.Environment
	Table    *subst.Table
	Features map[string]bool
}

// NewSession projects the environment and resolves every declared tool.
// Any unresolvable tool or bad substitution is a configuration error; the
// suite must not start in an environment that cannot support it.
func NewSession(cfg *config.Config) (*Session, error) {
	projector := environ.NewProjector(cfg.EnvAllow)
	for name, value := range cfg.EnvSet {
		projector.Set(name, value)
	}
	for _, dir := range cfg.PathAppend {
		projector.AppendPath("PATH", dir)
	}
	// Tool directories ride on PATH too, so a resolved tool can spawn its
	// siblings by bare name.
	for _, dir := range cfg.ToolDirs {
		projector.AppendPath("PATH", dir)
	}
	env := projector.Snapshot()

	resolver := tools.NewResolver(cfg.ToolDirs)
	table := subst.NewTable()
	for _, tool := range cfg.Tools {
		resolved, err := resolver.Resolve(tools.Spec{
			Name:      tool.Name,
			ExtraArgs: tool.ExtraArgs,
			Path:      tool.Path,
			Command:   tool.Command,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrConfiguration, err)
		}
		table.Register(resolved.Name, resolved.Shell())
	}

	if path, ok := env.Get("PATH"); ok {
		table.Register("%PATH%", path)
	}
	for _, sub := range cfg.Substitutions {
		table.Register(sub.Token, sub.Value)
	}

	return &Session{
		Config:   cfg,
		Env:      env,
		Table:    table,
		Features: cfg.FeatureSet(runtime.GOOS, runtime.GOARCH),
	}, nil
}

// Command is one fully expanded run line, ready for the shell.
type Command struct {
	Line       string
	ExpectFail bool
}

// PreparedTest is a discovered test plus its derived command script.
// Immutable once built; consumed exactly once by the executor.
type PreparedTest struct {
	Test       domain.Test
	Script     *script.Script
	Commands   []Command
	ScratchDir string // per-test working directory under the exec root
}

// Prepare parses and expands every test's run lines up front. Unreadable
// test files, unresolved placeholders, and cyclic indirection all surface
// here as configuration errors, before any test executes.
func (s *Session) Prepare(tests []domain.Test) ([]*PreparedTest, error) {
	prepared := make([]*PreparedTest, 0, len(tests))
	for _, test := range tests {
		parsed, err := script.Parse(test.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", config.ErrConfiguration, test.Name, err)
		}

		scratch := scratchDir(s.Config.ExecRoot, test)
		derived := s.Table.Derive(
			subst.Pair{Token: "%s", Expansion: test.Path},
			subst.Pair{Token: "%S", Expansion: filepath.Dir(test.Path)},
			subst.Pair{Token: "%t", Expansion: filepath.Join(scratch, "output")},
			subst.Pair{Token: "%T", Expansion: scratch},
			subst.Pair{Token: "%%", Expansion: "%"},
		)

		pt := &PreparedTest{Test: test, Script: parsed, ScratchDir: scratch}
		for _, line := range parsed.RunLines {
			expanded, err := derived.Expand(line.Command)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", config.ErrConfiguration, test.Name, err)
			}
			pt.Commands = append(pt.Commands, Command{Line: expanded, ExpectFail: line.ExpectFail})
		}
		prepared = append(prepared, pt)
	}
	return prepared, nil
}

// scratchDir keys the per-test working directory on the source path, not
// just the display name, so two same-named tests from different
// directories never share scratch state.
func scratchDir(execRoot string, test domain.Test) string {
	h := fnv.New32a()
	h.Write([]byte(test.Path))
	return filepath.Join(execRoot, fmt.Sprintf("%s-%08x.dir", filepath.FromSlash(test.Name), h.Sum32()))
}
