// Package subst implements the ordered token-to-expansion registry that
// turns placeholder-bearing run lines into concrete shell commands.
package subst

import (
	"fmt"
	"regexp"
)

// Pair is one token/expansion association.
type Pair struct {
	Token     string
	Expansion string
}

// Table is an ordered substitution registry. Registration order matters:
// when two entries share a token the later one wins, and an entry may
// reference tokens registered before it. The table is built once per
// harness run and is read-only during test execution.
type Table struct {
	entries []Pair
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Register appends a token/expansion association. References to tokens
// already registered are resolved eagerly, so one level of backward
// indirection is flattened at registration time. Forward references are
// left in place and resolved during Expand.
func (t *Table) Register(token, expansion string) {
	resolved, _ := t.expand(expansion, make(map[int]bool), false)
	t.entries = append(t.entries, Pair{Token: token, Expansion: resolved})
}

// Derive returns a new Table sharing the receiver's entries plus the given
// local pairs. The receiver is unchanged; this is how per-test tokens
// (%s, %t, ...) are layered over the shared suite table. Local expansions
// are literal values (paths, mostly) and are appended as-is, never run
// through indirection.
func (t *Table) Derive(locals ...Pair) *Table {
	derived := &Table{entries: make([]Pair, 0, len(t.entries)+len(locals))}
	derived.entries = append(derived.entries, t.entries...)
	derived.entries = append(derived.entries, locals...)
	return derived
}

// Len returns the number of registered entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the registered pairs in registration order.
func (t *Table) Entries() []Pair {
	return append([]Pair{}, t.entries...)
}

// UnresolvedError reports a placeholder that survived expansion because no
// registered entry covers it. This is a configuration error, not a test
// failure.
type UnresolvedError struct {
	Token string
	Text  string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved placeholder %q in command %q", e.Token, e.Text)
}

// CycleError reports token indirection that refers back into itself.
type CycleError struct {
	Token string
	Text  string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic indirection through token %q expanding %q", e.Token, e.Text)
}

// placeholderPattern matches the explicit placeholder shapes: %{NAME},
// %NAME%, and the short per-test forms (%s, %S, %t, %T, %%). Bare-word tool
// tokens cannot be detected as residue, so only the marker forms
// participate in the unresolved check.
var placeholderPattern = regexp.MustCompile(`%\{[^}]*\}|%[A-Za-z_][A-Za-z0-9_]*%|%[sStT%]`)

// Expand rewrites every registered token in text, replacing the longest
// matching token at each position. Each replacement is atomic: the token
// being expanded is masked while its own expansion is processed, so a
// resolved tool path that ends in the tool's name is never re-substituted,
// while nested references to other tokens still resolve. Masking bounds
// the recursion at the table size, so expansion always terminates.
// Placeholder-shaped text that no replacement covers is detected in place,
// never in the substituted output, so a replacement value that happens to
// look like a placeholder (a "%" produced by the %% escape, say) passes
// through untouched. A leftover placeholder that is registered can only be
// a self-referencing indirection (CycleError); one that is not registered
// is an UnresolvedError.
func (t *Table) Expand(text string) (string, error) {
	return t.expand(text, make(map[int]bool), true)
}

// expand performs one left-to-right scan, recursing into each matched
// entry's expansion with that entry masked. In strict mode, placeholder
// shapes no entry covers abort the expansion; registration uses lenient
// mode so forward references survive until Expand.
func (t *Table) expand(text string, masked map[int]bool, strict bool) (string, error) {
	var out []byte
	for i := 0; i < len(text); {
		idx, ok := t.matchAt(text, i, masked)
		if !ok {
			if strict {
				if loc := placeholderPattern.FindStringIndex(text[i:]); loc != nil && loc[0] == 0 {
					token := text[i : i+loc[1]]
					if t.isRegistered(token) {
						return "", &CycleError{Token: token, Text: text}
					}
					return "", &UnresolvedError{Token: token, Text: text}
				}
			}
			out = append(out, text[i])
			i++
			continue
		}
		entry := t.entries[idx]
		masked[idx] = true
		sub, err := t.expand(entry.Expansion, masked, strict)
		delete(masked, idx)
		if err != nil {
			return "", err
		}
		out = append(out, sub...)
		i += len(entry.Token)
	}
	return string(out), nil
}

// matchAt finds the unmasked entry matching text at position i, preferring
// the longest token and, among equal tokens, the latest registration.
// Bare-word tokens only match on word boundaries so a tool named "jvm"
// does not fire inside "jvmc".
func (t *Table) matchAt(text string, i int, masked map[int]bool) (int, bool) {
	best := -1
	for idx, entry := range t.entries {
		if masked[idx] {
			continue
		}
		n := len(entry.Token)
		if n == 0 || i+n > len(text) || text[i:i+n] != entry.Token {
			continue
		}
		if isWordChar(entry.Token[0]) && i > 0 && isWordChar(text[i-1]) {
			continue
		}
		if isWordChar(entry.Token[n-1]) && i+n < len(text) && isWordChar(text[i+n]) {
			continue
		}
		if best < 0 || n > len(t.entries[best].Token) || (n == len(t.entries[best].Token) && idx > best) {
			best = idx
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func (t *Table) isRegistered(token string) bool {
	for _, entry := range t.entries {
		if entry.Token == token {
			return true
		}
	}
	return false
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
