// Package tools resolves logical tool names to concrete executable
// invocations across an ordered list of search directories.
package tools

import "strings"

// Spec identifies a logical tool. Immutable once constructed; built from
// static suite configuration at harness startup.
type Spec struct {
	// Name is the canonical tool name; it is also the substitution token
	// replaced in run lines.
	Name string

	// ExtraArgs are fixed arguments appended to every invocation.
	ExtraArgs []string

	// Path, if set, is an explicit executable path used verbatim without
	// consulting the search directories. It is not validated up front;
	// a bad override surfaces when a test invokes it.
	Path string

	// Command, if set, is a full argv override for composed tools, e.g.
	// an interpreter plus a fixed archive argument. Used verbatim.
	Command []string
}

// Resolved is a concrete tool invocation: the executable followed by any
// fixed arguments. The argv list is atomic; it must survive substitution
// as a single replacement, never re-split.
type Resolved struct {
	Name string
	Argv []string
}

// Shell renders the invocation as a single shell fragment with each argv
// element quoted as needed, so the expansion stays atomic through sh -c.
func (r Resolved) Shell() string {
	quoted := make([]string, len(r.Argv))
	for i, arg := range r.Argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// shellQuote single-quotes an argument when it contains characters the
// shell would otherwise interpret. Placeholder tokens pass through bare so
// later substitution rounds still see them.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n\"'`$&|;<>()*?[]#~") {
		return s
	}
	if strings.HasPrefix(s, "%") {
		// Deferred token such as %{EXTRA_ARGS}; quoting would freeze it.
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
