// Package shellparse turns a raw shell command string into the flat
// sequence of command fragments every executable invocation in it could
// produce. It never executes or resolves anything; it only extracts.
package shellparse

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// Parse extracts every reachable command fragment from raw. ok is false
// whenever the AST library itself fails to parse the (rewritten) text, or
// the walk meets a node kind outside the recognized set — both cases mean
// the caller must fall through rather than trust an empty or partial
// fragment list.
func Parse(raw string) (frags []fragment.Command, ok bool) {
	rewritten := Rewrite(raw)

	parser := syntax.NewParser(syntax.Variant(syntax.LangBash), syntax.KeepComments(false))
	file, err := parser.Parse(strings.NewReader(rewritten), "")
	if err != nil {
		return nil, false
	}

	e := &extractor{}
	e.walkStmts(file.Stmts, false)
	if e.failed {
		return nil, false
	}
	return e.fragments, true
}
