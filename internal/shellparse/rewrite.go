package shellparse

import (
	"regexp"
	"strings"
)

// leadingTimeKeyword matches a leading `time` reserved word and its only
// flag, `-p`, so the AST library's own TimeClause handling (which the
// walker does not recognize) never has to see it. `/usr/bin/time` is a
// different thing entirely and is handled as a wrapper command, not here.
var leadingTimeKeyword = regexp.MustCompile(`^\s*time(\s+-p)?\s+`)

// arithmeticExpansion matches a balanced-enough $((...)) so it can be
// replaced with a placeholder literal before parsing. It does not attempt
// to balance nested parentheses beyond one level, which covers the
// overwhelming majority of real commands; anything pathological enough to
// defeat it will fail to parse cleanly and fall through anyway.
var arithmeticExpansion = regexp.MustCompile(`\$\(\([^()]*(?:\([^()]*\)[^()]*)*\)\)`)

// extendedTest matches a [[ ... ]] extended test expression.
var extendedTest = regexp.MustCompile(`\[\[[^\]]*\]\]`)

// arithmeticPlaceholder is a single safe word the rewrite substitutes for
// every arithmetic expansion. It must tokenize as one literal and never be
// mistaken for an executable.
const arithmeticPlaceholder = "0"

// Rewrite applies the three pre-parse textual rewrites. Each is statically
// known to be semantics-preserving for the purpose of extraction: the
// arithmetic and extended-test rewrites replace constructs that cannot
// themselves name an executable with literals that tokenize identically
// everywhere they might appear. A match whose body contains a command or
// process substitution ($(...), backticks, <(...), >(...)) is left as
// written, so the parser still sees the nested command.
func Rewrite(raw string) string {
	hasSubst := func(body string) bool {
		return strings.Contains(body, "$(") || strings.Contains(body, "`") ||
			strings.Contains(body, "<(") || strings.Contains(body, ">(")
	}
	s := leadingTimeKeyword.ReplaceAllString(raw, "")
	s = arithmeticExpansion.ReplaceAllStringFunc(s, func(m string) string {
		if hasSubst(m[2:]) {
			return m
		}
		return arithmeticPlaceholder
	})
	s = extendedTest.ReplaceAllStringFunc(s, func(m string) string {
		if hasSubst(m) {
			return m
		}
		return "true"
	})
	return s
}
