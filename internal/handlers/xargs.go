package handlers

import (
	"strings"

	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// xargsShortValueFlags take a value either as a separate following token
// (the canonical "-I {}" form) or glued directly onto the flag (the common
// "-I{}" form). xargsLongValueFlags take a value as a separate token or
// via the single-token "--name=value" form; the long form never glues
// without the "=".
var xargsShortValueFlags = []string{"-d", "-a", "-I", "-L", "-n", "-P", "-s", "-E"}

var xargsLongValueFlags = map[string]bool{
	"--max-args": true, "--max-procs": true, "--max-chars": true,
	"--delimiter": true, "--arg-file": true, "--replace": true,
	"--max-lines": true, "--eof": true,
}

// xargsBareFlags consume only their own token.
var xargsBareFlags = map[string]bool{
	"-0": true, "-r": true, "-t": true, "-p": true, "-x": true,
	"--null": true, "--no-run-if-empty": true, "--verbose": true,
	"--interactive": true, "--exit": true, "--open-tty": true,
}

// HandleXargs finds the wrapped command xargs will invoke per matched
// input line and recurses the evaluator into it. Absent any such command,
// xargs defaults to echo, which is safe.
func HandleXargs(args []string, cfg *evaluator.Config, eval evaluator.Evaluator) fragment.Decision {
	i := 0
	for i < len(args) {
		a := args[i]

		if eq := strings.IndexByte(a, '='); eq > 0 && xargsLongValueFlags[a[:eq]] {
			i++
			continue
		}
		if xargsLongValueFlags[a] {
			i += 2
			continue
		}
		if consumed, matched := matchShortValueFlag(a); matched {
			i += consumed
			continue
		}
		if xargsBareFlags[a] {
			i++
			continue
		}
		break
	}
	if i >= len(args) {
		return fragment.Pass
	}
	inner := fragment.New(args[i], args[i+1:], false)
	if eval.Evaluate(inner) == fragment.Approve {
		return fragment.Pass
	}
	return fragment.Reject
}

// matchShortValueFlag reports how many tokens a short value flag consumes:
// two when the value is a separate following token, one when it is glued
// onto the flag itself.
func matchShortValueFlag(a string) (consumed int, matched bool) {
	for _, flag := range xargsShortValueFlags {
		if a == flag {
			return 2, true
		}
		if strings.HasPrefix(a, flag) && len(a) > len(flag) {
			return 1, true
		}
	}
	return 0, false
}
