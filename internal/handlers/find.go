package handlers

import (
	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// blockedFindFlags rejects find invocations outright regardless of what
// they would otherwise do, the fixed-deny primaries DataDog's shell
// verifier applies to find.
var blockedFindFlags = map[string]bool{
	"-delete": true, "-fprint": true, "-fprint0": true, "-fprintf": true,
}

// execFindFlags hand find's matches to another program; the nested command
// they introduce must itself be approved.
var execFindFlags = map[string]bool{
	"-exec": true, "-execdir": true, "-ok": true, "-okdir": true,
}

// HandleFind rejects the destructive/output-producing find primaries
// outright, and recurses the evaluator into whatever -exec/-execdir/-ok/
// -okdir would run, terminated by a bare ";" or "+". Multiple exec blocks
// are independent; every one must be approved.
func HandleFind(args []string, cfg *evaluator.Config, eval evaluator.Evaluator) fragment.Decision {
	i := 0
	for i < len(args) {
		a := args[i]
		if blockedFindFlags[a] {
			return fragment.Reject
		}
		if execFindFlags[a] {
			nested, consumed := extractExecInvocation(args[i+1:])
			if len(nested) == 0 {
				return fragment.Reject
			}
			inner := fragment.New(nested[0], nested[1:], false)
			if eval.Evaluate(inner) != fragment.Approve {
				return fragment.Reject
			}
			i += consumed + 1
			continue
		}
		i++
	}
	return fragment.Pass
}

// extractExecInvocation reads the command tokens following the exec-family
// flag up to the terminating ";" or "+", dropping "{}" placeholders. The
// parser hands over words as written in the source, so the shell-escaped
// spellings \; ';' and ";" also terminate. It returns how many tokens
// (including the terminator, if found) were consumed; if no terminator is
// found it consumes the whole remainder.
func extractExecInvocation(rest []string) ([]string, int) {
	var nested []string
	for i, tok := range rest {
		if tok == ";" || tok == `\;` || tok == "';'" || tok == `";"` || tok == "+" {
			return nested, i + 1
		}
		if tok == "{}" {
			continue
		}
		nested = append(nested, tok)
	}
	return nested, len(rest)
}
