package handlers

import (
	"regexp"
	"strings"

	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// awkDangerousPattern matches awk program constructs that execute commands
// or write files: system(), getline from a command, and print/printf
// redirected to a file or piped to a shell. A > or | anywhere after print or
// printf within the same statement (up to the next ";", "}" or newline)
// counts, so a pattern comparison such as NR > 1 ahead of the action is not
// matched, while a parenthesized comparison inside a print statement is
// conservatively treated as a redirect.
var awkDangerousPattern = regexp.MustCompile(`(?i)(system\s*\(|getline\s*\(|getline\s+\w|\|\s*getline|printf?[^;}\n]*[>|])`)

// HandleAwk is registered only when AwkSafeMode is enabled. It passes an
// awk invocation through to the whitelist unless its program text contains
// a dangerous construct; a program supplied via -f is rejected outright
// since static analysis of an external file is not possible here.
func HandleAwk(args []string, cfg *evaluator.Config, eval evaluator.Evaluator) fragment.Decision {
	i := 0
	for i < len(args) {
		a := args[i]
		if strings.HasPrefix(a, "-f") || strings.HasPrefix(a, "--file") {
			// The program lives in a file this process cannot safely read
			// mid-decision; an external script is not provably read-only.
			return fragment.Reject
		}
		if a == "-v" || a == "-F" {
			i += 2
			continue
		}
		if len(a) > 0 && a[0] == '-' {
			i++
			continue
		}
		break
	}
	if i >= len(args) {
		return fragment.Reject
	}
	program := args[i]
	if awkDangerousPattern.MatchString(program) {
		return fragment.Reject
	}
	return fragment.Pass
}
