// Package handlers implements the per-command dangerous-mode pre-filters
// that a handful of otherwise-whitelisted commands need: sed, find, xargs,
// and (optionally) awk all have invocation shapes that write to disk or
// that launch an arbitrary nested command, and a blanket whitelist entry
// cannot tell those shapes apart from the read-only ones.
package handlers

import (
	"strings"

	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// HandleSed rejects sed invocations that write in place (-i / --in-place,
// with or without a backup-suffix argument glued or separate, or bundled
// into a combined short-flag cluster like -ni or -Ei) and passes everything
// else through, mirroring the blocked-in-place-flag check the sandboxed
// bash-tool reference code applies to sed before letting it run.
func HandleSed(args []string, cfg *evaluator.Config, eval evaluator.Evaluator) fragment.Decision {
	for _, a := range args {
		if a == "-i" || strings.HasPrefix(a, "-i") {
			return fragment.Reject
		}
		if a == "--in-place" || strings.HasPrefix(a, "--in-place=") {
			return fragment.Reject
		}
		// combined short flags such as -ni containing 'i'
		if len(a) > 1 && a[0] == '-' && a[1] != '-' && strings.ContainsRune(a[1:], 'i') {
			return fragment.Reject
		}
	}
	return fragment.Pass
}
