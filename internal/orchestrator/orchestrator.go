// Package orchestrator drives one command string through the parser and
// the evaluation pipeline end to end, producing the two outcomes the rest
// of the system is allowed to see: Approve or Fallthrough.
package orchestrator

import (
	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
	"github.com/bsmith/readonly-bash-hook/internal/shellparse"
)

// Decide parses raw, runs every extracted fragment through the pipeline,
// and AND-reduces the results. Configuration discovery happens before this
// call; cfg is already the effective, per-invocation configuration.
func Decide(raw string, cfg *evaluator.Config) fragment.Decision {
	frags, ok := shellparse.Parse(raw)
	if !ok {
		return fragment.Fallthrough
	}
	if len(frags) == 0 {
		return fragment.Approve
	}
	for _, f := range frags {
		if evaluator.Evaluate(f, cfg) != fragment.Approve {
			return fragment.Fallthrough
		}
	}
	return fragment.Approve
}
