package evaluator

import "github.com/bsmith/readonly-bash-hook/internal/fragment"

// Evaluator is the capability handlers use to recursively classify a
// command nested inside another (find -exec, xargs). It exists so the
// handlers package never has to import the pipeline directly — the
// pipeline supplies itself as an Evaluator through a closure at call time,
// breaking the handlers <-> pipeline import cycle.
type Evaluator interface {
	Evaluate(cmd fragment.Command) fragment.Decision
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(cmd fragment.Command) fragment.Decision

func (f EvaluatorFunc) Evaluate(cmd fragment.Command) fragment.Decision {
	return f(cmd)
}

// HandlerFunc is a dangerous-mode pre-filter for a whitelisted command that
// has invocation modes which write (sed -i, find -delete, ...). It sees the
// fragment's args, not its executable, plus the effective configuration and
// an Evaluator for recursing into inner commands (find -exec, xargs).
type HandlerFunc func(args []string, cfg *Config, eval Evaluator) fragment.Decision

// WrapperResult is the outcome of stripping one wrapper's flags from the
// front of its argument list.
type WrapperResult struct {
	// Remaining is the argument list after the wrapper's own flags are
	// consumed. Remaining[0], if present, becomes the new executable.
	Remaining []string
	// Approved, when true, means the wrapper invocation itself is safe
	// regardless of what follows (e.g. "command -v ls" is a lookup, not an
	// execution) and normalization should stop immediately with APPROVE.
	Approved bool
}

// WrapperFunc strips a wrapper command's own flags from args, leaving the
// wrapped command (and its args) at the front of Remaining.
type WrapperFunc func(args []string) WrapperResult

// Config is the immutable, per-invocation effective configuration the
// pipeline evaluates every fragment against.
type Config struct {
	Whitelist           map[string]bool
	NeverApprove        map[string]bool
	Wrappers            map[string]WrapperFunc
	Handlers            map[string]HandlerFunc
	SubcommandWhitelist map[string]map[string]bool
	GitLocalWrites      bool
	AwkSafeMode         bool
}
