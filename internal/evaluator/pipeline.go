package evaluator

import (
	"path/filepath"
	"strings"

	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

// Evaluate runs a single command fragment through the fixed seven-step
// pipeline and returns Approve or Reject. It never returns Pass or
// Fallthrough: Fallthrough is the orchestrator's concern, not a single
// fragment's.
func Evaluate(cmd fragment.Command, cfg *Config) fragment.Decision {
	// Step 1: an output redirect on the top-level pipeline member is an
	// immediate reject regardless of which command holds it.
	if cmd.HasOutputRedirect {
		return fragment.Reject
	}

	// Step 2: normalize and unwrap.
	name, args, approved, empty := normalize(cmd.Executable, cmd.Args, cfg)
	if approved {
		return fragment.Approve
	}
	if empty {
		return fragment.Approve
	}

	// Step 3: never-approve is checked before anything else gets a say.
	if cfg.NeverApprove[name] {
		return fragment.Reject
	}

	// Step 4: dangerous-mode handler, if one is registered for this name.
	if handler, ok := cfg.Handlers[name]; ok {
		eval := EvaluatorFunc(func(c fragment.Command) fragment.Decision {
			return Evaluate(c, cfg)
		})
		if handler(args, cfg, eval) == fragment.Reject {
			return fragment.Reject
		}
		// PASS falls through to step 5.
	}

	// Step 5: subcommand whitelist.
	if subs, ok := cfg.SubcommandWhitelist[name]; ok {
		sub, rest, found := resolveSubcommand(name, args)
		if !found {
			return fragment.Reject
		}
		if !subs[sub] {
			return fragment.Reject
		}
		if name == "git" && sub == "config" && cfg.GitLocalWrites && hasGitGlobalScopeFlag(rest) {
			return fragment.Reject
		}
		return fragment.Approve
	}

	// Step 6: general whitelist.
	if cfg.Whitelist[name] {
		return fragment.Approve
	}

	// Step 7: default reject.
	return fragment.Reject
}

// normalize unwraps env/nice/time/command/nohup wrapper chains and resolves
// the executable to its basename, repeating until stable. approved is true
// when a wrapper flag (command -v/-V) decided the fragment outright; empty
// is true when unwrapping consumed every token and left no executable
// (e.g. "env FOO=bar" with nothing left to run).
func normalize(executable string, args []string, cfg *Config) (name string, rest []string, approved bool, empty bool) {
	name = filepath.Base(executable)
	rest = args
	for {
		wrap, ok := cfg.Wrappers[name]
		if !ok {
			return name, rest, false, false
		}
		result := wrap(rest)
		if result.Approved {
			return "", nil, true, false
		}
		if len(result.Remaining) == 0 {
			return "", nil, false, true
		}
		name = filepath.Base(result.Remaining[0])
		rest = result.Remaining[1:]
	}
}

// gitGlobalFlagsWithValue take one following token as their value.
var gitGlobalFlagsWithValue = map[string]bool{
	"-C": true, "-c": true, "--git-dir": true, "--work-tree": true, "--namespace": true,
}

// gitGlobalFlagsNoValue consume no following token.
var gitGlobalFlagsNoValue = map[string]bool{
	"--no-pager": true, "--bare": true, "--no-replace-objects": true,
}

// resolveSubcommand finds the first non-flag token that names the
// sub-command for name, skipping name-specific global flags along the way.
// rest is the tokens after the subcommand, for callers (the git --global
// guard) that need to keep scanning past it.
func resolveSubcommand(name string, args []string) (sub string, rest []string, found bool) {
	if name != "git" {
		i := 0
		for i < len(args) && strings.HasPrefix(args[i], "-") {
			i++
		}
		if i >= len(args) {
			return "", nil, false
		}
		return args[i], args[i+1:], true
	}

	i := 0
	for i < len(args) {
		a := args[i]
		if gitGlobalFlagsNoValue[a] {
			i++
			continue
		}
		if gitGlobalFlagsWithValue[a] {
			i += 2
			continue
		}
		if eq := strings.IndexByte(a, '='); eq > 0 && gitGlobalFlagsWithValue[a[:eq]] {
			i++
			continue
		}
		if strings.HasPrefix(a, "-") {
			// Unrecognized global flag: stop skipping here. The flag
			// itself is returned as the subcommand, which no allowed set
			// contains.
			break
		}
		break
	}
	if i >= len(args) {
		return "", nil, false
	}
	return args[i], args[i+1:], true
}

func hasGitGlobalScopeFlag(args []string) bool {
	for _, a := range args {
		if a == "--global" || a == "--system" {
			return true
		}
	}
	return false
}
