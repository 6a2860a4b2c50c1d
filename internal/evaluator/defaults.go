package evaluator

import "strings"

// defaultWhitelist is the built-in set of command basenames considered
// read-only. git is deliberately absent: it is handled exclusively by the
// subcommand step.
var defaultWhitelist = []string{
	// Listing
	"ls", "tree", "stat", "file", "du", "df",
	// Reading
	"cat", "head", "tail", "less", "more", "tac",
	// Search
	"grep", "rg", "fd", "find", "locate", "strings", "ag",
	// Text processing
	"sed", "cut", "paste", "tr", "sort", "uniq", "comm", "join", "fmt",
	"column", "nl", "rev", "fold", "expand", "unexpand", "wc", "xargs",
	// Structured data
	"jq", "yq",
	// Diffing
	"diff", "cmp",
	// Paths
	"readlink", "realpath", "basename", "dirname",
	// Lookup
	"which", "type", "whereis",
	// Identity/host
	"id", "whoami", "groups", "uname", "hostname", "uptime", "printenv",
	// Checksums
	"sha256sum", "sha1sum", "md5sum", "cksum", "b2sum",
	// Binary viewers
	"xxd", "hexdump", "od",
	// Builtins
	"echo", "printf", "true", "false", "test", "[", "read",
	// Process inspection
	"ps", "top", "htop", "lsof", "pgrep",
}

// defaultNeverApprove is the fixed set of executables that can always
// bypass the safety model. DefaultConfig always adds awk/gawk/mawk/nawk to
// the resulting set; ApplyAwkSafeMode removes them again.
var defaultNeverApprove = []string{
	"bash", "sh", "zsh", "fish", "dash", "csh", "ksh",
	"python", "python3", "perl", "ruby", "node", "deno", "bun",
	"eval", "exec", "source", ".",
	"sudo", "su",
	"parallel",
}

var alwaysAwkNames = []string{"awk", "gawk", "mawk", "nawk"}

// gitReadOnlySubcommands is always allowed.
var gitReadOnlySubcommands = []string{
	"blame", "diff", "log", "ls-files", "ls-tree", "rev-parse", "show",
	"show-ref", "status",
}

// gitLocalWriteSubcommands is unioned in when features.gitLocalWrites is on.
var gitLocalWriteSubcommands = []string{
	"branch", "tag", "remote", "stash", "add", "config",
}

// DefaultConfig builds the built-in effective configuration before any user
// settings are applied. Handlers is left empty: wiring sed/find/xargs/awk
// handlers into it is the config package's job (config-to-pipeline glue),
// keeping this package free of a dependency on the handlers package.
func DefaultConfig() *Config {
	cfg := &Config{
		Whitelist:           toSet(defaultWhitelist),
		NeverApprove:        toSet(defaultNeverApprove),
		Wrappers:            defaultWrappers(),
		Handlers:            map[string]HandlerFunc{},
		SubcommandWhitelist: map[string]map[string]bool{},
	}
	cfg.SubcommandWhitelist["git"] = toSet(gitReadOnlySubcommands)
	for _, name := range alwaysAwkNames {
		cfg.NeverApprove[name] = true
	}
	return cfg
}

// ApplyGitLocalWrites unions the local-write git subcommands into cfg's git
// entry and sets GitLocalWrites. The --global/--system guard on git config
// is not added here; step 5 of the pipeline checks those flags directly.
func (cfg *Config) ApplyGitLocalWrites() {
	cfg.GitLocalWrites = true
	for _, sub := range gitLocalWriteSubcommands {
		cfg.SubcommandWhitelist["git"][sub] = true
	}
}

// ApplyAwkSafeMode removes awk/gawk/mawk/nawk from never-approve and adds
// them to the general whitelist, so that once the awk handler (registered
// by the caller) passes a program as textually safe, step 6 of the
// pipeline has something to approve against.
func (cfg *Config) ApplyAwkSafeMode() {
	cfg.AwkSafeMode = true
	for _, name := range alwaysAwkNames {
		delete(cfg.NeverApprove, name)
		cfg.Whitelist[name] = true
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// defaultWrappers implements the per-wrapper argument-eating rules of
// spec §4.3 step 2.
func defaultWrappers() map[string]WrapperFunc {
	return map[string]WrapperFunc{
		"env":     wrapEnv,
		"nice":    wrapNice,
		"time":    wrapTime,
		"command": wrapCommand,
		"nohup":   wrapNohup,
	}
}

func wrapEnv(args []string) WrapperResult {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			i++
			break
		}
		if a == "-i" {
			i++
			continue
		}
		if a == "-u" {
			i += 2
			continue
		}
		if a == "-S" {
			i++
			continue
		}
		if isAssignment(a) {
			i++
			continue
		}
		break
	}
	return WrapperResult{Remaining: safeSlice(args, i)}
}

func wrapNice(args []string) WrapperResult {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			i++
			break
		}
		if a == "-n" {
			i += 2
			continue
		}
		break
	}
	return WrapperResult{Remaining: safeSlice(args, i)}
}

func wrapTime(args []string) WrapperResult {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "-p" || a == "--" {
			i++
			continue
		}
		break
	}
	return WrapperResult{Remaining: safeSlice(args, i)}
}

func wrapCommand(args []string) WrapperResult {
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "-v" || a == "-V" {
			return WrapperResult{Approved: true}
		}
		if a == "-p" {
			i++
			continue
		}
		if a == "--" {
			i++
			break
		}
		break
	}
	return WrapperResult{Remaining: safeSlice(args, i)}
}

func wrapNohup(args []string) WrapperResult {
	return WrapperResult{Remaining: args}
}

func isAssignment(tok string) bool {
	eq := strings.IndexByte(tok, '=')
	if eq <= 0 {
		return false
	}
	name := tok[:eq]
	for i, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}

func safeSlice(args []string, i int) []string {
	if i >= len(args) {
		return nil
	}
	return args[i:]
}
