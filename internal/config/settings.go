// Package config discovers and loads the host's JSON settings file and
// turns the readonlyBashHook sub-object into the evaluator's effective
// configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/bsmith/readonly-bash-hook/internal/evaluator"
	"github.com/bsmith/readonly-bash-hook/internal/handlers"
)

const settingsKey = "readonlyBashHook"

// Features holds the two feature flags. Any additional keys a future
// settings file adds under "features" are accepted by viper and ignored
// here without error.
type Features struct {
	GitLocalWrites bool `mapstructure:"gitLocalWrites"`
	AwkSafeMode    bool `mapstructure:"awkSafeMode"`
}

// HookSettings mirrors the recognized keys under readonlyBashHook.
type HookSettings struct {
	ExtraCommands       []string            `mapstructure:"extraCommands"`
	RemoveCommands      []string            `mapstructure:"removeCommands"`
	Features            Features            `mapstructure:"features"`
	SubcommandWhitelist map[string][]string `mapstructure:"subcommandWhitelist"`
}

// Locate returns the two candidate settings paths, project-local first.
// home is the caller's home directory resolution; passing it in keeps this
// function testable without touching the real environment.
func Locate(projectDir, home string) []string {
	var candidates []string
	if projectDir != "" {
		candidates = append(candidates, filepath.Join(projectDir, ".claude", "settings.json"))
	}
	if home != "" {
		candidates = append(candidates, filepath.Join(home, ".claude", "settings.json"))
	}
	return candidates
}

// DefaultCandidates resolves Locate's arguments from the real process
// environment: the current working directory and the user's home.
func DefaultCandidates() []string {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Locate(cwd, home)
}

// Load tries each candidate path in order and returns the settings parsed
// from the first one that exists and parses cleanly. Any failure at any
// stage for a candidate — missing file, unreadable, malformed JSON, wrong
// types — moves on to the next candidate; exhausting every candidate
// returns the zero-value HookSettings, never an error, since the default
// configuration must always be usable.
func Load(candidates []string) HookSettings {
	for _, path := range candidates {
		if settings, ok := loadOne(path); ok {
			return settings
		}
	}
	return HookSettings{}
}

func loadOne(path string) (HookSettings, bool) {
	if _, err := os.Stat(path); err != nil {
		return HookSettings{}, false
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return HookSettings{}, false
	}
	var settings HookSettings
	if err := v.UnmarshalKey(settingsKey, &settings); err != nil {
		return HookSettings{}, false
	}
	return settings, true
}

// BuildEffectiveConfig seeds the built-in defaults and layers the loaded
// settings on top, then wires the fixed and conditional handlers in. This
// is the only place in the repository that imports both evaluator and
// handlers, keeping the pipeline package itself free of that dependency.
func BuildEffectiveConfig(settings HookSettings) *evaluator.Config {
	cfg := evaluator.DefaultConfig()

	cfg.Handlers["sed"] = handlers.HandleSed
	cfg.Handlers["find"] = handlers.HandleFind
	cfg.Handlers["xargs"] = handlers.HandleXargs

	for _, name := range settings.ExtraCommands {
		cfg.Whitelist[name] = true
	}
	for _, name := range settings.RemoveCommands {
		delete(cfg.Whitelist, name)
	}

	if settings.Features.GitLocalWrites {
		cfg.ApplyGitLocalWrites()
	}
	if settings.Features.AwkSafeMode {
		cfg.ApplyAwkSafeMode()
		for _, name := range []string{"awk", "gawk", "mawk", "nawk"} {
			cfg.Handlers[name] = handlers.HandleAwk
		}
	}

	for exe, subs := range settings.SubcommandWhitelist {
		existing, ok := cfg.SubcommandWhitelist[exe]
		if !ok {
			existing = map[string]bool{}
			cfg.SubcommandWhitelist[exe] = existing
		}
		for _, sub := range subs {
			existing[sub] = true
		}
	}

	return cfg
}
