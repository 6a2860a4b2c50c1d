// Package cli wires the single Cobra command this hook exposes: read one
// hook payload from stdin, decide, write at most one approval document.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bsmith/readonly-bash-hook/internal/diagnostics"
)

var (
	settingsPathOverride string
	debugLogOverride     string
)

var rootCmd = &cobra.Command{
	Use:   "readonly-bash-hook",
	Short: "PreToolUse/PermissionRequest hook that auto-approves read-only shell commands",
	Long: `readonly-bash-hook reads one hook payload from standard input, parses
the Bash command it carries, and decides whether the command is safe to
auto-approve without asking a human. It never hard-denies: every command it
doesn't recognize as read-only falls through to the normal permission flow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHook,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPathOverride, "settings", "", "path to settings.json, skipping project/user discovery")
	rootCmd.PersistentFlags().StringVar(&debugLogOverride, "debug-log", "", "override the diagnostics log file path")
}

// Execute runs the root command and recovers from any panic, treating it as
// a fallthrough per the no-output-means-defer-to-human contract. It returns
// nothing and never exits the process; the caller exits 0 unconditionally.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			verbosity, _ := diagnostics.VerbosityFromEnv()
			logger := diagnostics.NewLogger(resolveDebugLogPath(), verbosity)
			logger.Error("recovered panic, falling through", zap.Any("panic", r))
			_ = logger.Sync()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
