package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bsmith/readonly-bash-hook/internal/config"
	"github.com/bsmith/readonly-bash-hook/internal/diagnostics"
	"github.com/bsmith/readonly-bash-hook/internal/fragment"
	"github.com/bsmith/readonly-bash-hook/internal/hookio"
	"github.com/bsmith/readonly-bash-hook/internal/orchestrator"
)

func runHook(cmd *cobra.Command, args []string) error {
	verbosity, enabled := diagnostics.VerbosityFromEnv()
	logger := diagnostics.NewLogger(resolveDebugLogPath(), verbosity)
	defer func() { _ = logger.Sync() }()

	in, ok := hookio.ParseInput(os.Stdin)
	if !ok {
		if enabled {
			logger.Debug("input not eligible for evaluation, exiting silently")
		}
		return nil
	}

	candidates := resolveSettingsCandidates()
	settings := config.Load(candidates)
	cfg := config.BuildEffectiveConfig(settings)

	decision := orchestrator.Decide(in.ToolInput.Command, cfg)

	if enabled {
		logger.Info("decision",
			diagnostics.RedactField("command", in.ToolInput.Command),
			zap.String("decision", decision.String()),
			zap.String("event", in.HookEventName),
		)
	}

	if decision != fragment.Approve {
		return nil
	}

	fmt.Println(string(hookio.RenderApproval(in.HookEventName)))
	return nil
}

func resolveSettingsCandidates() []string {
	if settingsPathOverride != "" {
		return []string{settingsPathOverride}
	}
	return config.DefaultCandidates()
}

func resolveDebugLogPath() string {
	if debugLogOverride != "" {
		return debugLogOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".claude", "readonly-bash-hook-debug.log")
}
