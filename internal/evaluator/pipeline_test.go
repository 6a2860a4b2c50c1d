package evaluator

import (
	"testing"

	"github.com/bsmith/readonly-bash-hook/internal/fragment"
)

func cmd(exe string, args ...string) fragment.Command {
	return fragment.New(exe, args, false)
}

func TestEvaluateWhitelist(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("ls", "-la"), cfg); got != fragment.Approve {
		t.Fatalf("ls -la: got %s, want APPROVE", got)
	}
}

func TestEvaluateNeverApprove(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("bash", "-c", "ls"), cfg); got != fragment.Reject {
		t.Fatalf("bash -c: got %s, want REJECT", got)
	}
}

func TestEvaluateOutputRedirectAlwaysRejects(t *testing.T) {
	cfg := DefaultConfig()
	c := fragment.New("ls", []string{"-la"}, true)
	if got := Evaluate(c, cfg); got != fragment.Reject {
		t.Fatalf("ls > file: got %s, want REJECT", got)
	}
}

func TestEvaluateDefaultRejectsUnknown(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("curl", "https://example.com"), cfg); got != fragment.Reject {
		t.Fatalf("curl: got %s, want REJECT", got)
	}
}

func TestEvaluateGitReadOnlySubcommand(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("git", "status"), cfg); got != fragment.Approve {
		t.Fatalf("git status: got %s, want APPROVE", got)
	}
	if got := Evaluate(cmd("git", "push"), cfg); got != fragment.Reject {
		t.Fatalf("git push: got %s, want REJECT", got)
	}
}

func TestEvaluateGitLocalWritesGated(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("git", "add", "."), cfg); got != fragment.Reject {
		t.Fatalf("git add before enabling local writes: got %s, want REJECT", got)
	}
	cfg.ApplyGitLocalWrites()
	if got := Evaluate(cmd("git", "add", "."), cfg); got != fragment.Approve {
		t.Fatalf("git add after enabling local writes: got %s, want APPROVE", got)
	}
}

func TestEvaluateGitGlobalScopeAlwaysRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyGitLocalWrites()
	if got := Evaluate(cmd("git", "config", "--global", "user.name", "x"), cfg); got != fragment.Reject {
		t.Fatalf("git config --global: got %s, want REJECT", got)
	}
}

func TestEvaluateWrapperEnvUnwraps(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("env", "FOO=bar", "ls"), cfg); got != fragment.Approve {
		t.Fatalf("env FOO=bar ls: got %s, want APPROVE", got)
	}
	if got := Evaluate(cmd("env", "FOO=bar", "bash"), cfg); got != fragment.Reject {
		t.Fatalf("env FOO=bar bash: got %s, want REJECT", got)
	}
}

func TestEvaluateWrapperCommandDashVApproves(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("command", "-v", "bash"), cfg); got != fragment.Approve {
		t.Fatalf("command -v bash: got %s, want APPROVE", got)
	}
}

func TestEvaluateAwkSafeModeTogglesNeverApprove(t *testing.T) {
	cfg := DefaultConfig()
	if got := Evaluate(cmd("awk", "{print}"), cfg); got != fragment.Reject {
		t.Fatalf("awk before safe mode: got %s, want REJECT", got)
	}
	cfg.ApplyAwkSafeMode()
	cfg.Handlers["awk"] = func(args []string, cfg *Config, eval Evaluator) fragment.Decision {
		return fragment.Pass
	}
	if got := Evaluate(cmd("awk", "{print}"), cfg); got != fragment.Approve {
		t.Fatalf("awk after safe mode with handler: got %s, want APPROVE", got)
	}
}
