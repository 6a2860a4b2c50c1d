// Command readonly-bash-hook is the PreToolUse/PermissionRequest hook
// binary: one stdin document in, at most one stdout document out, exit 0.
package main

import (
	"github.com/bsmith/readonly-bash-hook/internal/cli"
)

func main() {
	cli.Execute()
}
