//go:build linux

package platform

import (
	"context"
	"os/exec"
)

func inhibitCommand(ctx context.Context, keepDisplayOn bool) *exec.Cmd {
	what := "sleep"
	if keepDisplayOn {
		what = "idle:sleep"
	}
	return exec.CommandContext(ctx, "systemd-inhibit",
		"--what="+what,
		"--who=CaffeineTake",
		"--why=Keep system awake",
		"--mode=block",
		"sleep", "infinity",
	)
}
