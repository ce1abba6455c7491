//go:build darwin

package platform

import (
	"context"
	"os/exec"
)

func inhibitCommand(ctx context.Context, keepDisplayOn bool) *exec.Cmd {
	args := []string{"-i"}
	if keepDisplayOn {
		args = append(args, "-d")
	}
	return exec.CommandContext(ctx, "caffeinate", args...)
}
