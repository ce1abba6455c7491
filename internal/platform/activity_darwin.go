//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

func anyProcessRunning(watched []string) (bool, error) {
	output, err := exec.Command("ps", "-Axo", "comm=").Output()
	if err != nil {
		return false, fmt.Errorf("ps: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		name := filepath.Base(strings.TrimSpace(line))
		if anyNameMatches(name, watched) {
			return true, nil
		}
	}
	return false, nil
}
