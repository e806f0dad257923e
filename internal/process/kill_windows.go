//go:build windows

// Package process terminates browser process trees left behind by the
// headless renderer.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup kills a process and its children with taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort: the launcher's own Kill runs afterwards.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
