//go:build !windows

// Package process terminates the headless browser started for PDF export.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, so the
// browser's renderer and GPU children exit with it. Errors are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
