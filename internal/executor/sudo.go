package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// ErrNoPrivileges is returned when an operation requires root but cannot elevate.
var ErrNoPrivileges = errors.New("this operation requires root privileges, but neither running as root nor sudo is available")

// IsRoot returns true if the current process is running as root.
func IsRoot() bool {
	return isRoot()
}

// HasSudo returns true if sudo is available on the system.
func HasSudo() bool {
	return hasSudo()
}

// CanElevate returns true if the process can elevate privileges.
func CanElevate() bool {
	return isRoot() || hasSudo()
}

// SudoCached reports whether sudo can run without prompting for a password.
func SudoCached(ctx context.Context) bool {
	if isRoot() {
		return true
	}
	if !hasSudo() {
		return false
	}
	return exec.CommandContext(ctx, "sudo", "-n", "true").Run() == nil
}

func isRoot() bool {
	return os.Geteuid() == 0
}

func hasSudo() bool {
	_, err := exec.LookPath("sudo")
	return err == nil
}
