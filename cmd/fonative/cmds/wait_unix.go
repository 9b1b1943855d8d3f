//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cmds

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// waitStopped waits for the attach stop of pid.
func waitStopped(pid int) error {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return fmt.Errorf("wait for process %d: %w", pid, err)
		}
		break
	}
	if !ws.Stopped() {
		return fmt.Errorf("process %d did not stop, status %#x", pid, uint32(ws))
	}
	return nil
}
