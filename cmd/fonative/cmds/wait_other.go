//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cmds

// Attach never succeeds here, there is nothing to wait for.
func waitStopped(pid int) error {
	return nil
}
