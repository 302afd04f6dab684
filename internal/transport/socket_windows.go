//go:build windows

package transport

import "syscall"

// Windows' SO_REUSEADDR semantics differ enough from POSIX (it permits
// silently stealing a bound port) that we leave the socket at its defaults
// rather than reapply the Unix tuning here.
func platformControl(_, _ string, _ syscall.RawConn) error {
	return nil
}
