//go:build linux

package console

import "golang.org/x/sys/unix"

// setNonCanonical turns off line buffering and echo but keeps signal keys
// and output processing, so Ctrl-C still interrupts.
func setNonCanonical(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	t.Lflag &^= unix.ICANON | unix.ECHO
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}
