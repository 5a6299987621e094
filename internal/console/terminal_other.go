//go:build !linux

package console

import "golang.org/x/term"

// setNonCanonical falls back to raw mode where termios is not reachable
// through x/sys. Signal keys are then delivered as input.
func setNonCanonical(fd int) error {
	_, err := term.MakeRaw(fd)
	return err
}
