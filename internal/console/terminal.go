package console

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/banshee-data/rangefinder/internal/monitoring"
)

// Terminal is a Console over the process's terminal. While open, input is
// delivered a byte at a time without echo so a single keypress reaches the
// quit watcher.
type Terminal struct {
	in      *os.File
	out     *os.File
	restore func() error
}

// OpenTerminal prepares in for single-byte reads. When in is not a terminal
// (a pipe or /dev/null) it is used as is.
func OpenTerminal(in, out *os.File) (*Terminal, error) {
	t := &Terminal{in: in, out: out}

	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		monitoring.Diagf("%s is not a terminal; reading it unchanged", in.Name())
		return t, nil
	}

	state, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read terminal state: %w", err)
	}
	if err := setNonCanonical(fd); err != nil {
		return nil, fmt.Errorf("failed to set terminal mode: %w", err)
	}
	t.restore = func() error { return term.Restore(fd, state) }
	return t, nil
}

func (t *Terminal) Read(p []byte) (int, error)  { return t.in.Read(p) }
func (t *Terminal) Write(p []byte) (int, error) { return t.out.Write(p) }

// Close restores the terminal mode. The files themselves stay open.
func (t *Terminal) Close() error {
	if t.restore == nil {
		return nil
	}
	restore := t.restore
	t.restore = nil
	return restore()
}
