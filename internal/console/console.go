// Package console provides the operator console: the byte source the quit
// watcher reads keystrokes from and the surface the display draws on. It is
// either the controlling terminal or a serial line.
package console

import "io"

// Console is an operator console. Close restores any state changed when it
// was opened.
type Console interface {
	io.Reader
	io.Writer
	io.Closer
}
