package pipeline

import (
	"context"
	"errors"
	"io"
	"unicode"

	"github.com/banshee-data/rangefinder/internal/monitoring"
)

// Keys delivers operator input one byte at a time. The start gate and the
// quit watcher share one Keys so every keystroke reaches exactly one of
// them.
type Keys struct {
	bytes <-chan byte
	done  <-chan struct{}
	err   error
}

// ReadKeys starts reading r in its own goroutine. The goroutine stops when
// r fails or ends, and otherwise at the next byte once ctx is done.
func ReadKeys(ctx context.Context, r io.Reader) *Keys {
	bytes := make(chan byte)
	done := make(chan struct{})
	k := &Keys{bytes: bytes, done: done}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n == 1 {
				select {
				case bytes <- buf[0]:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				k.err = err
				close(done)
				return
			}
		}
	}()
	return k
}

func logInputEnded(err error) {
	if errors.Is(err, io.EOF) {
		monitoring.Diagf("operator input closed")
	} else {
		monitoring.Opsf("operator input failed: %v", err)
	}
}

// WaitForStart blocks until any key is read, consuming it. When input has
// already ended there is no operator to wait for and it returns nil at
// once. It returns ctx.Err() if ctx ends first.
func WaitForStart(ctx context.Context, keys *Keys) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-keys.bytes:
		monitoring.Diagf("start key pressed")
		return nil
	case <-keys.done:
		logInputEnded(keys.err)
		return nil
	}
}

// QuitWatcher raises the shutdown flag when the quit key is typed, in
// either case. It is the only writer of the flag.
type QuitWatcher struct {
	keys *Keys
	key  byte
	flag *Flag
}

// NewQuitWatcher returns a QuitWatcher reading keys.
func NewQuitWatcher(keys *Keys, key byte, flag *Flag) *QuitWatcher {
	return &QuitWatcher{keys: keys, key: key, flag: flag}
}

// Run blocks until the quit key is read or ctx is done, then sets the flag.
// Operator input ending early is logged and leaves ctx as the only way out.
func (q *QuitWatcher) Run(ctx context.Context) {
	done := q.keys.done
	for {
		select {
		case <-ctx.Done():
			monitoring.Diagf("quit watcher: %v", ctx.Err())
			q.flag.Set()
			return

		case <-done:
			logInputEnded(q.keys.err)
			monitoring.Diagf("waiting for signal")
			done = nil

		case b := <-q.keys.bytes:
			if q.isQuit(b) {
				monitoring.Diagf("quit key pressed")
				q.flag.Set()
				return
			}
		}
	}
}

func (q *QuitWatcher) isQuit(b byte) bool {
	return unicode.ToLower(rune(b)) == unicode.ToLower(rune(q.key))
}
