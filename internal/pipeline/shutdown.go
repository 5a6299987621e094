package pipeline

import "sync"

// Flag is the shared shutdown flag. It starts false and, once set, stays
// set. The quit watcher is its only writer; stages read it once per
// iteration.
type Flag struct {
	mu  sync.Mutex
	set bool
}

// NewFlag returns an unset Flag.
func NewFlag() *Flag {
	return &Flag{}
}

// Set raises the flag. Further calls have no effect.
func (f *Flag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// IsSet reports whether the flag has been raised.
func (f *Flag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}
