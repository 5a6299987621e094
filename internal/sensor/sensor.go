// Package sensor provides the raw time-of-flight sources sampled once per
// heartbeat: a deterministic counter for running without hardware, and an
// ultrasonic rangefinder driven over two GPIO lines.
package sensor

// Sensor produces one raw time-of-flight sample, in microseconds, per call.
type Sensor interface {
	Sample() (int, error)
}

const (
	// StubSeed is the counter value before the first Stub sample.
	StubSeed = 1000
	// StubStep is added to the counter on every Stub sample.
	StubStep = 10
)

// Stub is a synthetic Sensor that counts up from StubSeed by StubStep. The
// first sample is StubSeed+StubStep. It is not safe for concurrent use; the
// acquisition stage is its only caller.
type Stub struct {
	last int
}

// NewStub returns a Stub at its seed value.
func NewStub() *Stub {
	return &Stub{last: StubSeed}
}

// Sample advances the counter and returns it.
func (s *Stub) Sample() (int, error) {
	s.last += StubStep
	return s.last, nil
}
