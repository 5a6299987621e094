package sensor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/banshee-data/rangefinder/internal/timeutil"
)

func TestStubSequence(t *testing.T) {
	s := NewStub()

	var got []int
	for i := 0; i < 4; i++ {
		v, err := s.Sample()
		require.NoError(t, err)
		got = append(got, v)
	}

	assert.Equal(t, []int{1010, 1020, 1030, 1040}, got)
}

// recordingTrigger remembers every level written to it.
type recordingTrigger struct {
	mu     sync.Mutex
	levels []gpio.Level
	err    error
}

func (r *recordingTrigger) Out(l gpio.Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.levels = append(r.levels, l)
	return nil
}

// scriptedEcho reads low for lowReads polls, then high for highReads polls,
// then low again. Every poll advances the clock by step.
type scriptedEcho struct {
	clock     *timeutil.MockClock
	step      time.Duration
	lowReads  int
	highReads int
	reads     int
	pull      gpio.Pull
}

func (e *scriptedEcho) In(pull gpio.Pull, _ gpio.Edge) error {
	e.pull = pull
	return nil
}

func (e *scriptedEcho) Read() gpio.Level {
	i := e.reads
	e.reads++
	e.clock.Advance(e.step)
	return i >= e.lowReads && i < e.lowReads+e.highReads
}

func TestUltrasonicSample(t *testing.T) {
	clock := timeutil.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	trigger := &recordingTrigger{}
	echo := &scriptedEcho{clock: clock, step: 10 * time.Microsecond, lowReads: 5, highReads: 100}
	timing := UltrasonicTiming{Pulse: 10 * time.Microsecond, Settle: 2 * time.Microsecond}

	u, err := NewUltrasonic(trigger, echo, timing, clock)
	require.NoError(t, err)
	assert.Equal(t, gpio.PullDown, echo.pull)

	micros, err := u.Sample()
	require.NoError(t, err)

	// the timer starts on the first high read, so the remaining high reads
	// plus the closing low read make up the pulse
	assert.Equal(t, 1000, micros)
	assert.Equal(t, []gpio.Level{gpio.Low, gpio.High, gpio.Low}, trigger.levels)
	assert.Equal(t, []time.Duration{timing.Pulse, timing.Settle}, clock.Sleeps())
	assert.Equal(t, 106, echo.reads)
}

func TestUltrasonicTriggerFailure(t *testing.T) {
	clock := timeutil.NewMockClock(time.Now())
	trigger := &recordingTrigger{}
	echo := &scriptedEcho{clock: clock}

	u, err := NewUltrasonic(trigger, echo, UltrasonicTiming{}, clock)
	require.NoError(t, err)

	trigger.err = errors.New("bus fault")
	_, err = u.Sample()
	require.Error(t, err)
	assert.Zero(t, echo.reads, "echo must not be polled when the trigger fails")
}

func TestNewUltrasonicConfigureFailure(t *testing.T) {
	clock := timeutil.NewMockClock(time.Now())
	_, err := NewUltrasonic(&recordingTrigger{err: errors.New("busy")}, &scriptedEcho{clock: clock}, UltrasonicTiming{}, clock)
	assert.Error(t, err)
}

func TestLookupPins(t *testing.T) {
	trigger := registerTestPin(t, "RF_TEST_TRIG", 9123)
	registerTestPin(t, "RF_TEST_ECHO", 9124)

	gotTrigger, gotEcho, err := LookupPins("RF_TEST_TRIG", "RF_TEST_ECHO")
	require.NoError(t, err)
	assert.Equal(t, "RF_TEST_TRIG", gotTrigger.Name())
	assert.Equal(t, "RF_TEST_ECHO", gotEcho.Name())

	u, err := OpenUltrasonic("RF_TEST_TRIG", "RF_TEST_ECHO", UltrasonicTiming{}, timeutil.RealClock{})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, gpio.Low, trigger.Read())
}

// registerTestPin registers a fake line once per test binary.
func registerTestPin(t *testing.T, name string, num int) *gpiotest.Pin {
	t.Helper()
	if p, ok := gpioreg.ByName(name).(*gpiotest.Pin); ok {
		return p
	}
	p := &gpiotest.Pin{N: name, Num: num}
	require.NoError(t, gpioreg.Register(p))
	return p
}

func TestLookupPinsMissing(t *testing.T) {
	_, _, err := LookupPins("RF_NO_SUCH_TRIG", "RF_NO_SUCH_ECHO")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPinNotFound)
}
