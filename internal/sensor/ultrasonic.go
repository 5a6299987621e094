package sensor

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/banshee-data/rangefinder/internal/timeutil"
)

// TriggerPin is the output line that starts a measurement. gpio.PinOut
// satisfies it.
type TriggerPin interface {
	Out(l gpio.Level) error
}

// EchoPin is the input line that stays high for the echo's round trip.
// gpio.PinIn satisfies it.
type EchoPin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
}

// UltrasonicTiming holds the trigger pulse width and the wait between
// dropping the trigger and polling the echo line.
type UltrasonicTiming struct {
	Pulse  time.Duration
	Settle time.Duration
}

// Ultrasonic drives a trigger/echo rangefinder such as the HC-SR04.
type Ultrasonic struct {
	trigger TriggerPin
	echo    EchoPin
	clock   timeutil.Clock
	timing  UltrasonicTiming
}

// NewUltrasonic configures pin directions once (trigger as a low output,
// echo as a pulled-down input) and returns the sensor. Afterwards only the
// trigger is written and only the echo is read.
func NewUltrasonic(trigger TriggerPin, echo EchoPin, timing UltrasonicTiming, clock timeutil.Clock) (*Ultrasonic, error) {
	if err := trigger.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to configure trigger pin: %w", err)
	}
	if err := echo.In(gpio.PullDown, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("failed to configure echo pin: %w", err)
	}
	return &Ultrasonic{
		trigger: trigger,
		echo:    echo,
		clock:   clock,
		timing:  timing,
	}, nil
}

// Sample fires one trigger pulse and returns the echo's high time in
// microseconds. It blocks until both echo edges have been seen; a sensor
// that never answers stalls the caller.
func (u *Ultrasonic) Sample() (int, error) {
	if err := u.trigger.Out(gpio.High); err != nil {
		return 0, fmt.Errorf("failed to raise trigger: %w", err)
	}
	u.clock.Sleep(u.timing.Pulse)
	if err := u.trigger.Out(gpio.Low); err != nil {
		return 0, fmt.Errorf("failed to drop trigger: %w", err)
	}
	u.clock.Sleep(u.timing.Settle)

	WaitLevel(u.echo, gpio.High)
	start := u.clock.Now()
	WaitLevel(u.echo, gpio.Low)

	return int(u.clock.Since(start).Microseconds()), nil
}

// WaitLevel busy-polls pin until it reads level. There is no timeout and no
// yielding: edge timing is the measurement, so the loop must not sleep.
func WaitLevel(pin EchoPin, level gpio.Level) {
	for pin.Read() != level {
	}
}
