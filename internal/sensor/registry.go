package sensor

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/timeutil"
)

// ErrPinNotFound is returned when a named GPIO line is not registered.
var ErrPinNotFound = errors.New("gpio pin not found")

// InitHost loads the periph host drivers so GPIO lines become available in
// the registry. It must be called once before LookupPins.
func InitHost() error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("failed to initialise host drivers: %w", err)
	}
	for _, d := range state.Loaded {
		monitoring.Diagf("loaded driver %s", d)
	}
	for _, f := range state.Failed {
		monitoring.Diagf("driver %s failed: %v", f.D, f.Err)
	}
	return nil
}

// LookupPins resolves the trigger and echo lines by name.
func LookupPins(triggerName, echoName string) (gpio.PinIO, gpio.PinIO, error) {
	trigger := gpioreg.ByName(triggerName)
	if trigger == nil {
		return nil, nil, fmt.Errorf("trigger %q: %w", triggerName, ErrPinNotFound)
	}
	echo := gpioreg.ByName(echoName)
	if echo == nil {
		return nil, nil, fmt.Errorf("echo %q: %w", echoName, ErrPinNotFound)
	}
	return trigger, echo, nil
}

// OpenUltrasonic looks up the named pins and configures an Ultrasonic on
// them. InitHost must have been called.
func OpenUltrasonic(triggerName, echoName string, timing UltrasonicTiming, clock timeutil.Clock) (*Ultrasonic, error) {
	trigger, echo, err := LookupPins(triggerName, echoName)
	if err != nil {
		return nil, err
	}
	monitoring.Diagf("ultrasonic sensor on trigger=%s echo=%s", trigger, echo)
	return NewUltrasonic(trigger, echo, timing, clock)
}
