package config

import (
	"fmt"
	"time"

	"github.com/banshee-data/rangefinder/internal/units"
)

// Compile-time defaults. These are the only knobs; there is no config file.
const (
	// HeartbeatPeriod is the fixed interval at which the sensor is sampled.
	HeartbeatPeriod = 100 * time.Millisecond

	// FlashPeriod is the full on/off cycle of the stale-data placeholder.
	FlashPeriod = time.Second

	// ChannelCapacity bounds each inter-stage channel.
	ChannelCapacity = 10

	// UpperBound is the exclusive upper limit of accepted distances.
	UpperBound units.Inches = 30

	// LowerBound is the inclusive lower limit of accepted distances.
	LowerBound units.Inches = 0

	// LineWidth is the widest line the display ever draws; each frame is
	// preceded by this many blanks to erase the previous one.
	LineWidth = 80

	// QuitKey stops the run when typed on the operator console, in either case.
	QuitKey = 'q'

	// TriggerPin and EchoPin name the sensor's GPIO lines in the periph
	// registry.
	TriggerPin = "GPIO23"
	EchoPin    = "GPIO24"

	// TriggerPulse is how long the trigger line is held high.
	TriggerPulse = 10 * time.Microsecond

	// SettleInterval is the wait between dropping the trigger and polling
	// the echo line.
	SettleInterval = 2 * time.Microsecond

	// ConsoleBaudRate is used when the operator console is a serial device.
	ConsoleBaudRate = 115200
)

// Config carries the pipeline settings. Tests shorten the periods and move
// the bounds; production always runs with Defaults.
type Config struct {
	HeartbeatPeriod time.Duration
	FlashPeriod     time.Duration
	ChannelCapacity int
	Range           units.Range
	LineWidth       int
	QuitKey         byte
}

// Defaults returns a Config populated from the compile-time constants.
func Defaults() Config {
	return Config{
		HeartbeatPeriod: HeartbeatPeriod,
		FlashPeriod:     FlashPeriod,
		ChannelCapacity: ChannelCapacity,
		Range:           units.Range{Min: LowerBound, Max: UpperBound},
		LineWidth:       LineWidth,
		QuitKey:         QuitKey,
	}
}

// Validate checks that the configuration can drive the pipeline.
func (c Config) Validate() error {
	if c.HeartbeatPeriod <= 0 {
		return fmt.Errorf("heartbeat period must be positive, got %v", c.HeartbeatPeriod)
	}
	if c.FlashPeriod < 2*time.Nanosecond {
		return fmt.Errorf("flash period must be at least 2ns, got %v", c.FlashPeriod)
	}
	if c.ChannelCapacity < 1 {
		return fmt.Errorf("channel capacity must be at least 1, got %d", c.ChannelCapacity)
	}
	if c.Range.Min < 0 {
		return fmt.Errorf("lower bound must be non-negative, got %d", c.Range.Min)
	}
	if c.Range.Max <= c.Range.Min {
		return fmt.Errorf("upper bound %d must exceed lower bound %d", c.Range.Max, c.Range.Min)
	}
	if c.LineWidth < 1 {
		return fmt.Errorf("line width must be positive, got %d", c.LineWidth)
	}
	if c.QuitKey == 0 {
		return fmt.Errorf("quit key must be set")
	}
	return nil
}
