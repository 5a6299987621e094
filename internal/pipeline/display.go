package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/timeutil"
	"github.com/banshee-data/rangefinder/internal/units"
)

const (
	// Header is written once before the first frame.
	Header = "Measurement in inches:"

	flashOnGlyph  = "*"
	flashOffGlyph = " "
)

// DisplayState is the render stage's private view of the line.
type DisplayState struct {
	// Text is the line drawn on every iteration.
	Text string
	// Current is the last distance received, or units.InvalidDistance.
	Current units.Inches
	// FlashOn is true while the placeholder glyph is showing.
	FlashOn bool
	// LastFlip is when FlashOn last changed; the zero value means never.
	LastFlip time.Time
	// Flips counts placeholder toggles.
	Flips int
}

// Display draws distances on a single line, blinking a placeholder while no
// valid distance is current.
type Display struct {
	flag  *Flag
	clock timeutil.Clock
	half  time.Duration
	width int
	in    <-chan Message[units.Inches]
	w     io.Writer

	state    DisplayState
	writeErr error
}

// NewDisplay returns a Display that blinks with the given full flash period
// and pads each frame to width columns.
func NewDisplay(flag *Flag, clock timeutil.Clock, flashPeriod time.Duration, width int, in <-chan Message[units.Inches], w io.Writer) *Display {
	return &Display{
		flag:  flag,
		clock: clock,
		half:  flashPeriod / 2,
		width: width,
		in:    in,
		w:     w,
		state: DisplayState{Current: units.InvalidDistance},
	}
}

type receiveResult int

const (
	received receiveResult = iota
	timedOut
	endOfStream
)

// Run draws until the converter's end-of-stream arrives.
func (d *Display) Run() {
	d.write("\r" + Header + "\r\n")

	draining := false
	for {
		if !draining && d.flag.IsSet() {
			draining = true
			monitoring.Diagf("display draining")
		}

		v, res := d.receive()
		switch res {
		case endOfStream:
			monitoring.Diagf("display stopped after %d placeholder flips", d.state.Flips)
			return
		case received:
			d.accept(v)
		case timedOut:
		}

		d.flash()
		d.render()
	}
}

// receive waits for one distance until now + half a flash period.
func (d *Display) receive() (units.Inches, receiveResult) {
	deadline := timeutil.Deadline(d.clock, d.half)
	timer := d.clock.NewTimer(d.clock.Until(deadline.Time()))
	defer timer.Stop()

	select {
	case msg, ok := <-d.in:
		if !ok || msg.EOS {
			return 0, endOfStream
		}
		return msg.Value, received
	case <-timer.C():
		return 0, timedOut
	}
}

// accept makes v current. A valid distance replaces the text; an invalid
// one leaves the text for the flash logic.
func (d *Display) accept(v units.Inches) {
	d.state.Current = v
	if v.Valid() {
		d.state.Text = v.String()
	}
}

// flash toggles the placeholder when no valid distance is current and at
// least half a period has passed since the previous toggle.
func (d *Display) flash() {
	if d.state.Current.Valid() {
		return
	}
	now := d.clock.Now()
	if !d.state.LastFlip.IsZero() && now.Sub(d.state.LastFlip) <= d.half {
		return
	}

	d.state.FlashOn = !d.state.FlashOn
	if d.state.FlashOn {
		d.state.Text = flashOnGlyph
	} else {
		d.state.Text = flashOffGlyph
	}
	d.state.LastFlip = now
	d.state.Flips++
}

// render redraws the whole line in place.
func (d *Display) render() {
	d.write(fmt.Sprintf("\r%*s\r%s", d.width, "", d.state.Text))
}

func (d *Display) write(s string) {
	if _, err := io.WriteString(d.w, s); err != nil && d.writeErr == nil {
		d.writeErr = err
		monitoring.Opsf("display write failed: %v", err)
	}
}

// State returns the display state. It is only meaningful once Run has
// returned.
func (d *Display) State() DisplayState {
	return d.state
}
