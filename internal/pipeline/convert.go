package pipeline

import (
	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/units"
)

// Converter turns raw samples into validated distances and keeps the
// running extremes of the accepted ones.
type Converter struct {
	flag     *Flag
	accept   units.Range
	extremes *Extremes
	in       <-chan Message[int]
	out      chan<- Message[units.Inches]
}

// NewConverter returns a Converter reading in and writing out. Run closes
// out.
func NewConverter(flag *Flag, accept units.Range, extremes *Extremes, in <-chan Message[int], out chan<- Message[units.Inches]) *Converter {
	return &Converter{
		flag:     flag,
		accept:   accept,
		extremes: extremes,
		in:       in,
		out:      out,
	}
}

// Run converts until the acquirer's end-of-stream arrives, then forwards
// its own.
func (c *Converter) Run() {
	defer close(c.out)

	draining := false
	for {
		if !draining && c.flag.IsSet() {
			draining = true
			monitoring.Diagf("converter draining")
		}

		msg, ok := <-c.in
		if !ok || msg.EOS {
			c.out <- EndOfStream[units.Inches]()
			monitoring.Diagf("converter stopped")
			return
		}

		c.out <- Data(c.Convert(msg.Value))
	}
}

// Convert maps a raw sample to a distance, or to units.InvalidDistance when
// it falls outside the accepted range. Accepted distances update the
// extremes.
func (c *Converter) Convert(raw int) units.Inches {
	d := c.accept.Validate(units.MicrosToInches(raw))
	if d.Valid() {
		c.extremes.Observe(d)
	} else {
		monitoring.Tracef("raw sample %dus out of range", raw)
	}
	return d
}
