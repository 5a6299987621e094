package pipeline

import (
	"runtime"
	"time"

	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/sensor"
	"github.com/banshee-data/rangefinder/internal/timeutil"
)

// Acquirer samples the sensor once per heartbeat and sends each raw sample
// downstream.
type Acquirer struct {
	sensor sensor.Sensor
	flag   *Flag
	clock  timeutil.Clock
	period time.Duration
	out    chan<- Message[int]
	pacing pacing

	// failures counts consecutive failed samples.
	failures int
}

// NewAcquirer returns an Acquirer that writes to out. Run closes out.
func NewAcquirer(s sensor.Sensor, flag *Flag, clock timeutil.Clock, period time.Duration, out chan<- Message[int]) *Acquirer {
	return &Acquirer{
		sensor: s,
		flag:   flag,
		clock:  clock,
		period: period,
		out:    out,
	}
}

// Run samples until it observes the shutdown flag at the top of a
// heartbeat. That heartbeat still samples, sends and paces; end-of-stream
// follows it.
func (a *Acquirer) Run() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(a.out)

	for {
		start := timeutil.FromTime(a.clock.Now())
		last := a.flag.IsSet()

		a.heartbeat()

		now := timeutil.FromTime(a.clock.Now())
		work, _ := timeutil.Sub(now, start)
		remaining, overrun := timeutil.Sub(start+timeutil.TimePoint(a.period), now)
		overrun = overrun || remaining == 0
		a.pacing.record(work, overrun)
		if !overrun {
			a.clock.Sleep(remaining)
		}

		if last {
			a.out <- EndOfStream[int]()
			monitoring.Diagf("acquirer stopped after %d heartbeats", a.pacing.heartbeats)
			return
		}
	}
}

// heartbeat takes one sample and sends it. A failed sample sends nothing
// for this heartbeat. Only the first failure of a run of failures and the
// recovery that ends it reach the ops log.
func (a *Acquirer) heartbeat() {
	raw, err := a.sensor.Sample()
	if err != nil {
		a.failures++
		if a.failures == 1 {
			monitoring.Opsf("sensor sample failed: %v", err)
		} else {
			monitoring.Tracef("sensor sample failed (%d in a row): %v", a.failures, err)
		}
		return
	}
	if a.failures > 0 {
		monitoring.Opsf("sensor recovered after %d failed samples", a.failures)
		a.failures = 0
	}
	monitoring.Tracef("raw sample %dus", raw)
	a.out <- Data(raw)
}

// Stats reports heartbeat pacing. It is only meaningful once Run has
// returned.
func (a *Acquirer) Stats() PacingStats {
	return a.pacing.stats()
}
