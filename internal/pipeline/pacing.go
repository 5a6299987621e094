package pipeline

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// pacingWindow is the number of recent heartbeats kept for PacingStats.
const pacingWindow = 256

// PacingStats summarises how the acquirer kept its heartbeat.
type PacingStats struct {
	Heartbeats int
	// Overruns counts heartbeats whose work took the whole period or more,
	// so no sleep followed.
	Overruns int
	// MeanWork and StdDevWork describe the time spent sampling and sending
	// over the most recent heartbeats.
	MeanWork   time.Duration
	StdDevWork time.Duration
}

// pacing accumulates heartbeat work times in a fixed ring.
type pacing struct {
	heartbeats int
	overruns   int
	work       [pacingWindow]float64
}

func (p *pacing) record(work time.Duration, overrun bool) {
	p.work[p.heartbeats%pacingWindow] = float64(work)
	p.heartbeats++
	if overrun {
		p.overruns++
	}
}

func (p *pacing) stats() PacingStats {
	s := PacingStats{Heartbeats: p.heartbeats, Overruns: p.overruns}
	n := min(p.heartbeats, pacingWindow)
	if n == 0 {
		return s
	}
	if n == 1 {
		s.MeanWork = time.Duration(p.work[0])
		return s
	}
	mean, std := stat.MeanStdDev(p.work[:n], nil)
	s.MeanWork = time.Duration(mean)
	s.StdDevWork = time.Duration(std)
	return s
}
