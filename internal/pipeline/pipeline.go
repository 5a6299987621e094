package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/rangefinder/internal/config"
	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/sensor"
	"github.com/banshee-data/rangefinder/internal/timeutil"
	"github.com/banshee-data/rangefinder/internal/units"
)

// Pipeline wires the quit watcher and the three stages together.
type Pipeline struct {
	cfg      config.Config
	sensor   sensor.Sensor
	clock    timeutil.Clock
	input    io.Reader
	output   io.Writer
	flag     *Flag
	extremes *Extremes
}

// New validates cfg and returns a Pipeline sampling s, watching input for
// the quit key and drawing on output.
func New(cfg config.Config, s sensor.Sensor, clock timeutil.Clock, input io.Reader, output io.Writer) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	return &Pipeline{
		cfg:      cfg,
		sensor:   s,
		clock:    clock,
		input:    input,
		output:   output,
		flag:     NewFlag(),
		extremes: NewExtremes(),
	}, nil
}

// Report summarises a finished run.
type Report struct {
	RunID    uuid.UUID
	Min      units.Inches
	Max      units.Inches
	Accepted bool
	Pacing   PacingStats
	Duration time.Duration
}

func (r Report) String() string {
	if !r.Accepted {
		return "no accepted measurements"
	}
	return fmt.Sprintf("min=%d max=%d", r.Min, r.Max)
}

// Run waits for the operator to press a key, then starts every stage and
// returns once the display has drained. ctx ending is treated like the quit
// key; if it ends before the start key nothing is sampled.
func (p *Pipeline) Run(ctx context.Context) Report {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runID := uuid.New()
	started := p.clock.Now()

	keys := ReadKeys(ctx, p.input)
	if err := WaitForStart(ctx, keys); err != nil {
		monitoring.Diagf("run %s abandoned before start: %v", runID, err)
		return p.report(runID, started, PacingStats{})
	}
	monitoring.Diagf("run %s started", runID)

	raw := make(chan Message[int], p.cfg.ChannelCapacity)
	dist := make(chan Message[units.Inches], p.cfg.ChannelCapacity)

	quit := NewQuitWatcher(keys, p.cfg.QuitKey, p.flag)
	acq := NewAcquirer(p.sensor, p.flag, p.clock, p.cfg.HeartbeatPeriod, raw)
	conv := NewConverter(p.flag, p.cfg.Range, p.extremes, raw, dist)
	disp := NewDisplay(p.flag, p.clock, p.cfg.FlashPeriod, p.cfg.LineWidth, dist, p.output)

	var wg sync.WaitGroup
	for _, run := range []func(){
		func() { quit.Run(ctx) },
		acq.Run,
		conv.Run,
		disp.Run,
	} {
		run := run
		wg.Add(1)
		go func() {
			defer wg.Done()
			run()
		}()
	}
	wg.Wait()

	report := p.report(runID, started, acq.Stats())
	monitoring.Diagf("run %s finished: %s", runID, report)
	return report
}

func (p *Pipeline) report(runID uuid.UUID, started time.Time, pacing PacingStats) Report {
	lo, hi, ok := p.extremes.Snapshot()
	return Report{
		RunID:    runID,
		Min:      lo,
		Max:      hi,
		Accepted: ok,
		Pacing:   pacing,
		Duration: p.clock.Since(started),
	}
}
