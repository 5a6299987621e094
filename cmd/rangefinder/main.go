package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/rangefinder/internal/config"
	"github.com/banshee-data/rangefinder/internal/console"
	"github.com/banshee-data/rangefinder/internal/monitoring"
	"github.com/banshee-data/rangefinder/internal/pipeline"
	"github.com/banshee-data/rangefinder/internal/sensor"
	"github.com/banshee-data/rangefinder/internal/timeutil"
	"github.com/banshee-data/rangefinder/internal/version"
)

var (
	devMode     = flag.Bool("dev", false, "Use the synthetic sensor instead of the GPIO rangefinder")
	consolePath = flag.String("console", "", "Serial device for the operator console (default: this terminal)")
	debug       = flag.Bool("debug", false, "Log stage lifecycle and per-sample telemetry to stderr")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func openSensor(dev bool, clock timeutil.Clock) (sensor.Sensor, error) {
	if dev {
		monitoring.Diagf("using synthetic sensor")
		return sensor.NewStub(), nil
	}
	if err := sensor.InitHost(); err != nil {
		return nil, err
	}
	timing := sensor.UltrasonicTiming{Pulse: config.TriggerPulse, Settle: config.SettleInterval}
	return sensor.OpenUltrasonic(config.TriggerPin, config.EchoPin, timing, clock)
}

func openConsole(path string) (console.Console, error) {
	if path == "" {
		return console.OpenTerminal(os.Stdin, os.Stdout)
	}
	return console.OpenSerial(path, console.SerialOptions{BaudRate: config.ConsoleBaudRate})
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *debug {
		monitoring.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
	}
	monitoring.Diagf("starting %s", version.String())

	cfg := config.Defaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	clock := timeutil.RealClock{}
	s, err := openSensor(*devMode, clock)
	if err != nil {
		log.Fatalf("failed to open sensor: %v", err)
	}

	c, err := openConsole(*consolePath)
	if err != nil {
		log.Fatalf("failed to open console: %v", err)
	}

	p, err := pipeline.New(cfg, s, clock, c, c)
	if err != nil {
		c.Close()
		log.Fatalf("failed to build pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	fmt.Fprint(c, "Press any key to start measurements, q to stop.\r\n")
	report := p.Run(ctx)
	stop()

	fmt.Fprintf(c, "\r\nDone. %s\r\n", report)
	if err := c.Close(); err != nil {
		monitoring.Opsf("failed to restore console: %v", err)
	}

	monitoring.Diagf("run %s: %d heartbeats, %d overruns, work mean %v sd %v, took %v",
		report.RunID, report.Pacing.Heartbeats, report.Pacing.Overruns,
		report.Pacing.MeanWork, report.Pacing.StdDevWork, report.Duration)
}
