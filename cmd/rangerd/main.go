// Command rangerd is the sketch-equivalent entry point: it wires the
// clock, HAL, scheduler, pin monitor, and logger into a running HC-SR04
// ranging firmware, the same role main()/setup()/loop() play in the
// original Arduino sketch.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/hal"
	"github.com/fernhollow/rangerd/internal/logging"
	"github.com/fernhollow/rangerd/pinmonitor"
	"github.com/fernhollow/rangerd/scheduler"
	"github.com/fernhollow/rangerd/sensor/hcsr04"
	"github.com/fernhollow/rangerd/serial"
	telemlog "github.com/fernhollow/rangerd/telemetry/log"
)

func main() {
	var (
		ttyPath     = flag.String("tty", "/dev/ttyUSB0", "serial device to stream readings and logs over")
		baud        = flag.Int("baud", 115200, "serial baud rate")
		trigPin     = flag.Uint("trig-pin", 9, "HC-SR04 trig pin")
		echoPin     = flag.Uint("echo-pin", 10, "HC-SR04 echo pin")
		pollUsec    = flag.Uint("poll-usec", uint(hcsr04.DefaultPollPeriod), "echo pin poll period in microseconds")
		verbose     = flag.Bool("v", false, "verbose diagnostics")
		binaryLog   = flag.Bool("binary", false, "stream logs as length-prefixed borsh frames instead of text")
		metricsAddr = flag.String("metrics-addr", "", "if set, serve Prometheus metrics on this address")
	)
	flag.Parse()

	logConfig := logging.DefaultConfig()
	if *verbose {
		logConfig.Level = logging.LevelDebug
	}
	diag := logging.NewLogger(logConfig)

	clk := clock.NewHardware()
	hw := hal.NewHardware()
	schedMetrics := scheduler.NewMetrics()
	pinMetrics := pinmonitor.NewMetrics()
	schedCfg := scheduler.DefaultConfig()
	schedCfg.Logger = diag
	schedCfg.Metrics = schedMetrics
	sched := scheduler.New(clk, schedCfg)
	ex := scheduler.NewExecutor(sched)
	mon := pinmonitor.New(hw, clk, sched).WithMetrics(pinMetrics)

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		if err := schedMetrics.Register(reg); err != nil {
			log.Fatalf("rangerd: registering scheduler metrics: %v", err)
		}
		if err := pinMetrics.Register(reg); err != nil {
			log.Fatalf("rangerd: registering pin monitor metrics: %v", err)
		}
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				diag.Errorf("metrics server: %v", err)
			}
		}()
	}

	transport, err := serial.Open(context.Background(), *ttyPath, *baud)
	if err != nil {
		log.Fatalf("rangerd: opening serial transport %s: %v", *ttyPath, err)
	}
	defer transport.Close()

	codec := telemlog.Codec(telemlog.TextCodec{})
	if *binaryLog {
		codec = telemlog.BinaryCodec{}
	}
	lineCodec := serial.LineCodec{Transport: transport, Codec: codec, Binary: *binaryLog}
	sink := recordSink{lineCodec}
	telemetry := telemlog.NewLogger(clk, sink, telemlog.NewBufferedSink(sink, ex, 16))

	sensor := hcsr04.NewSensor("front", hw, clk, sched, mon, hcsr04.Config{
		TrigPin:    hal.PinID(*trigPin),
		EchoPin:    hal.PinID(*echoPin),
		PollPeriod: clock.Duration(*pollUsec),
	})

	readings := sensor.Readings()
	readings.OnEach(func(r hcsr04.Reading) {
		telemetry.Info("distance_mm", r.DistanceMM, "time_usec", r.TimeUsec)
	})

	diag.Infof("rangerd running: sensor=%s tty=%s baud=%d", sensor.ID(), *ttyPath, *baud)
	sched.LoopUntilEmpty()
}

// recordSink adapts a serial.LineCodec to telemlog.Sink, swallowing write
// errors: a dropped log line must never bring down the ranging loop.
type recordSink struct {
	codec serial.LineCodec
}

func (s recordSink) Write(r telemlog.Record) {
	_ = s.codec.WriteRecord(r)
}
