// Package hcsr04 drives an HC-SR04 ultrasonic distance sensor, grounded
// on original_source/devices/distance_sensor.h. It is a client of the
// core runtime, not part of it: a sketch wires a Sensor up to its own
// clock, HAL, scheduler, and pin monitor.
package hcsr04

import (
	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/hal"
	"github.com/fernhollow/rangerd/pinmonitor"
	"github.com/fernhollow/rangerd/promise"
	"github.com/fernhollow/rangerd/scheduler"
	"github.com/fernhollow/rangerd/stream"
)

// soundSpeedMPerSec is the assumed speed of sound used to convert an echo
// pulse width into a one-way distance.
const soundSpeedMPerSec = 343

// distanceMMPerUsec is the time-to-distance coefficient: the round trip
// covers the distance twice, and sound travels soundSpeedMPerSec m/s,
// i.e. soundSpeedMPerSec/1000 mm/us, halved for the one-way distance.
const distanceMMPerUsec = soundSpeedMPerSec / 1000.0 / 2.0

// Config configures a Sensor's pins and polling cadence.
type Config struct {
	TrigPin hal.PinID
	EchoPin hal.PinID
	// PollPeriod is how often the echo pin is polled for its rising and
	// falling edge; the original firmware defaults this to 50us.
	PollPeriod clock.Duration
}

// DefaultPollPeriod matches the original firmware's POLL_FREQUENCY_USEC.
const DefaultPollPeriod clock.Duration = 50

// Reading is one distance measurement.
type Reading struct {
	// DistanceMM is the measured distance from the sensor, in mm.
	DistanceMM uint16
	// TimeUsec is the time the measurement was started, in microseconds.
	TimeUsec uint32
}

// Sensor drives a single HC-SR04 unit.
type Sensor struct {
	id    string
	hal   hal.HAL
	clk   clock.Clock
	sched *scheduler.Scheduler
	mon   *pinmonitor.Monitor
	cfg   Config
}

// NewSensor returns a Sensor identified by id, driving trig/echo through h
// and scheduling polls on sched via mon.
func NewSensor(id string, h hal.HAL, clk clock.Clock, sched *scheduler.Scheduler, mon *pinmonitor.Monitor, cfg Config) *Sensor {
	if cfg.PollPeriod == 0 {
		cfg.PollPeriod = DefaultPollPeriod
	}
	h.SetPinMode(cfg.TrigPin, hal.Output)
	h.SetPinMode(cfg.EchoPin, hal.Input)
	return &Sensor{id: id, hal: h, clk: clk, sched: sched, mon: mon, cfg: cfg}
}

// ID returns the sensor's human-readable identifier.
func (s *Sensor) ID() string {
	return s.id
}

// Readings starts continuous measurement and returns a stream of
// distance readings, one per trig/echo cycle.
func (s *Sensor) Readings() stream.Stream[Reading] {
	readings, writer := stream.New[Reading]()
	s.hal.WritePin(s.cfg.TrigPin, hal.Low)
	s.sched.RunAfter(2, func() {
		s.readDistances(writer)
	})
	return readings
}

func (s *Sensor) readDistances(w stream.Writer[Reading]) {
	ex := scheduler.NewExecutor(s.sched)
	p := s.readDistance()
	promise.ThenVoid(p, ex, func(r Reading) {
		w.Put(ex, r)
		s.readDistances(w)
	})
}

func (s *Sensor) readDistance() promise.Promise[Reading] {
	s.hal.WritePin(s.cfg.TrigPin, hal.High)
	ex := scheduler.NewExecutor(s.sched)
	after := promise.After(s.sched, 10)
	return promise.ThenFlat(after, ex, func(promise.Unit) promise.Promise[Reading] {
		s.hal.WritePin(s.cfg.TrigPin, hal.Low)
		timeUsec := uint32(s.clk.Now())
		spike := s.mon.PollOnceSpikes(s.cfg.PollPeriod, s.cfg.EchoPin)
		return promise.Then(spike, ex, func(spikeUsec clock.Duration) Reading {
			distanceMM := uint16(float64(spikeUsec) * distanceMMPerUsec)
			return Reading{DistanceMM: distanceMM, TimeUsec: timeUsec}
		})
	})
}
