package hcsr04_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernhollow/rangerd/clock"
	"github.com/fernhollow/rangerd/hal"
	"github.com/fernhollow/rangerd/pinmonitor"
	"github.com/fernhollow/rangerd/scheduler"
	"github.com/fernhollow/rangerd/sensor/hcsr04"
)

const (
	trigPin hal.PinID = 2
	echoPin hal.PinID = 3
)

func hasWrite(writes []hal.Write, pin hal.PinID, state hal.PinState) bool {
	for _, w := range writes {
		if w.Pin == pin && w.State == state {
			return true
		}
	}
	return false
}

func newTestSensor(t *testing.T) (*hcsr04.Sensor, *hal.Fake, *scheduler.TestScheduler, *clock.Fake) {
	t.Helper()
	fc := clock.NewFake()
	fh := hal.NewFake(fc)
	s := scheduler.New(fc, scheduler.DefaultConfig())
	ts := scheduler.NewTestScheduler(s)
	mon := pinmonitor.New(fh, fc, s)

	sensor := hcsr04.NewSensor("front", fh, fc, s, mon, hcsr04.Config{
		TrigPin:    trigPin,
		EchoPin:    echoPin,
		PollPeriod: 50,
	})
	return sensor, fh, ts, fc
}

// S6: drives the echo pin through two full high/low spikes and checks
// that a reading is emitted for each, trig driven low before the first
// measurement, and distance tracks the measured spike duration.
func TestReadings_EmitsOneReadingPerEchoSpike(t *testing.T) {
	sensor, fh, ts, fc := newTestSensor(t)

	var got []hcsr04.Reading
	readings := sensor.Readings()
	readings.OnEach(func(r hcsr04.Reading) { got = append(got, r) })

	ts.LoopFor(20)
	require.True(t, hasWrite(fh.Writes(), trigPin, hal.Low), "trig pin must be driven low before the first measurement")

	fc.Set(clock.Instant(1000))
	fh.SetReadValue(echoPin, hal.High)
	ts.LoopFor(200)

	fc.Set(clock.Instant(2000))
	fh.SetReadValue(echoPin, hal.Low)
	ts.LoopFor(200)

	require.Len(t, got, 1)
	first := got[0]
	assert.InDelta(t, 171, int(first.DistanceMM), 5)

	fc.Set(clock.Instant(2400))
	fh.SetReadValue(echoPin, hal.High)
	ts.LoopFor(200)

	fc.Set(clock.Instant(2800))
	fh.SetReadValue(echoPin, hal.Low)
	ts.LoopFor(200)

	require.Len(t, got, 2)
	second := got[1]
	assert.InDelta(t, 68, int(second.DistanceMM), 5)
	assert.Greater(t, second.TimeUsec, first.TimeUsec)
}

func TestReadings_HoldsTrigLowBetweenPulses(t *testing.T) {
	sensor, fh, ts, _ := newTestSensor(t)

	readings := sensor.Readings()
	readings.OnEach(func(hcsr04.Reading) {})

	ts.LoopFor(30)

	writes := fh.Writes()
	require.NotEmpty(t, writes)
	assert.Equal(t, trigPin, writes[0].Pin)
	assert.Equal(t, hal.Low, writes[0].State)

	// The 10us trig pulse has ended and no echo arrived, so trig is back low.
	last := writes[len(writes)-1]
	assert.Equal(t, trigPin, last.Pin)
	assert.Equal(t, hal.Low, last.State)
}
