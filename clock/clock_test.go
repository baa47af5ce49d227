package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernhollow/rangerd/clock"
)

func TestInstant_WrapSafeSub(t *testing.T) {
	var a clock.Instant = 10
	var b clock.Instant = 1<<32 - 5 // just before wraparound
	assert.Equal(t, int32(15), a.Sub(b))
	assert.True(t, a.After(b))
	assert.True(t, b.Before(a))
}

func TestFake_StartsAtZero(t *testing.T) {
	fc := clock.NewFake()
	assert.Equal(t, clock.Instant(0), fc.Now())
}

func TestFake_AdvancesByQuantumEveryNReads(t *testing.T) {
	fc := clock.NewFake().WithQuantum(4, 100)
	for i := 0; i < 99; i++ {
		fc.Now()
	}
	assert.Equal(t, clock.Instant(4), fc.Now()) // 100th read triggers the advance
	assert.Equal(t, clock.Instant(4), fc.Now()) // steady until the next 100
}

func TestFake_Advance(t *testing.T) {
	fc := clock.NewFake()
	fc.Advance(500)
	assert.Equal(t, clock.Instant(500), fc.Now())
}
