package log_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernhollow/rangerd/clock"
	telemlog "github.com/fernhollow/rangerd/telemetry/log"
	"github.com/fernhollow/rangerd/thread"
)

func TestTextCodec_FormatsSeverityTimestampAndArgs(t *testing.T) {
	r := telemlog.Record{
		Severity: telemlog.SeverityInfo,
		Micros:   clock.Instant(1500000),
		Thread:   "main",
		File:     "sensor.go",
		Line:     42,
		Args:     []any{"distance", 171},
	}
	data, err := telemlog.TextCodec{}.Encode(r)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "I0001.500000  sensor.go:42: "))
	assert.Contains(t, out, "distance 171")
}

func TestTextCodec_MarksInterruptThread(t *testing.T) {
	r := telemlog.Record{Severity: telemlog.SeverityInfo, Thread: "interrupt", File: "x.go", Line: 1}
	data, err := telemlog.TextCodec{}.Encode(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), "*")
}

func TestBinaryCodec_RoundTrips(t *testing.T) {
	r := telemlog.Record{
		Severity: telemlog.SeverityFatal,
		Micros:   clock.Instant(42),
		Thread:   "main",
		File:     "a.go",
		Line:     7,
		Args:     []any{uint8(1), uint16(2), uint32(3), "oops"},
	}
	data, err := telemlog.BinaryCodec{}.Encode(r)
	require.NoError(t, err)

	got, err := telemlog.BinaryCodec{}.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, r.Severity, got.Severity)
	assert.Equal(t, r.Micros, got.Micros)
	assert.Equal(t, r.File, got.File)
	assert.Equal(t, r.Line, got.Line)
	require.Len(t, got.Args, 4)
	assert.Equal(t, uint8(1), got.Args[0])
	assert.Equal(t, uint16(2), got.Args[1])
	assert.Equal(t, uint32(3), got.Args[2])
	assert.Equal(t, "oops", got.Args[3])
}

type recordingSink struct {
	records []telemlog.Record
}

func (s *recordingSink) Write(r telemlog.Record) { s.records = append(s.records, r) }

type inlineExecutor struct{}

func (inlineExecutor) Post(f func()) { f() }

func TestBufferedSink_FlushesAtCapacity(t *testing.T) {
	inner := &recordingSink{}
	b := telemlog.NewBufferedSink(inner, inlineExecutor{}, 2)

	b.Write(telemlog.Record{Args: []any{1}})
	assert.Empty(t, inner.records, "must not flush before capacity")

	b.Write(telemlog.Record{Args: []any{2}})
	assert.Len(t, inner.records, 2, "flush fires once the buffer fills")

	b.Write(telemlog.Record{Args: []any{3}})
	b.Flush()
	assert.Len(t, inner.records, 3)
}

func TestLogger_InterruptContextRecordsAsInterruptThread(t *testing.T) {
	clk := clock.NewFake()
	sync := &recordingSink{}
	async := &recordingSink{}
	logger := telemlog.NewLogger(clk, sync, async)

	restore := thread.EnterISR()
	logger.Info("echo")
	restore()

	require.Empty(t, sync.records, "a non-fatal interrupt-context report must not go synchronous")
	require.Len(t, async.records, 1)
	assert.Equal(t, "interrupt", async.records[0].Thread)

	data, err := telemlog.TextCodec{}.Encode(async.records[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "*", "an interrupt-context record must render the ISR marker")
}

func TestWriterSink_WritesEncodedBytes(t *testing.T) {
	var buf bytes.Buffer
	sink := telemlog.NewWriterSink(&buf, telemlog.TextCodec{})
	sink.Write(telemlog.Record{Severity: telemlog.SeverityInfo, Thread: "main", File: "f.go", Line: 3, Args: []any{"hi"}})
	assert.Contains(t, buf.String(), "hi")
}
