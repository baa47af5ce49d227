package log

import (
	"sync"

	"github.com/fernhollow/rangerd/scheduler"
)

// BufferedSink accumulates Records into one of two fixed-capacity
// buffers and asynchronously drains the full one to an underlying Sink
// via an Executor, the Go shape of the original firmware's
// BufferedLog<LogT, buffer_size> (buffered_log.h): fill one buffer while
// the other is being flushed, so a burst of log calls from main context
// never blocks on the (comparatively slow) underlying transport.
type BufferedSink struct {
	inner    Sink
	ex       scheduler.Executor
	capacity int

	mu     sync.Mutex
	active int
	bufs   [2][]Record
}

// NewBufferedSink returns a sink that batches up to capacity records per
// buffer before draining to inner via ex.
func NewBufferedSink(inner Sink, ex scheduler.Executor, capacity int) *BufferedSink {
	if capacity <= 0 {
		capacity = 1
	}
	return &BufferedSink{
		inner:    inner,
		ex:       ex,
		capacity: capacity,
	}
}

// Write appends r to the active buffer, flushing it as soon as it is full.
func (b *BufferedSink) Write(r Record) {
	b.mu.Lock()
	b.bufs[b.active] = append(b.bufs[b.active], r)
	if len(b.bufs[b.active]) >= b.capacity {
		b.swapAndFlushLocked()
	}
	b.mu.Unlock()
}

// Flush drains the active buffer now, regardless of fill level.
func (b *BufferedSink) Flush() {
	b.mu.Lock()
	if len(b.bufs[b.active]) > 0 {
		b.swapAndFlushLocked()
	}
	b.mu.Unlock()
}

// swapAndFlushLocked must be called with mu held. It hands the active
// buffer's contents to the executor for draining and switches writers
// over to the other (necessarily empty) buffer.
func (b *BufferedSink) swapAndFlushLocked() {
	full := b.bufs[b.active]
	b.bufs[b.active] = nil
	b.active = 1 - b.active

	b.ex.Post(func() {
		for _, r := range full {
			b.inner.Write(r)
		}
	})
}
