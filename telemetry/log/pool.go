package log

import "sync"

// Size-bucketed byte-slice pool backing WriterSink's encode-and-write
// path, adapted from the block-device buffer pool pattern down to the
// much smaller chunk sizes a single on-device log record needs. Uses
// the *[]byte pattern to avoid boxing a []byte header on every Get/Put.
const (
	size32  = 32
	size64  = 64
	size128 = 128
	size256 = 256
)

var bufferPool = struct {
	pool32  sync.Pool
	pool64  sync.Pool
	pool128 sync.Pool
	pool256 sync.Pool
}{
	pool32:  sync.Pool{New: func() any { b := make([]byte, size32); return &b }},
	pool64:  sync.Pool{New: func() any { b := make([]byte, size64); return &b }},
	pool128: sync.Pool{New: func() any { b := make([]byte, size128); return &b }},
	pool256: sync.Pool{New: func() any { b := make([]byte, size256); return &b }},
}

// getBuffer returns a buffer of exactly size bytes, pooled for sizes up
// to size256. Larger requests (a record with a long file path or many
// args can exceed it) fall back to a plain allocation rather than
// overrunning the largest bucket.
func getBuffer(size int) []byte {
	switch {
	case size <= size32:
		return (*bufferPool.pool32.Get().(*[]byte))[:size]
	case size <= size64:
		return (*bufferPool.pool64.Get().(*[]byte))[:size]
	case size <= size128:
		return (*bufferPool.pool128.Get().(*[]byte))[:size]
	case size <= size256:
		return (*bufferPool.pool256.Get().(*[]byte))[:size]
	default:
		return make([]byte, size)
	}
}

// putBuffer returns buf to the pool matching its capacity.
func putBuffer(buf []byte) {
	c := cap(buf)
	buf = buf[:c]
	switch c {
	case size32:
		bufferPool.pool32.Put(&buf)
	case size64:
		bufferPool.pool64.Put(&buf)
	case size128:
		bufferPool.pool128.Put(&buf)
	case size256:
		bufferPool.pool256.Put(&buf)
	}
}
