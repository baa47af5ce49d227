package log

import "testing"

func TestGetBuffer_SizeBuckets(t *testing.T) {
	tests := []struct {
		requestSize int
		expectCap   int
	}{
		{requestSize: 10, expectCap: size32},
		{requestSize: size32, expectCap: size32},
		{requestSize: size32 + 1, expectCap: size64},
		{requestSize: size128 + 1, expectCap: size256},
		{requestSize: size256 + 1, expectCap: size256 + 1},
	}
	for _, tt := range tests {
		buf := getBuffer(tt.requestSize)
		if len(buf) != tt.requestSize {
			t.Errorf("getBuffer(%d) returned len=%d, want %d", tt.requestSize, len(buf), tt.requestSize)
		}
		if cap(buf) != tt.expectCap {
			t.Errorf("getBuffer(%d) returned cap=%d, want %d", tt.requestSize, cap(buf), tt.expectCap)
		}
		putBuffer(buf)
	}
}

func TestPutBuffer_Reuse(t *testing.T) {
	buf1 := getBuffer(size32)
	buf1[0] = 0xAB
	putBuffer(buf1)

	buf2 := getBuffer(size32)
	if &buf2[0] != &buf1[0] {
		t.Skip("pool did not reuse the buffer on this GC cycle, not a correctness failure")
	}
}

func TestPutBuffer_NonStandardCapIsDropped(t *testing.T) {
	buf := make([]byte, 7)
	putBuffer(buf) // must not panic; non-bucket capacities are silently dropped
}
