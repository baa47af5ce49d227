package log

import "io"

// WriterSink encodes each Record with codec and writes it directly to w.
// Used as the synchronous sink for fatal/main-context reports, where
// correctness outranks throughput.
type WriterSink struct {
	w     io.Writer
	codec Codec
}

// NewWriterSink returns a Sink that writes codec-encoded records to w.
func NewWriterSink(w io.Writer, codec Codec) *WriterSink {
	return &WriterSink{w: w, codec: codec}
}

func (s *WriterSink) Write(r Record) {
	data, err := s.codec.Encode(r)
	if err != nil {
		return
	}
	buf := getBuffer(len(data))
	defer putBuffer(buf)
	copy(buf, data)
	_, _ = s.w.Write(buf)
}
