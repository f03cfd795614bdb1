package buffer

import (
	"io"

	"github.com/kopia/okio-sub006/iotimeout"
)

// AsReader adapts a Source to a stdlib io.Reader, for bridging into
// consumers (e.g. compress/flate's NewReader) that expect one.
func AsReader(src Source) io.Reader { return &sourceReader{src: src, scratch: New()} }

type sourceReader struct {
	src     Source
	scratch *Buffer
}

func (r *sourceReader) Read(p []byte) (int, error) {
	if r.scratch.Size() == 0 {
		n, err := r.src.Read(r.scratch, int64(len(p)))
		if err != nil {
			return 0, err
		}
		if n < 0 {
			return 0, io.EOF
		}
	}
	out, err := r.scratch.ReadByteArray(minI64(int64(len(p)), r.scratch.Size()))
	if err != nil {
		return 0, err
	}
	return copy(p, out), nil
}

// AsWriter adapts a Sink to a stdlib io.Writer.
func AsWriter(dst Sink) io.Writer { return &sinkWriter{dst: dst, scratch: New()} }

type sinkWriter struct {
	dst     Sink
	scratch *Buffer
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	w.scratch.WriteBytes(p)
	if err := w.dst.Write(w.scratch, int64(len(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NewReaderSource adapts a stdlib io.Reader to a Source.
func NewReaderSource(r io.Reader) Source { return &readerSource{r: r} }

type readerSource struct {
	r       io.Reader
	timeout iotimeout.Timeout
}

func (s *readerSource) Read(sink *Buffer, byteCount int64) (int64, error) {
	p := make([]byte, byteCount)
	n, err := s.r.Read(p)
	if n > 0 {
		sink.WriteBytes(p[:n])
	}
	if err == io.EOF {
		if n == 0 {
			return -1, nil
		}
		return int64(n), nil
	}
	if err != nil {
		return int64(n), err
	}
	return int64(n), nil
}

func (s *readerSource) Timeout() *iotimeout.Timeout { return &s.timeout }
func (s *readerSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewWriterSink adapts a stdlib io.Writer to a Sink.
func NewWriterSink(w io.Writer) Sink { return &writerSink{w: w} }

type writerSink struct {
	w       io.Writer
	timeout iotimeout.Timeout
}

func (s *writerSink) Write(source *Buffer, byteCount int64) error {
	p, err := source.ReadByteArray(byteCount)
	if err != nil {
		return err
	}
	_, err = s.w.Write(p)
	return err
}

func (s *writerSink) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *writerSink) Timeout() *iotimeout.Timeout { return &s.timeout }
func (s *writerSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
