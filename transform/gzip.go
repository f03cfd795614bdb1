package transform

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iotimeout"
)

// GzipSink wraps a Sink, gzip-compressing everything written to it
// before forwarding. Same layering as DeflateSink, swapping the codec
// for one that carries its own checksum and framing.
type GzipSink struct {
	w   *gzip.Writer
	dst buffer.Sink
}

// NewGzipSink wraps dst at the given compression level.
func NewGzipSink(dst buffer.Sink, level int) (*GzipSink, error) {
	w, err := gzip.NewWriterLevel(buffer.AsWriter(dst), level)
	if err != nil {
		return nil, err
	}
	return &GzipSink{w: w, dst: dst}, nil
}

func (s *GzipSink) Write(source *buffer.Buffer, byteCount int64) error {
	p, err := source.ReadByteArray(byteCount)
	if err != nil {
		return err
	}
	_, err = s.w.Write(p)
	return err
}

func (s *GzipSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.dst.Flush()
}

func (s *GzipSink) Timeout() *iotimeout.Timeout { return s.dst.Timeout() }

// Close finalizes the gzip stream, writing its trailing CRC and
// length, then closes the destination.
func (s *GzipSink) Close() error {
	if err := s.w.Close(); err != nil {
		return err
	}
	return s.dst.Close()
}

// GzipSource wraps a Source, decompressing gzip data read from it.
type GzipSource struct {
	r   *gzip.Reader
	src buffer.Source
}

// NewGzipSource wraps src, expecting a gzip stream. The gzip header is
// parsed immediately, so a malformed stream fails here rather than on
// the first Read.
func NewGzipSource(src buffer.Source) (*GzipSource, error) {
	r, err := gzip.NewReader(buffer.AsReader(src))
	if err != nil {
		return nil, err
	}
	return &GzipSource{r: r, src: src}, nil
}

func (s *GzipSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
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

func (s *GzipSource) Timeout() *iotimeout.Timeout { return s.src.Timeout() }

// Close closes the inflater and the underlying source.
func (s *GzipSource) Close() error {
	if err := s.r.Close(); err != nil {
		return err
	}
	return s.src.Close()
}
