package transform

import (
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iotimeout"
)

// DeflateSink wraps a Sink, compressing everything written to it with
// raw DEFLATE before forwarding, bridged through buffer.AsWriter the
// way cas/object_writer.go layers a compressor in front of its backing
// blob.Storage writer.
type DeflateSink struct {
	w   *flate.Writer
	dst buffer.Sink
}

// NewDeflateSink wraps dst at the given compression level (use
// flate.DefaultCompression when no specific level is required).
func NewDeflateSink(dst buffer.Sink, level int) (*DeflateSink, error) {
	w, err := flate.NewWriter(buffer.AsWriter(dst), level)
	if err != nil {
		return nil, err
	}
	return &DeflateSink{w: w, dst: dst}, nil
}

func (s *DeflateSink) Write(source *buffer.Buffer, byteCount int64) error {
	p, err := source.ReadByteArray(byteCount)
	if err != nil {
		return err
	}
	_, err = s.w.Write(p)
	return err
}

// Flush flushes any buffered compressed bytes to the destination
// without closing the DEFLATE stream.
func (s *DeflateSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return err
	}
	return s.dst.Flush()
}

func (s *DeflateSink) Timeout() *iotimeout.Timeout { return s.dst.Timeout() }

// Close finalizes the DEFLATE stream and closes the destination.
func (s *DeflateSink) Close() error {
	if err := s.w.Close(); err != nil {
		return err
	}
	return s.dst.Close()
}

// DeflateSource wraps a Source, inflating raw DEFLATE data read from
// it before handing bytes to the caller.
type DeflateSource struct {
	r   flateReadCloser
	src buffer.Source
}

type flateReadCloser interface {
	Read(p []byte) (int, error)
	Close() error
}

// NewDeflateSource wraps src, expecting raw DEFLATE data.
func NewDeflateSource(src buffer.Source) *DeflateSource {
	return &DeflateSource{r: flate.NewReader(buffer.AsReader(src)), src: src}
}

func (s *DeflateSource) Read(sink *buffer.Buffer, byteCount int64) (int64, error) {
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

func (s *DeflateSource) Timeout() *iotimeout.Timeout { return s.src.Timeout() }

// Close closes the inflater and the underlying source.
func (s *DeflateSource) Close() error {
	if err := s.r.Close(); err != nil {
		return err
	}
	return s.src.Close()
}
