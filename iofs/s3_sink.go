package iofs

import (
	"context"

	"github.com/minio/minio-go/v7"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iopath"
	"github.com/kopia/okio-sub006/iotimeout"
	"github.com/kopia/okio-sub006/transform"
)

// streamingSink returns a Sink backed by a Pipe whose source side
// feeds minio's PutObject running on a background goroutine — PutObject
// wants a single io.Reader for the object's whole lifetime, so the
// Pipe lets the caller keep writing through the ordinary Sink.Write
// contract while the upload runs concurrently.
func (s *S3Filesystem) streamingSink(ctx context.Context, path iopath.Path) (buffer.Sink, error) {
	p := transform.NewPipe(1 << 20)
	errc := make(chan error, 1)

	go func() {
		_, err := s.client.PutObject(ctx, s.bucket, s.key(path), buffer.AsReader(p.Source()), -1, minio.PutObjectOptions{})
		errc <- ioerr.WrapIO("iofs", err)
	}()

	return &s3Sink{pipeSink: p.Sink(), errc: errc}, nil
}

// s3Sink wraps a Pipe's sink side, surfacing the background upload's
// result from Close.
type s3Sink struct {
	pipeSink buffer.Sink
	errc     chan error
}

func (s *s3Sink) Write(source *buffer.Buffer, byteCount int64) error {
	return s.pipeSink.Write(source, byteCount)
}

func (s *s3Sink) Flush() error { return s.pipeSink.Flush() }

func (s *s3Sink) Timeout() *iotimeout.Timeout { return s.pipeSink.Timeout() }

func (s *s3Sink) Close() error {
	if err := s.pipeSink.Close(); err != nil {
		return err
	}
	return <-s.errc
}
