package iofs

import (
	"context"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iopath"
)

// S3Filesystem implements Filesystem over a single S3 (or S3-
// compatible) bucket, keyed by the SPI Path's slash-joined string.
// Client construction follows the usual minio-go-backed blob.Storage
// shape (endpoint/key/secret triple to a Client), updated to the v7
// functional-options constructor.
type S3Filesystem struct {
	client *minio.Client
	bucket string
}

// NewS3Filesystem connects to endpoint (host:port, no scheme) using
// static credentials, operating against bucket.
func NewS3Filesystem(endpoint, accessKeyID, secretAccessKey, bucket string, useTLS bool) (*S3Filesystem, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useTLS,
	})
	if err != nil {
		return nil, ioerr.WrapIO("iofs", err)
	}
	return &S3Filesystem{client: client, bucket: bucket}, nil
}

func (s *S3Filesystem) key(path iopath.Path) string {
	return strings.TrimPrefix(path.String(), "/")
}

func (s *S3Filesystem) Source(ctx context.Context, path iopath.Path) (buffer.Source, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(path), minio.GetObjectOptions{})
	if err != nil {
		return nil, ioerr.WrapIO("iofs", err)
	}
	return buffer.NewReaderSource(obj), nil
}

// Sink streams the write through a Pipe capped at 1 MiB, since S3's
// PutObject call streams from a single reader and needs to run
// concurrently with the caller's writes.
func (s *S3Filesystem) Sink(ctx context.Context, path iopath.Path) (buffer.Sink, error) {
	return s.streamingSink(ctx, path)
}

func (s *S3Filesystem) Append(ctx context.Context, path iopath.Path) (buffer.Sink, error) {
	return nil, ioerr.WrapIO("iofs", errAppendUnsupported)
}

func (s *S3Filesystem) List(ctx context.Context, path iopath.Path) ([]iopath.Path, error) {
	prefix := s.key(path)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var out []iopath.Path
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, ioerr.WrapIO("iofs", obj.Err)
		}
		out = append(out, iopath.Of("/"+obj.Key))
	}
	return out, nil
}

func (s *S3Filesystem) CreateDirectory(ctx context.Context, path iopath.Path) error {
	// S3 has no directories; keys with a common prefix behave like
	// one once an object exists under them.
	return nil
}

func (s *S3Filesystem) AtomicMove(ctx context.Context, from, to iopath.Path) error {
	if err := s.Copy(ctx, from, to); err != nil {
		return err
	}
	return s.Delete(ctx, from)
}

func (s *S3Filesystem) Copy(ctx context.Context, from, to iopath.Path) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: s.bucket, Object: s.key(to)},
		minio.CopySrcOptions{Bucket: s.bucket, Object: s.key(from)},
	)
	return ioerr.WrapIO("iofs", err)
}

func (s *S3Filesystem) Delete(ctx context.Context, path iopath.Path) error {
	return ioerr.WrapIO("iofs", s.client.RemoveObject(ctx, s.bucket, s.key(path), minio.RemoveObjectOptions{}))
}

func (s *S3Filesystem) Metadata(ctx context.Context, path iopath.Path) (Metadata, error) {
	info, err := s.client.StatObject(ctx, s.bucket, s.key(path), minio.StatObjectOptions{})
	if err != nil {
		return Metadata{}, ioerr.WrapIO("iofs", err)
	}
	return Metadata{
		IsRegularFile:  true,
		Size:           info.Size,
		LastModifiedAt: info.LastModified,
	}, nil
}

func (s *S3Filesystem) Canonicalize(ctx context.Context, path iopath.Path) (iopath.Path, error) {
	return path, nil
}

func (s *S3Filesystem) Cwd(ctx context.Context) (iopath.Path, error) {
	return iopath.Root, nil
}

func (s *S3Filesystem) TmpDirectory(ctx context.Context) (iopath.Path, error) {
	return iopath.Root.JoinString("tmp"), nil
}

type s3Err string

func (e s3Err) Error() string { return string(e) }

const errAppendUnsupported = s3Err("S3 objects cannot be appended to")
