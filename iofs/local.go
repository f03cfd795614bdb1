package iofs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/internal/ioerr"
	"github.com/kopia/okio-sub006/iopath"
	"github.com/kopia/okio-sub006/iotimeout"
)

// LocalFilesystem implements Filesystem over the host's local disk,
// grounded on blob/filesystem/filesystem_storage.go's temp-file-then-
// rename write path (generalized from a sharded blob-ID layout to
// arbitrary paths) and blob/filesystem.go's directory/file mode
// defaults. Sink and AtomicMove both complete with
// github.com/natefinch/atomic's ReplaceFile so a reader never
// observes a partially written or half-renamed file.
type LocalFilesystem struct {
	// FileMode is applied to newly created files. Defaults to 0600.
	FileMode os.FileMode
	// DirMode is applied to newly created directories. Defaults to
	// 0700.
	DirMode os.FileMode
}

// NewLocalFilesystem returns a LocalFilesystem with conservative
// default file/directory modes.
func NewLocalFilesystem() *LocalFilesystem {
	return &LocalFilesystem{FileMode: 0o600, DirMode: 0o700}
}

func (l *LocalFilesystem) fileMode() os.FileMode {
	if l.FileMode == 0 {
		return 0o600
	}
	return l.FileMode
}

func (l *LocalFilesystem) dirMode() os.FileMode {
	if l.DirMode == 0 {
		return 0o700
	}
	return l.DirMode
}

func wrapOSErr(err error) error {
	return ioerr.WrapIO("iofs", err)
}

func (l *LocalFilesystem) Source(ctx context.Context, path iopath.Path) (buffer.Source, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return nil, wrapOSErr(err)
	}
	return buffer.NewReaderSource(f), nil
}

// Sink stages the write in a temp file beside the destination and
// only becomes visible at path when the returned Sink is Closed,
// via atomic.ReplaceFile.
func (l *LocalFilesystem) Sink(ctx context.Context, path iopath.Path) (buffer.Sink, error) {
	dir := filepath.Dir(path.String())
	if err := os.MkdirAll(dir, l.dirMode()); err != nil {
		return nil, wrapOSErr(err)
	}
	f, err := os.CreateTemp(dir, ".okiocat-tmp-*")
	if err != nil {
		return nil, wrapOSErr(err)
	}
	if err := f.Chmod(l.fileMode()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, wrapOSErr(err)
	}
	return &atomicFileSink{inner: buffer.NewWriterSink(f), tmpPath: f.Name(), finalPath: path.String()}, nil
}

// atomicFileSink wraps a temp-file Sink, replacing the destination
// file with the temp file's contents on Close rather than writing
// through the destination directly.
type atomicFileSink struct {
	inner     buffer.Sink
	tmpPath   string
	finalPath string
}

func (s *atomicFileSink) Write(source *buffer.Buffer, byteCount int64) error {
	return s.inner.Write(source, byteCount)
}

func (s *atomicFileSink) Flush() error { return s.inner.Flush() }

func (s *atomicFileSink) Timeout() *iotimeout.Timeout { return s.inner.Timeout() }

func (s *atomicFileSink) Close() error {
	if err := s.inner.Close(); err != nil {
		os.Remove(s.tmpPath)
		return wrapOSErr(err)
	}
	if err := atomic.ReplaceFile(s.tmpPath, s.finalPath); err != nil {
		os.Remove(s.tmpPath)
		return wrapOSErr(err)
	}
	return nil
}

func (l *LocalFilesystem) Append(ctx context.Context, path iopath.Path) (buffer.Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path.String()), l.dirMode()); err != nil {
		return nil, wrapOSErr(err)
	}
	f, err := os.OpenFile(path.String(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, l.fileMode())
	if err != nil {
		return nil, wrapOSErr(err)
	}
	return buffer.NewWriterSink(f), nil
}

func (l *LocalFilesystem) List(ctx context.Context, path iopath.Path) ([]iopath.Path, error) {
	entries, err := os.ReadDir(path.String())
	if err != nil {
		return nil, wrapOSErr(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	out := make([]iopath.Path, 0, len(names))
	for _, n := range names {
		out = append(out, path.JoinString(n))
	}
	return out, nil
}

func (l *LocalFilesystem) CreateDirectory(ctx context.Context, path iopath.Path) error {
	return wrapOSErr(os.MkdirAll(path.String(), l.dirMode()))
}

func (l *LocalFilesystem) AtomicMove(ctx context.Context, from, to iopath.Path) error {
	fromInfo, err := os.Stat(from.String())
	if err != nil {
		return wrapOSErr(err)
	}
	if toInfo, err := os.Stat(to.String()); err == nil {
		if toInfo.IsDir() != fromInfo.IsDir() {
			return ioerr.WrapIO("iofs", errors.New("cannot move a file onto a directory or vice versa"))
		}
	}
	if err := os.MkdirAll(filepath.Dir(to.String()), l.dirMode()); err != nil {
		return wrapOSErr(err)
	}
	return wrapOSErr(atomic.ReplaceFile(from.String(), to.String()))
}

// Copy streams from into a temp file beside to and publishes it with
// atomic.ReplaceFile, so a concurrent reader of to never observes a
// partial copy.
func (l *LocalFilesystem) Copy(ctx context.Context, from, to iopath.Path) error {
	src, err := os.Open(from.String())
	if err != nil {
		return wrapOSErr(err)
	}
	defer src.Close()

	dir := filepath.Dir(to.String())
	if err := os.MkdirAll(dir, l.dirMode()); err != nil {
		return wrapOSErr(err)
	}
	dst, err := os.CreateTemp(dir, ".okiocat-tmp-*")
	if err != nil {
		return wrapOSErr(err)
	}
	tmpPath := dst.Name()
	if err := dst.Chmod(l.fileMode()); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return wrapOSErr(err)
	}

	buf := make([]byte, 64*1024)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				dst.Close()
				os.Remove(tmpPath)
				return wrapOSErr(werr)
			}
		}
		if rerr != nil {
			dst.Close()
			if rerr != io.EOF {
				os.Remove(tmpPath)
				return wrapOSErr(rerr)
			}
			if err := atomic.ReplaceFile(tmpPath, to.String()); err != nil {
				os.Remove(tmpPath)
				return wrapOSErr(err)
			}
			return nil
		}
	}
}

func (l *LocalFilesystem) Delete(ctx context.Context, path iopath.Path) error {
	return wrapOSErr(os.Remove(path.String()))
}

func (l *LocalFilesystem) Metadata(ctx context.Context, path iopath.Path) (Metadata, error) {
	info, err := os.Stat(path.String())
	if err != nil {
		return Metadata{}, wrapOSErr(err)
	}
	return Metadata{
		IsRegularFile:  info.Mode().IsRegular(),
		IsDirectory:    info.IsDir(),
		Size:           info.Size(),
		LastModifiedAt: info.ModTime(),
	}, nil
}

func (l *LocalFilesystem) Canonicalize(ctx context.Context, path iopath.Path) (iopath.Path, error) {
	abs, err := filepath.Abs(path.String())
	if err != nil {
		return iopath.Path{}, wrapOSErr(err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return iopath.Path{}, wrapOSErr(err)
	}
	return iopath.Of(resolved), nil
}

func (l *LocalFilesystem) Cwd(ctx context.Context) (iopath.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return iopath.Path{}, wrapOSErr(err)
	}
	return iopath.Of(wd), nil
}

func (l *LocalFilesystem) TmpDirectory(ctx context.Context) (iopath.Path, error) {
	return iopath.Of(os.TempDir()), nil
}
