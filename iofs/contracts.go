// Package iofs defines the filesystem SPI the core streaming layer
// depends on as an external collaborator, plus two reference
// implementations: an os-backed LocalFilesystem and a minio-go-backed
// S3Filesystem. The interface shape (Put/Get/Delete/List plus
// metadata and move/copy) generalizes an opaque-blob store into a
// path-addressed, source/sink-producing filesystem.
package iofs

import (
	"context"
	"time"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iopath"
)

// Metadata describes one filesystem entry, with the three timestamp
// fields left as time.Time zero values when the provider can't supply
// them — callers comparing against "now" should window to whole
// seconds, since host clock precision varies.
type Metadata struct {
	IsRegularFile  bool
	IsDirectory    bool
	Size           int64
	CreatedAt      time.Time
	LastModifiedAt time.Time
	LastAccessedAt time.Time
}

// Filesystem is the SPI the core needs to turn a Path into a Source or
// Sink: source, sink, append, list, createDirectory, atomicMove,
// copy, delete, metadata, canonicalize, cwd, tmpDirectory.
type Filesystem interface {
	// Source opens path for reading.
	Source(ctx context.Context, path iopath.Path) (buffer.Source, error)
	// Sink opens path for writing, truncating any existing content.
	Sink(ctx context.Context, path iopath.Path) (buffer.Sink, error)
	// Append opens path for writing, positioned at its current end.
	Append(ctx context.Context, path iopath.Path) (buffer.Sink, error)

	// List returns the entries directly under path, in an
	// implementation-defined but stable order.
	List(ctx context.Context, path iopath.Path) ([]iopath.Path, error)
	// CreateDirectory creates path and any missing parents.
	CreateDirectory(ctx context.Context, path iopath.Path) error

	// AtomicMove renames from to to, replacing to if it already
	// exists as the same kind of entry (file or directory). Moving a
	// file onto a directory, or vice versa, is an I/O error.
	AtomicMove(ctx context.Context, from, to iopath.Path) error
	// Copy duplicates the file at from to to, overwriting to.
	Copy(ctx context.Context, from, to iopath.Path) error
	// Delete removes path. Deleting a nonexistent path is an I/O
	// error.
	Delete(ctx context.Context, path iopath.Path) error

	// Metadata returns the entry's attributes.
	Metadata(ctx context.Context, path iopath.Path) (Metadata, error)
	// Canonicalize resolves path to its canonical, symlink-free form.
	Canonicalize(ctx context.Context, path iopath.Path) (iopath.Path, error)

	// Cwd returns the filesystem's notion of a current directory.
	Cwd(ctx context.Context) (iopath.Path, error)
	// TmpDirectory returns a directory suitable for temporary files.
	TmpDirectory(ctx context.Context) (iopath.Path, error)
}
