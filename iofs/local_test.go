package iofs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kopia/okio-sub006/buffer"
	"github.com/kopia/okio-sub006/iopath"
)

func TestLocalFilesystemWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalFilesystem()
	ctx := context.Background()

	p := iopath.Of(filepath.Join(dir, "nested", "file.txt"))
	sink, err := fs.Sink(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	payload := buffer.New()
	payload.WriteUtf8("hello filesystem")
	if err := sink.Write(payload, payload.Size()); err != nil {
		t.Fatal(err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := fs.Source(ctx, p)
	if err != nil {
		t.Fatal(err)
	}
	out := buffer.New()
	for {
		n, err := src.Read(out, 4096)
		if err != nil {
			t.Fatal(err)
		}
		if n < 0 {
			break
		}
	}
	got, _ := out.ReadAllUtf8()
	if got != "hello filesystem" {
		t.Fatalf("got %q", got)
	}
}

func TestLocalFilesystemListAndDelete(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalFilesystem()
	ctx := context.Background()

	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := fs.List(ctx, iopath.Of(dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %v", entries)
	}

	if err := fs.Delete(ctx, iopath.Of(filepath.Join(dir, "a.txt"))); err != nil {
		t.Fatal(err)
	}
	entries, err = fs.List(ctx, iopath.Of(dir))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries after delete = %v", entries)
	}
}

func TestLocalFilesystemAtomicMoveRejectsKindMismatch(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalFilesystem()
	ctx := context.Background()

	filePath := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	dirPath := filepath.Join(dir, "subdir")
	if err := os.Mkdir(dirPath, 0o700); err != nil {
		t.Fatal(err)
	}

	if err := fs.AtomicMove(ctx, iopath.Of(filePath), iopath.Of(dirPath)); err == nil {
		t.Fatal("expected error moving a file onto a directory")
	}
}

func TestLocalFilesystemMetadata(t *testing.T) {
	dir := t.TempDir()
	fs := NewLocalFilesystem()
	ctx := context.Background()

	p := filepath.Join(dir, "meta.txt")
	if err := os.WriteFile(p, []byte("abcde"), 0o600); err != nil {
		t.Fatal(err)
	}

	md, err := fs.Metadata(ctx, iopath.Of(p))
	if err != nil {
		t.Fatal(err)
	}
	if !md.IsRegularFile || md.IsDirectory {
		t.Fatalf("md = %+v", md)
	}
	if md.Size != 5 {
		t.Fatalf("size = %d", md.Size)
	}
}
