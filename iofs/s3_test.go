package iofs

import (
	"testing"

	"github.com/kopia/okio-sub006/iopath"
)

func TestNewS3FilesystemConstructsClient(t *testing.T) {
	fs, err := NewS3Filesystem("s3.example.com:9000", "access", "secret", "test-bucket", false)
	if err != nil {
		t.Fatal(err)
	}
	if fs.bucket != "test-bucket" {
		t.Fatalf("bucket = %q", fs.bucket)
	}
}

func TestS3FilesystemKeyStripsLeadingSlash(t *testing.T) {
	fs, err := NewS3Filesystem("s3.example.com:9000", "access", "secret", "test-bucket", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := fs.key(iopath.Of("/a/b/c")); got != "a/b/c" {
		t.Fatalf("key = %q", got)
	}
}

func TestS3FilesystemAppendUnsupported(t *testing.T) {
	fs, err := NewS3Filesystem("s3.example.com:9000", "access", "secret", "test-bucket", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Append(nil, iopath.Of("/x")); err == nil {
		t.Fatal("expected error")
	}
}
