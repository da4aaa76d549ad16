package sigio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/corvid-labs/sigscan/sigerr"
)

func TestOpenRejectsMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist"))
	if !sigerr.Is(err, sigerr.Kind{Domain: sigerr.IO, Code: sigerr.OpenFailed}) {
		t.Fatalf("expected IO/OPEN_FAILED, got %v", err)
	}
}

func TestSizeAndReadAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	content := []byte("AAAAFuZzInGZZZZ")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	size, err := src.Size()
	if err != nil {
		t.Fatal(err)
	}
	if size != int64(len(content)) {
		t.Fatalf("got size %d, want %d", size, len(content))
	}

	buf := make([]byte, 7)
	n, err := src.ReadAt(4, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 7 || string(buf) != "FuZzInG" {
		t.Fatalf("got %q (%d bytes), want %q", buf[:n], n, "FuZzInG")
	}
}

func TestReadAtShortFinalReadIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	if err := os.WriteFile(path, []byte("AB"), 0o600); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	buf := make([]byte, 10)
	n, err := src.ReadAt(0, buf)
	if err != nil {
		t.Fatalf("expected short read at EOF to be tolerated, got %v", err)
	}
	if n != 2 || string(buf[:n]) != "AB" {
		t.Fatalf("got %q (%d bytes)", buf[:n], n)
	}
}

func TestCloseTwiceReportsIOError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Fatal(err)
	}
	err = src.Close()
	if !sigerr.Is(err, sigerr.Kind{Domain: sigerr.IO, Code: sigerr.CloseFailed}) {
		t.Fatalf("expected IO/CLOSE_FAILED on double close, got %v", err)
	}
}
