// Package sigio provides a concrete ByteSource (see sigtree.ByteSource) for
// scanning operating-system files. The scan engine never opens files
// itself; this is the one minimal external collaborator the CLI needs to
// construct a ScanFileIO call.
package sigio

import (
	"io"
	"os"

	"github.com/corvid-labs/sigscan/sigerr"
)

// FileSource adapts an *os.File to sigtree.ByteSource.
type FileSource struct {
	f *os.File
}

// Open opens path for reading and returns a FileSource. The caller is
// responsible for calling Close when done.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.OpenFailed}, err,
			"failed to open %q", path)
	}
	return &FileSource{f: f}, nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	if err := s.f.Close(); err != nil {
		return sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.CloseFailed}, err,
			"failed to close %q", s.f.Name())
	}
	return nil
}

// Size returns the file's total size.
func (s *FileSource) Size() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"failed to stat %q", s.f.Name())
	}
	return info.Size(), nil
}

// ReadAt implements sigtree.ByteSource, tolerating a short final read the
// way io.ReaderAt normally wouldn't (io.EOF after a partial read is not an
// error at end of stream).
func (s *FileSource) ReadAt(offset int64, buf []byte) (int, error) {
	n, err := s.f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return n, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
			"failed to read at offset %d", offset)
	}
	return n, nil
}
