package sigtree

import "github.com/corvid-labs/sigscan/sigerr"

// streamChunkSize is the size of the fixed chunks ScanFileIO streams the
// stream's middle section through scan_buffer in.
const streamChunkSize = 64 * 1024

// ScanFileIO drives state over source following the canonical sequence from
// spec §4.6: read the header window, stream the middle in fixed-size
// chunks, read the footer window, then finalize. abort, if non-nil, is
// polled between chunks; a true return stops the scan early with
// RUNTIME/ABORT_REQUESTED, leaving state drainable.
func (s *Scanner) ScanFileIO(state *ScanState, source ByteSource, abort func() bool) error {
	if s == nil || state == nil || source == nil {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"scan_file_io: scanner, state, and source must be non-nil")
	}
	if !s.IsPrepared() {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed},
			"scan_file_io: scanner has not been prepared")
	}

	state.AbortFunc = abort

	totalSize, err := source.Size()
	if err != nil {
		return sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.SeekFailed}, err,
			"scan_file_io: failed to determine stream size")
	}

	kStart, kEnd, _ := s.windowSizes()

	var offset int64
	readChunk := func(size int) ([]byte, error) {
		buf := make([]byte, size)
		n, err := source.ReadAt(offset, buf)
		if err != nil {
			return nil, sigerr.Wrap(sigerr.Kind{Domain: sigerr.IO, Code: sigerr.ReadFailed}, err,
				"scan_file_io: failed to read %d bytes at offset %d", size, offset)
		}
		return buf[:n], nil
	}

	headerSize := int64(kStart)
	if headerSize > totalSize {
		headerSize = totalSize
	}
	if headerSize > 0 {
		chunk, err := readChunk(int(headerSize))
		if err != nil {
			return err
		}
		if err := s.ScanBuffer(state, chunk); err != nil {
			return err
		}
		offset += int64(len(chunk))
	}

	footerSize := int64(kEnd)
	if footerSize > totalSize-offset {
		footerSize = totalSize - offset
		if footerSize < 0 {
			footerSize = 0
		}
	}
	middleEnd := totalSize - footerSize

	for offset < middleEnd {
		size := streamChunkSize
		if int64(size) > middleEnd-offset {
			size = int(middleEnd - offset)
		}
		chunk, err := readChunk(size)
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			break
		}
		if err := s.ScanBuffer(state, chunk); err != nil {
			return err
		}
		offset += int64(len(chunk))
	}

	if footerSize > 0 {
		chunk, err := readChunk(int(footerSize))
		if err != nil {
			return err
		}
		if err := s.ScanBuffer(state, chunk); err != nil {
			return err
		}
		offset += int64(len(chunk))
	}

	return s.Finalize(state, totalSize)
}
