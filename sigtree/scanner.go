package sigtree

import (
	"sync"

	"github.com/corvid-labs/sigscan/sigerr"
)

// ByteSource is the byte-range I/O abstraction the scan engine consumes. It
// never opens files itself; callers supply a ByteSource (see package sigio
// for a concrete os.File-backed implementation).
type ByteSource interface {
	// Size returns the total size of the underlying stream.
	Size() (int64, error)
	// ReadAt reads len(buf) bytes starting at offset, like io.ReaderAt.
	ReadAt(offset int64, buf []byte) (int, error)
}

// defaultCodepageMu guards the process-wide advisory codepage default.
var (
	defaultCodepageMu   sync.Mutex
	defaultCodepageHint string
)

// SetDefaultCodepageHint sets the process-wide advisory codepage hint used
// by scanners that have not set their own. It affects only future
// diagnostics, never matching behavior.
func SetDefaultCodepageHint(name string) {
	defaultCodepageMu.Lock()
	defaultCodepageHint = name
	defaultCodepageMu.Unlock()
}

// Scanner owns a signature table and, once prepared, the three compiled
// scan trees (one per anchor group). A prepared Scanner is immutable and
// safe to share across goroutines that each hold their own ScanState.
type Scanner struct {
	mu       sync.Mutex
	table    *signatureTable
	trees    [3]*scanTree // indexed by Anchor
	prepared bool

	// Codepage is an advisory hint; it never affects matching.
	Codepage string
}

// NewScanner returns an empty, unprepared Scanner.
func NewScanner() *Scanner {
	return &Scanner{table: newSignatureTable()}
}

// AddSignature registers a new signature. It fails if id or pattern is
// empty, if id duplicates an existing signature, if pattern exceeds the
// engine maximum, or if anchor and offset are inconsistent. Succeeding
// clears any previous Prepare.
func (s *Scanner) AddSignature(id string, pattern []byte, offset int, anchor Anchor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sig := &Signature{
		Identifier: id,
		Pattern:    append([]byte(nil), pattern...),
		Offset:     offset,
		Anchor:     anchor,
	}
	if err := sig.validate(); err != nil {
		return err
	}
	if err := s.table.add(sig); err != nil {
		return err
	}
	s.prepared = false
	s.trees = [3]*scanTree{}
	return nil
}

// Prepare partitions the registered signatures by anchor and compiles one
// scan tree per non-empty group. It is idempotent once prepared; calling
// AddSignature un-prepares the scanner so a subsequent Prepare rebuilds.
func (s *Scanner) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prepared {
		return nil
	}

	for _, anchor := range []Anchor{AnchorStartRelative, AnchorEndRelative, AnchorUnbound} {
		sigs := s.table.byAnchor(anchor)
		if len(sigs) == 0 {
			s.trees[anchor] = nil
			continue
		}
		spans, windowSize := spansForGroup(anchor, sigs)
		tree := buildScanTree(spans)
		if tree == nil {
			return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed},
				"failed to build scan tree for anchor %v", anchor)
		}
		tree.windowSize = windowSize
		s.trees[anchor] = tree
	}

	s.prepared = true
	return nil
}

// IsPrepared reports whether Prepare has succeeded since the last
// AddSignature call.
func (s *Scanner) IsPrepared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepared
}

// Signature looks up a registered signature by identifier.
func (s *Scanner) Signature(id string) (*Signature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.get(id)
}

// Signatures returns all registered signatures in insertion order.
func (s *Scanner) Signatures() []*Signature {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Signature, len(s.table.order))
	copy(out, s.table.order)
	return out
}

// WindowSizes returns (K_start, K_end, K_unbound) for the currently
// prepared trees, for callers (e.g. a CLI diagnostic command) that want to
// report the compiled window sizes without scanning anything. Unprepared
// or empty groups contribute 0.
func (s *Scanner) WindowSizes() (kStart, kEnd, kUnbound int) {
	return s.windowSizes()
}

// windowSizes returns (K_start, K_end, K_unbound) for the currently
// prepared trees. Unprepared or empty groups contribute 0.
func (s *Scanner) windowSizes() (kStart, kEnd, kUnbound int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.trees[AnchorStartRelative]; t != nil {
		kStart = t.windowSize
	}
	if t := s.trees[AnchorEndRelative]; t != nil {
		kEnd = t.windowSize
	}
	if t := s.trees[AnchorUnbound]; t != nil {
		kUnbound = t.windowSize
	}
	return
}

func (s *Scanner) tree(a Anchor) *scanTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trees[a]
}

func (s *Scanner) codepageHint() string {
	s.mu.Lock()
	hint := s.Codepage
	s.mu.Unlock()
	if hint != "" {
		return hint
	}
	defaultCodepageMu.Lock()
	defer defaultCodepageMu.Unlock()
	return defaultCodepageHint
}

// ScanBuffer feeds data into state as the next contiguous chunk of the
// stream. It fails with ARGUMENT/INVALID_VALUE on a nil scanner, state, or
// data, and with RUNTIME/VALUE_ALREADY_SET if state is already DONE.
func (s *Scanner) ScanBuffer(state *ScanState, data []byte) error {
	if s == nil || state == nil || data == nil {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"scan_buffer: scanner, state, and data must be non-nil")
	}
	if !s.IsPrepared() {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.InitializeFailed},
			"scan_buffer: scanner has not been prepared")
	}
	return state.feed(data)
}

// Finalize releases pending end-relative matches once the caller knows the
// total stream size, and transitions state to DONE.
func (s *Scanner) Finalize(state *ScanState, totalSize int64) error {
	if s == nil || state == nil {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"finalize: scanner and state must be non-nil")
	}
	return state.finalize(totalSize)
}
