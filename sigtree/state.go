package sigtree

import (
	"sort"

	"github.com/corvid-labs/sigscan/sigerr"
)

// Phase is the scan-state's position in the lifecycle described in spec
// §4.3. It is exported for callers that want to introspect progress (e.g.
// a CLI progress indicator); the state machine itself is driven entirely
// through Scanner.ScanBuffer and Scanner.Finalize.
type Phase int

const (
	PhaseFresh Phase = iota
	PhaseInHeader
	PhaseBody
	PhaseInFooter
	PhaseDone
)

// ScanState is the per-scan mutable state: absolute stream position, the
// buffered tail of the active window, and the matches accumulated so far.
// It holds a non-owning reference to the Scanner that created it; the
// caller must keep that Scanner alive for the ScanState's lifetime. A
// ScanState must not be fed from more than one goroutine concurrently.
type ScanState struct {
	scanner *Scanner
	phase   Phase

	kStart, kEnd, kUnbound int

	absolutePosition int64

	headerBuf       []byte
	headerEvaluated bool

	footerBuf []byte

	tail []byte // carried trailing bytes for the unbound group

	matches []Match
	seen    map[matchKey]bool

	finalSize int64

	// AbortFunc, if set, is polled at the start of every ScanBuffer call (i.e.
	// between chunks, per spec §5). A true return aborts the scan.
	AbortFunc func() bool
}

// NewScanState creates an empty ScanState bound to scanner. scanner must
// already be prepared; the window sizes used throughout the scan are
// captured at this point.
func NewScanState(scanner *Scanner) *ScanState {
	kStart, kEnd, kUnbound := scanner.windowSizes()
	return &ScanState{
		scanner: scanner,
		phase:   PhaseFresh,
		kStart:  kStart,
		kEnd:    kEnd,
		kUnbound: kUnbound,
		seen:    make(map[matchKey]bool),
	}
}

// Phase reports the scan-state's current lifecycle phase.
func (s *ScanState) Phase() Phase { return s.phase }

// Position reports the absolute stream offset of the next byte to be fed.
func (s *ScanState) Position() int64 { return s.absolutePosition }

func (s *ScanState) reportMatch(id string, offset int64) {
	if offset < 0 {
		return
	}
	key := matchKey{id: id, offset: offset}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.matches = append(s.matches, Match{Identifier: id, Offset: offset})
}

// feed processes the next contiguous chunk of the stream.
func (s *ScanState) feed(data []byte) error {
	if s.phase == PhaseDone {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet},
			"scan state is already done")
	}
	if s.AbortFunc != nil && s.AbortFunc() {
		s.phase = PhaseDone
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.AbortRequested},
			"scan aborted between chunks")
	}

	if s.phase == PhaseFresh {
		s.phase = PhaseInHeader
	}

	// Start-relative: accumulate the header buffer and evaluate once ready.
	if !s.headerEvaluated {
		need := s.kStart - len(s.headerBuf)
		if need > 0 {
			take := need
			if take > len(data) {
				take = len(data)
			}
			s.headerBuf = append(s.headerBuf, data[:take]...)
		}
		if len(s.headerBuf) >= s.kStart {
			s.evaluateHeader()
		}
	}

	// Footer: maintain a rolling window of the last kEnd bytes seen so
	// far, regardless of phase — the footer may overlap the header on
	// short streams.
	if s.kEnd > 0 {
		s.footerBuf = append(s.footerBuf, data...)
		if len(s.footerBuf) > s.kEnd {
			trimmed := make([]byte, s.kEnd)
			copy(trimmed, s.footerBuf[len(s.footerBuf)-s.kEnd:])
			s.footerBuf = trimmed
		}
	}

	// Unbound: evaluate every window-aligned byte position that has a
	// full kUnbound trailing bytes available; defer the rest into tail.
	if s.kUnbound > 0 {
		oldTailLen := len(s.tail)
		combined := make([]byte, 0, oldTailLen+len(data))
		combined = append(combined, s.tail...)
		combined = append(combined, data...)
		windowStart := s.absolutePosition - int64(oldTailLen)

		limit := len(combined) - s.kUnbound
		if limit >= 0 {
			tree := s.scanner.tree(AnchorUnbound)
			for p := 0; p <= limit; p++ {
				win := window{data: combined[p:]}
				tree.evaluate(win, func(sig *Signature, lo int) {
					s.reportMatch(sig.Identifier, windowStart+int64(p+lo))
				})
			}
			s.tail = append([]byte(nil), combined[limit+1:]...)
		} else {
			s.tail = combined
		}
	}

	if s.headerEvaluated && s.phase == PhaseInHeader {
		s.phase = PhaseBody
	}

	s.absolutePosition += int64(len(data))
	return nil
}

func (s *ScanState) evaluateHeader() {
	tree := s.scanner.tree(AnchorStartRelative)
	win := window{data: s.headerBuf}
	tree.evaluate(win, func(sig *Signature, lo int) {
		s.reportMatch(sig.Identifier, int64(lo))
	})
	s.headerEvaluated = true
}

// finalize releases pending end-relative matches now that totalSize is
// known, and transitions the scan state to Done.
func (s *ScanState) finalize(totalSize int64) error {
	if s.phase == PhaseDone {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet},
			"scan state is already done")
	}

	// A stream shorter than K_start never reaches header_ready via feed;
	// evaluate whatever prefix was buffered now.
	if !s.headerEvaluated {
		s.evaluateHeader()
	}

	// The unbound group only evaluates a window start position once a full
	// kUnbound trailing bytes have been observed, deferring the rest into
	// tail. At end of stream no more bytes are coming, so every remaining
	// start position in tail must be evaluated now against whatever bytes
	// are actually available, exactly as the header tree is evaluated
	// against a short prefix above.
	if s.kUnbound > 0 && len(s.tail) > 0 {
		windowStart := s.absolutePosition - int64(len(s.tail))
		tree := s.scanner.tree(AnchorUnbound)
		for p := 0; p < len(s.tail); p++ {
			win := window{data: s.tail[p:]}
			tree.evaluate(win, func(sig *Signature, lo int) {
				s.reportMatch(sig.Identifier, windowStart+int64(p+lo))
			})
		}
	}

	s.finalSize = totalSize
	s.phase = PhaseInFooter

	if s.kEnd > 0 {
		pad := 0
		if totalSize < int64(s.kEnd) {
			pad = s.kEnd - int(totalSize)
		}
		tree := s.scanner.tree(AnchorEndRelative)
		win := window{data: s.footerBuf, pad: pad}
		tree.evaluate(win, func(sig *Signature, lo int) {
			s.reportMatch(sig.Identifier, totalSize-int64(s.kEnd)+int64(lo))
		})
	}

	s.phase = PhaseDone
	return nil
}

// Matches returns the matches confirmed so far, in the order defined by
// spec §4.4: start-relative first, then unbound, then end-relative, each
// group in non-decreasing offset order with ties in signature insertion
// order, and with duplicate (identifier, offset) pairs suppressed.
func (s *ScanState) Matches() []Match {
	out := make([]Match, len(s.matches))
	copy(out, s.matches)
	groupRank := map[Anchor]int{AnchorStartRelative: 0, AnchorUnbound: 1, AnchorEndRelative: 2}
	rank := make(map[string][2]int)
	for i, sig := range s.scanner.Signatures() {
		rank[sig.Identifier] = [2]int{groupRank[sig.Anchor], i}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := rank[out[i].Identifier], rank[out[j].Identifier]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}
		return a[1] < b[1]
	})
	return out
}
