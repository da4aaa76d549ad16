package sigtree

import (
	"math/rand"
	"sort"
	"testing"
)

// scanAll feeds data to a freshly prepared scanner split into the given
// chunks (concatenated, chunks must cover all of data) and returns the
// sorted matches. It fails the test on any engine error.
func scanAll(t *testing.T, s *Scanner, data []byte, chunkSizes ...int) []Match {
	t.Helper()
	if err := s.Prepare(); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	state := NewScanState(s)

	if len(chunkSizes) == 0 {
		chunkSizes = []int{len(data)}
	}
	pos := 0
	for _, size := range chunkSizes {
		if size <= 0 {
			continue
		}
		end := pos + size
		if end > len(data) {
			end = len(data)
		}
		if pos >= end {
			continue
		}
		if err := s.ScanBuffer(state, data[pos:end]); err != nil {
			t.Fatalf("scan_buffer at %d: %v", pos, err)
		}
		pos = end
	}
	if pos < len(data) {
		if err := s.ScanBuffer(state, data[pos:]); err != nil {
			t.Fatalf("scan_buffer trailing: %v", err)
		}
	}
	if err := s.Finalize(state, int64(len(data))); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return sortMatches(state.Matches())
}

func sortMatches(m []Match) []Match {
	out := append([]Match{}, m...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out
}

// naiveMatches brute-forces every registered signature against data,
// honoring its anchor exactly as spec §3/§4.1 define it. It is the oracle
// the compiled scan tree's output is checked against.
func naiveMatches(sigs []*Signature, data []byte) []Match {
	var out []Match
	n := int64(len(data))
	for _, sig := range sigs {
		p := sig.Pattern
		switch sig.Anchor {
		case AnchorStartRelative:
			lo := sig.Offset
			if lo >= 0 && lo+len(p) <= len(data) && matchesAt(data, lo, p) {
				out = append(out, Match{Identifier: sig.Identifier, Offset: int64(lo)})
			}
		case AnchorEndRelative:
			lo64 := n + int64(sig.Offset)
			if lo64 >= 0 && lo64+int64(len(p)) <= n && matchesAt(data, int(lo64), p) {
				out = append(out, Match{Identifier: sig.Identifier, Offset: lo64})
			}
		case AnchorUnbound:
			for lo := 0; lo+len(p) <= len(data); lo++ {
				if matchesAt(data, lo, p) {
					out = append(out, Match{Identifier: sig.Identifier, Offset: int64(lo)})
				}
			}
		}
	}
	return sortMatches(out)
}

func matchesAt(data []byte, lo int, pattern []byte) bool {
	if lo < 0 || lo+len(pattern) > len(data) {
		return false
	}
	for i, b := range pattern {
		if data[lo+i] != b {
			return false
		}
	}
	return true
}

func TestTreeMatchesNaiveOracleRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(20260730))
	alphabet := []byte("AB") // small alphabet maximizes accidental overlaps

	for trial := 0; trial < 40; trial++ {
		s := NewScanner()
		numSigs := 1 + rng.Intn(5)
		for i := 0; i < numSigs; i++ {
			patLen := 1 + rng.Intn(4)
			pattern := make([]byte, patLen)
			for j := range pattern {
				pattern[j] = alphabet[rng.Intn(len(alphabet))]
			}
			var anchor Anchor
			var offset int
			switch rng.Intn(3) {
			case 0:
				anchor = AnchorStartRelative
				offset = rng.Intn(6)
			case 1:
				anchor = AnchorEndRelative
				offset = -rng.Intn(6)
			default:
				anchor = AnchorUnbound
				offset = 0
			}
			id := string(rune('a' + i))
			if err := s.AddSignature(id, pattern, offset, anchor); err != nil {
				continue // degenerate combination (e.g. duplicate), skip
			}
		}

		dataLen := rng.Intn(24)
		data := make([]byte, dataLen)
		for j := range data {
			data[j] = alphabet[rng.Intn(len(alphabet))]
		}

		got := scanAll(t, s, data)
		want := naiveMatches(s.Signatures(), data)

		if !equalMatches(got, want) {
			t.Fatalf("trial %d: tree result %v != oracle %v (data=%q, sigs=%+v)",
				trial, got, want, data, s.Signatures())
		}
	}
}

func TestChunkInvarianceRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []byte("ABC")

	for trial := 0; trial < 30; trial++ {
		s := NewScanner()
		numSigs := 1 + rng.Intn(4)
		for i := 0; i < numSigs; i++ {
			patLen := 1 + rng.Intn(5)
			pattern := make([]byte, patLen)
			for j := range pattern {
				pattern[j] = alphabet[rng.Intn(len(alphabet))]
			}
			anchor := Anchor(rng.Intn(3))
			var offset int
			switch anchor {
			case AnchorStartRelative:
				offset = rng.Intn(8)
			case AnchorEndRelative:
				offset = -rng.Intn(8)
			}
			id := string(rune('a' + i))
			_ = s.AddSignature(id, pattern, offset, anchor)
		}

		dataLen := 5 + rng.Intn(40)
		data := make([]byte, dataLen)
		for j := range data {
			data[j] = alphabet[rng.Intn(len(alphabet))]
		}

		whole := scanAll(t, s, data)

		var chunks []int
		remaining := dataLen
		for remaining > 0 {
			c := 1 + rng.Intn(5)
			if c > remaining {
				c = remaining
			}
			chunks = append(chunks, c)
			remaining -= c
		}
		chunked := scanAll(t, s, data, chunks...)

		if !equalMatches(whole, chunked) {
			t.Fatalf("trial %d: whole-buffer scan %v != chunked scan %v (chunks=%v, data=%q)",
				trial, whole, chunked, chunks, data)
		}
	}
}

func equalMatches(a, b []Match) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
