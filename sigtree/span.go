package sigtree

// candidateSpan pairs a signature with the window-relative byte span
// [lo, hi) it occupies once its anchor offset has been normalised, per
// spec §9's "normalise this at prepare time so that all subsequent
// arithmetic uses non-negative window-relative positions".
type candidateSpan struct {
	sig *Signature
	lo  int
	hi  int
}

// spansForGroup computes the window-relative span of every signature in an
// anchor group and the window size (K) that group's tree needs.
//
// Start-relative: the window is the header buffer, starting at stream
// offset 0, so the window-relative span equals the raw offsets.
//
// End-relative: the window is the footer buffer, holding the last K bytes
// of the stream. A signature's raw Offset is a non-positive distance from
// one-past-end; its window-relative start is K+Offset, which is why K must
// be computed as the max distance-from-end (-Offset) across the group
// before the spans themselves can be computed.
//
// Unbound: the window is the "active window" used to evaluate a single
// candidate start position; span is always [0, len(pattern)) relative to
// that position, and K is the longest pattern in the group (the number of
// trailing bytes that must be buffered across a buffer boundary).
func spansForGroup(anchor Anchor, sigs []*Signature) (spans []*candidateSpan, windowSize int) {
	switch anchor {
	case AnchorStartRelative:
		for _, sig := range sigs {
			lo := sig.Offset
			hi := lo + len(sig.Pattern)
			if hi > windowSize {
				windowSize = hi
			}
			spans = append(spans, &candidateSpan{sig: sig, lo: lo, hi: hi})
		}
	case AnchorEndRelative:
		for _, sig := range sigs {
			distance := -sig.Offset
			if distance > windowSize {
				windowSize = distance
			}
		}
		for _, sig := range sigs {
			lo := windowSize + sig.Offset
			hi := lo + len(sig.Pattern)
			spans = append(spans, &candidateSpan{sig: sig, lo: lo, hi: hi})
		}
	case AnchorUnbound:
		for _, sig := range sigs {
			hi := len(sig.Pattern)
			if hi > windowSize {
				windowSize = hi
			}
			spans = append(spans, &candidateSpan{sig: sig, lo: 0, hi: hi})
		}
	}
	return spans, windowSize
}
