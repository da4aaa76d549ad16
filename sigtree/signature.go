// Package sigtree implements the scan engine: the multi-pattern scan-tree
// builder and the streaming scan-state machine that together identify which
// of a set of registered literal byte signatures occur in a byte stream.
package sigtree

import "github.com/corvid-labs/sigscan/sigerr"

// Anchor selects the origin a Signature's Offset is measured from.
type Anchor int

const (
	// AnchorStartRelative anchors Offset to the start of the stream;
	// Offset must be >= 0.
	AnchorStartRelative Anchor = iota
	// AnchorEndRelative anchors Offset to one-past-the-end of the stream;
	// Offset must be <= 0 and is the (negative) distance of the pattern's
	// first byte before end-of-stream.
	AnchorEndRelative
	// AnchorUnbound signatures may match at any offset; Offset is ignored.
	AnchorUnbound
)

func (a Anchor) String() string {
	switch a {
	case AnchorStartRelative:
		return "start_relative"
	case AnchorEndRelative:
		return "end_relative"
	case AnchorUnbound:
		return "unbound"
	default:
		return "unknown"
	}
}

// MaxPatternLength is the engine-chosen maximum signature pattern length.
const MaxPatternLength = 65536

// Signature is an immutable record of a named literal pattern, its anchor,
// and its offset. Once added to a Scanner it is never mutated.
type Signature struct {
	Identifier string
	Pattern    []byte
	Offset     int
	Anchor     Anchor
}

// PatternLength returns the length of the signature's literal pattern.
func (s *Signature) PatternLength() int { return len(s.Pattern) }

// validate checks the invariants from spec §3. It does not check
// uniqueness of Identifier; that is the signatureTable's job.
func (s *Signature) validate() error {
	if s.Identifier == "" {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"signature identifier must not be empty")
	}
	if len(s.Pattern) == 0 {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.InvalidValue},
			"signature %q: pattern must not be empty", s.Identifier)
	}
	if len(s.Pattern) > MaxPatternLength {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Argument, Code: sigerr.ValueExceedsMax},
			"signature %q: pattern length %d exceeds maximum %d", s.Identifier, len(s.Pattern), MaxPatternLength)
	}
	switch s.Anchor {
	case AnchorStartRelative:
		if s.Offset < 0 {
			return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.UnsupportedValue},
				"signature %q: start-relative offset must be >= 0, got %d", s.Identifier, s.Offset)
		}
	case AnchorEndRelative:
		if s.Offset > 0 {
			return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.UnsupportedValue},
				"signature %q: end-relative offset must be <= 0, got %d", s.Identifier, s.Offset)
		}
	case AnchorUnbound:
		// Offset is ignored.
	default:
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.UnsupportedValue},
			"signature %q: unrecognised anchor %v", s.Identifier, s.Anchor)
	}
	return nil
}
