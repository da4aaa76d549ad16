package sigtree

import "github.com/corvid-labs/sigscan/sigerr"

// signatureTable owns all signatures registered with a Scanner and enforces
// unique identifiers. Insertion order is preserved so that tree-building is
// deterministic across runs given the same add_signature call sequence.
type signatureTable struct {
	byID  map[string]*Signature
	order []*Signature
}

func newSignatureTable() *signatureTable {
	return &signatureTable{byID: make(map[string]*Signature)}
}

func (t *signatureTable) add(sig *Signature) error {
	if _, exists := t.byID[sig.Identifier]; exists {
		return sigerr.New(sigerr.Kind{Domain: sigerr.Runtime, Code: sigerr.ValueAlreadySet},
			"signature identifier %q already registered", sig.Identifier)
	}
	t.byID[sig.Identifier] = sig
	t.order = append(t.order, sig)
	return nil
}

func (t *signatureTable) get(id string) (*Signature, bool) {
	sig, ok := t.byID[id]
	return sig, ok
}

func (t *signatureTable) len() int { return len(t.order) }

// byAnchor returns the signatures with the given anchor, in insertion order.
func (t *signatureTable) byAnchor(a Anchor) []*Signature {
	var out []*Signature
	for _, sig := range t.order {
		if sig.Anchor == a {
			out = append(out, sig)
		}
	}
	return out
}
