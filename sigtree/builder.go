package sigtree

import "sort"

// buildScanTree compiles a non-empty list of candidate spans into a decision
// tree per spec §4.2. The recursion always picks a split offset that lies
// within every span it distinguishes between (the §3 node invariant);
// signatures indifferent to the chosen offset are carried into every
// explicit branch as well as the any-other fallback, so completeness holds
// regardless of which explicit byte is observed.
func buildScanTree(spans []*candidateSpan) *scanTree {
	if len(spans) == 0 {
		return &scanTree{root: &node{leaf: true}}
	}
	root := build(spans, map[int]bool{})
	return &scanTree{root: root}
}

func build(spans []*candidateSpan, used map[int]bool) *node {
	if len(spans) <= 1 {
		return &node{leaf: true, candidates: spans}
	}

	best, ok := pickOffset(spans, used)
	if !ok {
		return &node{leaf: true, candidates: spans}
	}

	byValue := map[byte][]*candidateSpan{}
	var indifferent []*candidateSpan
	for _, c := range spans {
		if best < c.lo || best >= c.hi {
			indifferent = append(indifferent, c)
			continue
		}
		b := c.sig.Pattern[best-c.lo]
		byValue[b] = append(byValue[b], c)
	}

	nextUsed := make(map[int]bool, len(used)+1)
	for k := range used {
		nextUsed[k] = true
	}
	nextUsed[best] = true

	values := make([]byte, 0, len(byValue))
	for b := range byValue {
		values = append(values, b)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	children := make(map[byte]*node, len(values))
	for _, b := range values {
		bucket := append(append([]*candidateSpan{}, byValue[b]...), indifferent...)
		children[b] = build(bucket, nextUsed)
	}

	var anyChild *node
	if len(indifferent) > 0 {
		anyChild = build(indifferent, nextUsed)
	}

	return &node{offset: best, children: children, any: anyChild}
}

// pickOffset selects the split offset per the heuristic in spec §4.2:
// minimise the largest resulting child, tie-break by fewest children, then
// by fewest total signatures assigned across children, then by lowest
// offset. It returns ok=false if no unused offset actually splits spans
// into more than one non-empty branch.
func pickOffset(spans []*candidateSpan, used map[int]bool) (int, bool) {
	candidateOffsets := map[int]bool{}
	for _, c := range spans {
		for p := c.lo; p < c.hi; p++ {
			if !used[p] {
				candidateOffsets[p] = true
			}
		}
	}

	var best splitScore
	for p := range candidateOffsets {
		byValue := map[byte]int{}
		indifferent := 0
		for _, c := range spans {
			if p < c.lo || p >= c.hi {
				indifferent++
				continue
			}
			byValue[c.sig.Pattern[p-c.lo]]++
		}
		numBranch := len(byValue)
		maxBranch := 0
		total := 0
		for _, n := range byValue {
			sz := n + indifferent
			if sz > maxBranch {
				maxBranch = sz
			}
			total += sz
		}
		if indifferent > 0 {
			numBranch++
			if indifferent > maxBranch {
				maxBranch = indifferent
			}
			total += indifferent
		}
		if numBranch < 2 {
			continue // doesn't actually split spans
		}
		cand := splitScore{maxBranch: maxBranch, numBranch: numBranch, totalSigs: total, offset: p, valid: true}
		if !best.valid || better(cand, best) {
			best = cand
		}
	}
	if !best.valid {
		return 0, false
	}
	return best.offset, true
}

// splitScore captures the comparison tuple for a candidate split offset.
type splitScore struct {
	maxBranch int
	numBranch int
	totalSigs int
	offset    int
	valid     bool
}

func better(a, b splitScore) bool {
	if a.maxBranch != b.maxBranch {
		return a.maxBranch < b.maxBranch
	}
	if a.numBranch != b.numBranch {
		return a.numBranch < b.numBranch
	}
	if a.totalSigs != b.totalSigs {
		return a.totalSigs < b.totalSigs
	}
	return a.offset < b.offset
}
