// Package primitive implements the primitive sequence generator and
// the on-disk sequence cache of bracelet-valid axes.
package primitive

import "github.com/conmol/bracelet52/pkg/bracelet"

// move is one entry on the explicit DFS stack: "try placing bit at
// position length, given the partial state (value, length, pop, seen)".
// Kept as a flat value type so pushing/popping never allocates.
type move struct {
	value  bracelet.Sequence
	length int
	pop    int
	seen   uint64 // presence vector of 6-bit window codes already used
	bit    uint8  // the bit to place at position `length`
}

// initialStackCap is a starting capacity for the DFS stack, not a hard
// limit; Go's slice grows past it as needed.
const initialStackCap = 8192

// Generate enumerates all bracelet-valid 52-bit cyclic sequences with
// exactly k set bits (or, when k == 0, any population), calling emit
// for each one found. If emit returns false, enumeration stops early
// and Generate returns false; otherwise it runs to exhaustion and
// returns true.
//
// Traversal order is a depth-first search over an explicit move stack:
// starting from the empty sequence, each step tries to extend the
// partial sequence by one more bit, pruning as soon as the running
// population count exceeds k or a length-6 window repeats. The two
// children of a position (bit 0, bit 1) are pushed in that order so
// bit 1 is explored first (LIFO) — this fixes a single deterministic,
// reproducible traversal order, which is all the on-disk cache and the
// skip-count resume contract actually require. Branching fully on both
// bits, rather than forcing the first 6 bits to a single fixed path,
// is deliberate: it guarantees every bracelet-valid sequence of
// population k is individually reachable (and so addressable by
// ordinal position for the skip-count resume contract), at the cost of
// revisiting equivalent prefixes a forced-bit rule would skip (see
// DESIGN.md's Open Question resolution #6).
func Generate(k int, strict bool, emit func(bracelet.Sequence) bool) bool {
	stack := make([]move, 0, initialStackCap)
	stack = append(stack, move{bit: 0})
	stack = append(stack, move{bit: 1})

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		newValue := top.value | bracelet.Sequence(top.bit)<<uint(top.length)
		newLength := top.length + 1
		newPop := top.pop + int(top.bit)

		if k != 0 && newPop > k {
			continue
		}

		newSeen := top.seen
		if newLength >= bracelet.WindowLen {
			windowStart := newLength - bracelet.WindowLen
			window := (uint64(newValue) >> uint(windowStart)) & 0x3F
			bit := uint64(1) << window
			if newSeen&bit != 0 {
				continue
			}
			if strict && (window == 0 || window == 0x3F) {
				continue
			}
			newSeen |= bit
		}

		if newLength == bracelet.Len {
			if k != 0 && newPop != k {
				continue
			}
			if !checkWrapWindows(newValue, newSeen, strict) {
				continue
			}
			if !emit(newValue) {
				return false
			}
			continue
		}

		stack = append(stack, move{value: newValue, length: newLength, pop: newPop, seen: newSeen, bit: 0})
		stack = append(stack, move{value: newValue, length: newLength, pop: newPop, seen: newSeen, bit: 1})
	}
	return true
}

// checkWrapWindows verifies the 5 cyclic windows that wrap from the
// top of the sequence back to its bottom bits, once the full 52-bit
// sequence has been assembled.
func checkWrapWindows(seq bracelet.Sequence, seen uint64, strict bool) bool {
	extended := uint64(seq) | (uint64(seq&31) << bracelet.Len)
	for start := bracelet.Len - bracelet.WindowLen + 1; start < bracelet.Len; start++ {
		window := (extended >> uint(start)) & 0x3F
		bit := uint64(1) << window
		if seen&bit != 0 {
			return false
		}
		if strict && (window == 0 || window == 0x3F) {
			return false
		}
		seen |= bit
	}
	return true
}
