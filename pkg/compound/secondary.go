package compound

import (
	"errors"
	"sort"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

// ErrSecondaryAxis is returned by SolveSecondary when an accepted
// (HD, CD, ODD, 7K) bundle has no valid 8K (or, with Solve4T enabled,
// 4T) completion.
var ErrSecondaryAxis = errors.New("compound: no valid secondary axis completion")

// SolveSecondary returns a copy of c with its 8K and (if opts.Solve4T)
// 4T axes filled in, wrapping Solve8K/Solve4T's bool failures into
// ErrSecondaryAxis for callers that want a single-candidate error
// rather than the bulk search's silent skip.
func SolveSecondary(c Candidate, opts Options) (Candidate, error) {
	c8k, diff, ok := Solve8K(c.HD, c.CD, c.ODD, c.C7K, opts.SevensApart)
	if !ok {
		return Candidate{}, ErrSecondaryAxis
	}
	c.C8K, c.Has8K = c8k, true

	if opts.Solve4T {
		c4t, ok := Solve4T(c.HD, c.CD, c.ODD, c.C7K, diff)
		if !ok {
			return Candidate{}, ErrSecondaryAxis
		}
		c.C4T, c.Has4T = c4t, true
	}
	return c, nil
}

// Solve8K constructs a candidate 8K axis from an accepted (HD, CD,
// ODD, 7K) bundle by clearing exactly one "odd, 7K-set" bit from each
// of the four suits. It returns the first
// combination whose result is bracelet-valid (and, when sevensApart is
// true, also satisfies SevensApart on the cleared-bit difference), or
// ok=false if no combination works.
func Solve8K(hd, cd, odd, c7k bracelet.Sequence, sevensApart bool) (c8k, diff bracelet.Sequence, ok bool) {
	suits := suitsOf(hd, cd)

	var candidates [4][]int
	for s, suitMask := range suits {
		candidates[s] = positionsWhere(func(i int) bool {
			return bit(odd, i) == 1 && bit(c7k, i) == 1 && bit(suitMask, i) == 1
		})
	}
	for _, c := range candidates {
		if len(c) == 0 {
			return 0, 0, false
		}
	}

	var chosen [4]int
	var search func(suit int) (bracelet.Sequence, bracelet.Sequence, bool)
	search = func(suit int) (bracelet.Sequence, bracelet.Sequence, bool) {
		if suit == 4 {
			var clear bracelet.Sequence
			for _, pos := range chosen {
				clear |= 1 << uint(pos)
			}
			candidate := c7k &^ clear
			if !bracelet.IsValid(candidate, false) {
				return 0, 0, false
			}
			d := c7k ^ candidate
			if sevensApart && !SevensApart(d) {
				return 0, 0, false
			}
			return candidate, d, true
		}
		for _, pos := range candidates[suit] {
			chosen[suit] = pos
			if c, d, ok := search(suit + 1); ok {
				return c, d, true
			}
		}
		return 0, 0, false
	}
	return search(0)
}

// SevensApart reports whether the set bits of diff (normally the four
// bits cleared by Solve8K) are pairwise at least 6 apart cyclically,
// including the gap from the last bit back around to the first.
func SevensApart(diff bracelet.Sequence) bool {
	positions := positionsWhere(func(i int) bool { return bit(diff, i) == 1 })
	if len(positions) < 2 {
		return true
	}
	sort.Ints(positions)
	n := len(positions)
	for i := 0; i < n; i++ {
		next := positions[(i+1)%n]
		cur := positions[i]
		gap := next - cur
		if gap <= 0 {
			gap += bracelet.Len
		}
		if gap < 6 {
			return false
		}
	}
	return true
}

// roleLists partitions a suit's positions (excluding the 4 pinned
// positions from the c7k/c8k diff) into four (ODD, 7K) roles: oddHigh
// (odd=1,7k=1), evenLow (odd=0,7k=0), evenHigh (odd=0,7k=1), oddLow
// (odd=1,7k=0).
type roleLists struct {
	oddHigh, evenLow, evenHigh, oddLow []int
}

func partitionRoles(suitMask, odd, c7k, pinned bracelet.Sequence) roleLists {
	var r roleLists
	for i := 0; i < bracelet.Len; i++ {
		if bit(suitMask, i) == 0 || bit(pinned, i) == 1 {
			continue
		}
		o, k := bit(odd, i), bit(c7k, i)
		switch {
		case o == 1 && k == 1:
			r.oddHigh = append(r.oddHigh, i)
		case o == 0 && k == 0:
			r.evenLow = append(r.evenLow, i)
		case o == 0 && k == 1:
			r.evenHigh = append(r.evenHigh, i)
		case o == 1 && k == 0:
			r.oddLow = append(r.oddLow, i)
		}
	}
	return r
}

// suitTransform is one candidate (clear,set) bitmask pair for a single
// suit: clear two oddHigh positions and one evenHigh position, set two
// evenLow positions and one oddLow position.
type suitTransform struct {
	clear, set bracelet.Sequence
}

// transformsFor enumerates every suitTransform available for one
// suit's role partition.
func transformsFor(r roleLists) []suitTransform {
	var out []suitTransform
	combinations(r.oddHigh, 2, func(clearOddHigh []int) bool {
		combinations(r.evenHigh, 1, func(clearEvenHigh []int) bool {
			combinations(r.evenLow, 2, func(setEvenLow []int) bool {
				combinations(r.oddLow, 1, func(setOddLow []int) bool {
					var t suitTransform
					for _, p := range clearOddHigh {
						t.clear |= 1 << uint(p)
					}
					for _, p := range clearEvenHigh {
						t.clear |= 1 << uint(p)
					}
					for _, p := range setEvenLow {
						t.set |= 1 << uint(p)
					}
					for _, p := range setOddLow {
						t.set |= 1 << uint(p)
					}
					out = append(out, t)
					return true
				})
				return true
			})
			return true
		})
		return true
	})
	return out
}

// Solve4T builds c4t by rearranging bits of c7k while preserving the 4
// bits pinned by diff (the c7k/c8k diff), applying one suitTransform
// per suit, and returning the first combination whose resulting
// sequence is bracelet-valid.
func Solve4T(hd, cd, odd, c7k, diff bracelet.Sequence) (c4t bracelet.Sequence, ok bool) {
	suits := suitsOf(hd, cd)

	var perSuit [4][]suitTransform
	for s, suitMask := range suits {
		roles := partitionRoles(suitMask, odd, c7k, diff)
		perSuit[s] = transformsFor(roles)
		if len(perSuit[s]) == 0 {
			return 0, false
		}
	}

	var search func(suit int, acc bracelet.Sequence) (bracelet.Sequence, bool)
	search = func(suit int, acc bracelet.Sequence) (bracelet.Sequence, bool) {
		if suit == 4 {
			if bracelet.IsValid(acc, false) {
				return acc, true
			}
			return 0, false
		}
		for _, t := range perSuit[suit] {
			candidate := (acc &^ t.clear) | t.set
			if c, ok := search(suit+1, candidate); ok {
				return c, true
			}
		}
		return 0, false
	}
	return search(0, c7k)
}

func positionsWhere(pred func(i int) bool) []int {
	var out []int
	for i := 0; i < bracelet.Len; i++ {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// combinations calls yield once per k-element combination of items,
// in index order, stopping early if yield returns false.
func combinations(items []int, k int, yield func([]int) bool) bool {
	n := len(items)
	if k == 0 {
		return yield(nil)
	}
	if k > n {
		return true
	}
	chosen := make([]int, k)
	var rec func(start, depth int) bool
	rec = func(start, depth int) bool {
		if depth == k {
			return yield(append([]int(nil), chosen...))
		}
		for i := start; i <= n-(k-depth); i++ {
			chosen[depth] = items[i]
			if !rec(i+1, depth+1) {
				return false
			}
		}
		return true
	}
	return rec(0, 0)
}
