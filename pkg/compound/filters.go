// Package compound implements the compound search and the
// secondary-axis solvers: pairing cached primitive sequences under
// overlap and density constraints to find a candidate deck-coding
// bundle.
package compound

import (
	"math/bits"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

// suitsOf returns the four per-bit conjunctions {HD∧CD, ¬HD∧CD, HD∧¬CD,
// ¬HD∧¬CD} as a 52-bit sequence each, indexed [spade,club,heart,diamond]
// to match deckcode.SuitFromBits's (HD<<1)|CD convention.
func suitsOf(hd, cd bracelet.Sequence) [4]bracelet.Sequence {
	const mask = bracelet.Sequence(1)<<52 - 1
	notHD := ^hd & mask
	notCD := ^cd & mask
	return [4]bracelet.Sequence{
		notHD & notCD, // spade: HD=0,CD=0
		notHD & cd,    // club:  HD=0,CD=1
		hd & notCD,    // heart: HD=1,CD=0
		hd & cd,       // diamond: HD=1,CD=1
	}
}

// OverlapFilter is the HD×CD overlap filter: each of the four suit
// conjunctions must have popcount exactly 13, and the derived
// hc = (HD∧¬CD)∨(¬HD∧CD) sequence must itself be bracelet-valid.
func OverlapFilter(hd, cd bracelet.Sequence) (hc bracelet.Sequence, ok bool) {
	suits := suitsOf(hd, cd)
	for _, s := range suits {
		if bits.OnesCount64(uint64(s)) != 13 {
			return 0, false
		}
	}
	hc = suits[2] | suits[1] // heart(HD∧¬CD) | club(¬HD∧CD)
	if !bracelet.IsValid(hc, false) {
		return 0, false
	}
	return hc, true
}

// OddFilter is the odd filter: within each suit, the odd sequence must
// mark exactly 7 positions odd and 6 even.
func OddFilter(hd, cd, odd bracelet.Sequence) bool {
	suits := suitsOf(hd, cd)
	for _, s := range suits {
		oddInSuit := bits.OnesCount64(uint64(s & odd))
		if oddInSuit != 7 {
			return false
		}
	}
	return true
}

// wantedHistogram is the required 16-bin joint (HD,CD,ODD,7K)
// histogram: {3,3,3,4} repeated four times.
var wantedHistogram = [16]int{3, 3, 3, 4, 3, 3, 3, 4, 3, 3, 3, 4, 3, 3, 3, 4}

// SevenKFilter is the 7K filter: the 00-overlap count between c7k and
// each of {odd, HD, CD, hc} must be 12 (40 positions have at least one
// of the pair set), and the 16-way joint histogram of (HD, CD, ODD,
// 7K) across all 52 positions must exactly match wantedHistogram.
func SevenKFilter(hd, cd, hc, odd, c7k bracelet.Sequence) bool {
	const mask = bracelet.Sequence(1)<<52 - 1
	for _, axis := range [4]bracelet.Sequence{odd, hd, cd, hc} {
		zeroOverlap := bits.OnesCount64(uint64(^axis & ^c7k & mask))
		if zeroOverlap != 12 {
			return false
		}
	}

	var histogram [16]int
	for i := 0; i < bracelet.Len; i++ {
		code := bit(hd, i) | bit(cd, i)<<1 | bit(odd, i)<<2 | bit(c7k, i)<<3
		histogram[code]++
	}
	return histogram == wantedHistogram
}

func bit(seq bracelet.Sequence, i int) uint8 {
	return uint8((seq >> uint(i)) & 1)
}
