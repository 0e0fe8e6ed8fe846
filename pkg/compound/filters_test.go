package compound

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

func TestOverlapFilterRejectsUnbalancedSuits(t *testing.T) {
	// hd all set, cd all clear: suit conjunctions are {0,0,52,0}, not
	// four 13-popcount partitions.
	var hd bracelet.Sequence = (1 << 52) - 1
	var cd bracelet.Sequence = 0
	if _, ok := OverlapFilter(hd, cd); ok {
		t.Fatal("OverlapFilter accepted an unbalanced HD/CD pair")
	}
}

func TestOddFilterRejectsWrongPerSuitCount(t *testing.T) {
	var hd, cd bracelet.Sequence // both zero: the single suit (spade) is every position
	var odd bracelet.Sequence = (1 << 52) - 1 // every position odd: 52 odd in the one suit present, not 7
	if OddFilter(hd, cd, odd) {
		t.Fatal("OddFilter accepted an all-odd sequence against an unbalanced suit split")
	}
}

func TestSevenKFilterHistogramMismatch(t *testing.T) {
	var hd, cd, hc, odd, c7k bracelet.Sequence
	if SevenKFilter(hd, cd, hc, odd, c7k) {
		t.Fatal("SevenKFilter accepted an all-zero bundle (histogram is all in bin 0, not the required {3,3,3,4}x4)")
	}
}

func TestSevensApart(t *testing.T) {
	tests := []struct {
		name string
		diff bracelet.Sequence
		want bool
	}{
		{"empty", 0, true},
		{"one bit", 1, true},
		{
			"four bits evenly spaced at 13",
			seqFromPositions(0, 13, 26, 39),
			true,
		},
		{
			"two bits adjacent",
			seqFromPositions(0, 1, 20, 40),
			false,
		},
		{
			"wrap gap too small",
			seqFromPositions(0, 10, 20, 50), // gap from 50 back to 0 is only 2
			false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SevensApart(tc.diff); got != tc.want {
				t.Errorf("SevensApart(%v) = %v, want %v", tc.diff, got, tc.want)
			}
		})
	}
}

func seqFromPositions(positions ...int) bracelet.Sequence {
	var s bracelet.Sequence
	for _, p := range positions {
		s |= 1 << uint(p)
	}
	return s
}

// TestOverlapFilterHCEqualsXOR asserts that the derived HC sequence
// equals the symmetric difference of HD and CD restricted to 52
// positions, for any (HD, CD) pair — not just ones the overlap filter
// happens to accept, since the identity is a property of suitsOf's
// partition, independent of the popcount-13 condition.
func TestOverlapFilterHCEqualsXOR(t *testing.T) {
	const mask = bracelet.Sequence(1)<<52 - 1
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		hd := bracelet.Sequence(rnd.Uint64()) & mask
		cd := bracelet.Sequence(rnd.Uint64()) & mask
		suits := suitsOf(hd, cd)
		hc := suits[2] | suits[1]
		want := (hd ^ cd) & mask
		if hc != want {
			t.Fatalf("iteration %d: hc = %052b, want %052b (HD^CD)", i, uint64(hc), uint64(want))
		}
	}
}

func TestSuitsOfPartitionsAllPositions(t *testing.T) {
	hd := seqFromPositions(0, 1, 2, 3)
	cd := seqFromPositions(0, 2, 4, 6)
	suits := suitsOf(hd, cd)

	var union bracelet.Sequence
	total := 0
	for _, s := range suits {
		union |= s
		total += bits.OnesCount64(uint64(s))
	}
	const mask = bracelet.Sequence(1)<<52 - 1
	if union != mask {
		t.Errorf("suit partition does not cover all 52 positions")
	}
	if total != 52 {
		t.Errorf("suit partition popcounts sum to %d, want 52", total)
	}
	for i := range suits {
		for j := i + 1; j < len(suits); j++ {
			if suits[i]&suits[j] != 0 {
				t.Errorf("suit %d and suit %d overlap", i, j)
			}
		}
	}
}
