package deckcode

import (
	"testing"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

// codeForValue maps a card value to the TableUmake join code that
// produces it (concrete codes for the five unambiguous values, marker
// codes for the four ambiguity pairs), so a synthetic Bundle can be
// built by inverting TableUmake.
func codeForValue(v uint8) uint8 {
	switch v {
	case 2:
		return 0
	case 1, 3:
		return 1
	case 12:
		return 6
	case 11, 13:
		return 7
	case 4, 6:
		return 8
	case 5:
		return 9
	case 7:
		return 11
	case 8, 10:
		return 14
	case 9:
		return 15
	default:
		panic("codeForValue: value out of range")
	}
}

// standardDeck returns a deck with each of the 13 values occurring
// once per suit (52 cards, the multiset Realize must always preserve).
func standardDeck() [52]Card {
	var d [52]Card
	i := 0
	for _, s := range []Suit{Spade, Club, Heart, Diamond} {
		for v := uint8(1); v <= 13; v++ {
			d[i] = Card{Suit: s, Value: v}
			i++
		}
	}
	return d
}

// bundleForDeck inverts TableUmake against deck to produce a Bundle
// whose Realize output (for any ambiguity resolution) is a permutation
// of deck's values within each suit.
func bundleForDeck(deck [52]Card) Bundle {
	var b Bundle
	for i, c := range deck {
		hd := uint8(c.Suit) >> 1
		cd := uint8(c.Suit) & 1
		code := codeForValue(c.Value)
		odd := code & 1
		x := (code >> 1) & 1
		y := (code >> 2) & 1
		z := (code >> 3) & 1
		if hd == 1 {
			b.HD |= 1 << uint(i)
		}
		if cd == 1 {
			b.CD |= 1 << uint(i)
		}
		if odd == 1 {
			b.ODD |= 1 << uint(i)
		}
		if x == 1 {
			b.X |= 1 << uint(i)
		}
		if y == 1 {
			b.Y |= 1 << uint(i)
		}
		if z == 1 {
			b.Z |= 1 << uint(i)
		}
	}
	return b
}

func valueCounts(deck Deck) map[uint8]int {
	counts := make(map[uint8]int)
	for _, c := range deck {
		counts[c.Value]++
	}
	return counts
}

func TestRealizeProducesFullMultiset(t *testing.T) {
	deck := standardDeck()
	bundle := bundleForDeck(deck)

	result, err := Realize(bundle, TableUmake, false, true)
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}

	counts := valueCounts(result.Deck)
	for v := uint8(1); v <= 13; v++ {
		if counts[v] != 4 {
			t.Errorf("value %d occurs %d times, want 4", v, counts[v])
		}
	}

	for _, s := range []Suit{Spade, Club, Heart, Diamond} {
		seen := make(map[uint8]bool)
		for i, c := range result.Deck {
			if c.Suit != s {
				continue
			}
			if seen[c.Value] {
				t.Errorf("suit %s has duplicate value %d at position %d", s, c.Value, i)
			}
			seen[c.Value] = true
		}
		if len(seen) != 13 {
			t.Errorf("suit %s has %d distinct values, want 13", s, len(seen))
		}
	}
}

func TestResolveEveryAmbiguityChoiceKeepsMultiset(t *testing.T) {
	deck := standardDeck()
	bundle := bundleForDeck(deck)

	cells, err := partialDeck(bundle, TableUmake)
	if err != nil {
		t.Fatalf("partialDeck: %v", err)
	}
	groups, err := indexAmbiguities(cells)
	if err != nil {
		t.Fatalf("indexAmbiguities: %v", err)
	}

	for _, i := range []uint16{0, 1, 0xFFFF, 0b1010101010101010} {
		got := resolve(cells, groups, i)
		counts := valueCounts(got)
		for v := uint8(1); v <= 13; v++ {
			if counts[v] != 4 {
				t.Errorf("i=%#x: value %d occurs %d times, want 4", i, v, counts[v])
			}
		}
	}
}

func TestRealizeRejectsIllegalCode(t *testing.T) {
	allOnes := bracelet.Sequence(1)<<52 - 1

	// code 3 = 0b0011 (ODD=1, X=1, Y=0, Z=0): TableUmake[3] is none.
	var bundle Bundle
	bundle.ODD = allOnes
	bundle.X = allOnes

	_, err := Realize(bundle, TableUmake, false, true)
	if err == nil {
		t.Fatal("Realize: expected error for illegal join code, got nil")
	}
}

func TestRealizeCutSetsTopCardIndexInRange(t *testing.T) {
	// With cut=true, Realize must succeed on a real bundle and report a
	// TopCardIndex inside the deck.
	deck := standardDeck()
	bundle := bundleForDeck(deck)

	result, err := Realize(bundle, TableUmake, true, true)
	if err != nil {
		t.Fatalf("Realize: %v", err)
	}
	if result.TopCardIndex < 0 || result.TopCardIndex >= 52 {
		t.Errorf("TopCardIndex = %d, want in [0,52)", result.TopCardIndex)
	}
}
