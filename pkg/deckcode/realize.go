package deckcode

import (
	"errors"
	"fmt"

	"github.com/conmol/bracelet52/pkg/bracelet"
)

// ErrIllegalCode is returned when a position's join code maps to the
// "none" entry of a lookup table.
var ErrIllegalCode = errors.New("deckcode: join code maps to no value")

// ErrIllegalAmbiguity is returned when an ambiguity marker does not
// appear exactly twice within a suit.
var ErrIllegalAmbiguity = errors.New("deckcode: ambiguity marker does not occur exactly twice per suit")

// partialCell is one position's resolved suit plus its (possibly
// ambiguous) value code.
type partialCell struct {
	suit  Suit
	value ValueCode
}

// Result is the output of Realize: the best-scoring deck found across
// the 2^16 ambiguity realizations, its predicate mask, its score, and
// (when requested) the rotation-to-bottom index.
type Result struct {
	Deck          Deck
	Predicates    PredicateBits
	Score         uint32
	TopCardIndex  int
	Degenerate    bool // see DESIGN.md, Open Question resolutions
}

// Realize decodes bundle into a partially ambiguous deck using table,
// enumerates all 2^16 assignments of the ambiguous pairs, tests the
// predicate catalog against each resulting complete deck, scores it,
// and returns the best one found.
//
// When cut is true, Result.TopCardIndex is set to the rotation offset
// that places the 9 of Diamonds at the bottom of the deck; this is a
// cosmetic post-processing step and does not affect which deck is
// chosen as best.
func Realize(bundle Bundle, table LookupTable, cut bool, includeSpecial bool) (*Result, error) {
	cells, err := partialDeck(bundle, table)
	if err != nil {
		return nil, err
	}

	groups, err := indexAmbiguities(cells)
	if err != nil {
		return nil, err
	}

	var best *Result
	for i := 0; i < 1<<16; i++ {
		deck := resolve(cells, groups, uint16(i))
		predicates := EvaluatePredicates(deck, bundle, includeSpecial)
		score := Score(deck, predicates)

		if best == nil || score > best.Score {
			best = &Result{Deck: deck, Predicates: predicates, Score: score}
		}
	}

	// When no realization supports any predicate beyond the seven
	// input-guaranteed ones, surface that as a diagnostic condition
	// instead of silently keeping whichever realization happened to be
	// scored first (see DESIGN.md).
	if best.Predicates&^guaranteedPredicateMask(bundle) == 0 {
		best.Degenerate = true
	}

	if cut {
		best.TopCardIndex = topCardIndex(best.Deck)
	}

	return best, nil
}

// partialDeck resolves each bundle position's suit and value code,
// producing a deck that may still contain ambiguous cells.
func partialDeck(b Bundle, table LookupTable) ([52]partialCell, error) {
	var cells [52]partialCell
	for i := 0; i < bracelet.Len; i++ {
		suit := SuitFromBits(bit(b.HD, i), bit(b.CD, i))
		code := b.joinCode(i)
		value := table[code]
		if value == none {
			return cells, fmt.Errorf("deckcode: position %d: %w", i, ErrIllegalCode)
		}
		cells[i] = partialCell{suit: suit, value: value}
	}
	return cells, nil
}

// ambiguityGroup records the two positions sharing one (marker, suit)
// pair, ordered by position index so bit assignment in resolve is
// deterministic.
type ambiguityGroup struct {
	low, high uint8 // candidate values, from the ValueCode that produced this group
	positions [2]int
}

// indexAmbiguities scans the deck, groups positions sharing an
// (ambiguous-marker, suit) pair, and rejects if any group doesn't have
// exactly two members.
func indexAmbiguities(cells [52]partialCell) ([16]ambiguityGroup, error) {
	var groups [16]ambiguityGroup
	var counts [16]int
	var seenLowHigh [16][2]uint8

	for i, cell := range cells {
		if !cell.value.IsAmbiguous {
			continue
		}
		idx := ambiguityIndex(cell.value.Pair, cell.suit)
		if counts[idx] >= 2 {
			return groups, fmt.Errorf("deckcode: marker %d suit %s: %w", cell.value.Pair, cell.suit, ErrIllegalAmbiguity)
		}
		groups[idx].positions[counts[idx]] = i
		seenLowHigh[idx] = [2]uint8{cell.value.Low, cell.value.High}
		counts[idx]++
	}
	for idx, c := range counts {
		if c == 0 {
			continue // this (marker,suit) combination simply doesn't occur
		}
		if c != 2 {
			return groups, fmt.Errorf("deckcode: marker/suit index %d occurred %d times: %w", idx, c, ErrIllegalAmbiguity)
		}
		groups[idx].low = seenLowHigh[idx][0]
		groups[idx].high = seenLowHigh[idx][1]
	}
	return groups, nil
}

// ambiguityIndex maps a (marker, suit) pair to a 0..15 slot.
func ambiguityIndex(pair AmbiguityPair, suit Suit) int {
	return int(pair-1)*4 + int(suit)
}

// resolve interprets bits of i as one binary choice per (marker,suit)
// group, filling the 32 ambiguous cells to produce one candidate
// complete deck.
func resolve(cells [52]partialCell, groups [16]ambiguityGroup, i uint16) Deck {
	var deck Deck
	for pos, cell := range cells {
		if !cell.value.IsAmbiguous {
			deck[pos] = Card{Suit: cell.suit, Value: cell.value.Concrete}
		}
	}
	for idx, g := range groups {
		if g.positions[0] == 0 && g.positions[1] == 0 {
			continue // unused slot
		}
		lowGetsFirst := (i>>uint(idx))&1 == 0
		firstPos, secondPos := g.positions[0], g.positions[1]
		if lowGetsFirst {
			deck[firstPos] = Card{Suit: cells[firstPos].suit, Value: g.low}
			deck[secondPos] = Card{Suit: cells[secondPos].suit, Value: g.high}
		} else {
			deck[firstPos] = Card{Suit: cells[firstPos].suit, Value: g.high}
			deck[secondPos] = Card{Suit: cells[secondPos].suit, Value: g.low}
		}
	}
	return deck
}

// topCardIndex finds the unique position holding the 9 of Diamonds and
// returns (position+1) mod 52.
func topCardIndex(deck Deck) int {
	for i, c := range deck {
		if c.Suit == Diamond && c.Value == 9 {
			return (i + 1) % bracelet.Len
		}
	}
	return 0
}
