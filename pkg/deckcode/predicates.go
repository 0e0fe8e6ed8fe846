package deckcode

import "github.com/conmol/bracelet52/pkg/bracelet"

// PredicateBits is a bitmask over the Predicates catalog: bit i is set
// iff Predicates[i] is supported on the deck under test.
type PredicateBits uint32

// EvaluatePredicates walks the catalog and tests each predicate's
// 52-bit indicator sequence for bracelet validity. The nine Special
// entries (M34, M46, M47, M58, M59, M6Q, PR, FI, LU) are only tested
// when includeSpecial is true.
func EvaluatePredicates(deck Deck, bundle Bundle, includeSpecial bool) PredicateBits {
	var bits PredicateBits
	for i, p := range Predicates {
		if p.Special && !includeSpecial {
			continue
		}
		var indicator bracelet.Sequence
		if IsSuitMarker(p.Name) {
			indicator = suitIndicator(bundle, p.Name)
		} else {
			indicator = valueIndicator(deck, p.Members)
		}
		if bracelet.IsValid(indicator, false) {
			bits |= 1 << uint(i)
		}
	}
	return bits
}

// valueIndicator builds the 52-bit sequence whose bit i is 1 iff the
// card at position i has a value in members.
func valueIndicator(deck Deck, members [14]bool) bracelet.Sequence {
	var seq bracelet.Sequence
	for i, card := range deck {
		if members[card.Value] {
			seq |= 1 << uint(i)
		}
	}
	return seq
}

// suitIndicator returns the axis sequence directly backing a suit
// marker predicate: these are true by construction (the compound
// search only ever accepts bracelet-valid axes), so no per-card
// recomputation is needed.
func suitIndicator(bundle Bundle, name string) bracelet.Sequence {
	switch name {
	case "HD":
		return bundle.HD
	case "CD":
		return bundle.CD
	case "HC":
		return bundle.HC
	default:
		return 0
	}
}

// guaranteedPredicateNames are the catalog entries that always hold on
// a deck built from a legal bundle: the axes used to construct the
// deck (HD, CD, HC) and the catalog-named complements of the other
// axes used (EV = ¬ODD, A6 = ¬7K since {1..6} is exactly {7..13}'s
// complement over 1..13, A7 = ¬8K since {1..7} is {8..13}'s
// complement). There are seven input-guaranteed predicates in total;
// the seventh is the parity axis (ODD) itself, which has no distinct
// catalog entry (EV is its complement) and so contributes no
// additional PredicateBits bit.
var guaranteedPredicateNames = map[string]bool{
	"HD": true, "CD": true, "HC": true,
	"EV": true, "A6": true, "A7": true,
}

// guaranteedPredicateMask returns the PredicateBits mask of the
// catalog-named guaranteed predicates, used to detect the degenerate
// "no optional predicate supported" condition (see DESIGN.md).
func guaranteedPredicateMask(_ Bundle) PredicateBits {
	var mask PredicateBits
	for i, p := range Predicates {
		if guaranteedPredicateNames[p.Name] {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
