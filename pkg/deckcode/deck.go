package deckcode

import "fmt"

// Suit identifies one of the four standard suits. The suit decomposes
// from the HD/CD axis bits as (HD<<1)|CD.
type Suit uint8

const (
	Spade Suit = iota
	Club
	Heart
	Diamond
)

func (s Suit) String() string {
	switch s {
	case Spade:
		return "S"
	case Club:
		return "C"
	case Heart:
		return "H"
	case Diamond:
		return "D"
	default:
		return "?"
	}
}

// SuitFromBits computes the suit from the HD and CD axis bits at a
// position: (HD<<1)|CD → {spade=0, club=1, heart=2, diamond=3}.
func SuitFromBits(hd, cd uint8) Suit {
	return Suit((hd << 1) | cd)
}

// Card is one playing card: a suit and a value in 1..13 (ace=1, ...,
// king=13).
type Card struct {
	Suit  Suit
	Value uint8
}

// Pack encodes the card as (suit<<8)|value.
func (c Card) Pack() uint16 {
	return uint16(c.Suit)<<8 | uint16(c.Value)
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", valueSymbol(c.Value), c.Suit)
}

// Deck is a realized arrangement of the standard 52-card deck.
type Deck [52]Card

// AmbiguityPair names one of the four two-valued ambiguity markers a
// value lookup table can produce: a sum type rather than sentinel
// integers (see DESIGN.md).
type AmbiguityPair uint8

const (
	PairNone     AmbiguityPair = iota
	PairLowHigh1               // e.g. "ace or three" under umake
	PairLowHigh2               // e.g. "four or six" under umake
	PairLowHigh3               // e.g. "eight or ten" under umake
	PairLowHigh4               // e.g. "jack or king" under umake
)

// ValueCode is what a 16-entry value lookup table maps a 4-bit code
// to: either a concrete card value, or one of the four ambiguity
// markers paired with the two values it stands in for.
type ValueCode struct {
	Concrete    uint8 // valid when !IsAmbiguous
	IsAmbiguous bool
	Pair        AmbiguityPair
	Low, High   uint8 // the two candidate values when IsAmbiguous
}

func concrete(v uint8) ValueCode { return ValueCode{Concrete: v} }

func ambiguous(pair AmbiguityPair, low, high uint8) ValueCode {
	return ValueCode{IsAmbiguous: true, Pair: pair, Low: low, High: high}
}

// none is the illegal "code maps to nothing" entry: a bundle carrying
// a position whose join code maps here is rejected.
var none = ValueCode{}

// LookupTable maps a 4-bit (ODD, X, Y, Z) join code to a ValueCode.
// Index convention: bit0=ODD, bit1=X, bit2=Y, bit3=Z — the same bit
// order the compound search builds the 16-way joint histogram in.
type LookupTable [16]ValueCode

// TableUmake is the umake lookup table: X=7K (value in 7..13), Y=8K
// (value in 8..13), Z=4T (value in 4..10). Its 16 entries are exactly
// the join code bit0=ODD(v) | bit1=7K(v)<<1 | bit2=8K(v)<<2 |
// bit3=4T(v)<<3 computed for each v in 1..13: every value lands on one
// of 9 codes, four of which are shared by two values each ("A or 3",
// "4 or 6", "8 or 10", "J or K"), accounting for all 13 card values;
// the remaining 7 of the 16 possible codes are illegal, since the
// compound search's histogram constraint guarantees only the 9 live
// codes actually occur at any position.
var TableUmake = LookupTable{
	0:  concrete(2),
	1:  ambiguous(PairLowHigh1, 1, 3),
	6:  concrete(12),
	7:  ambiguous(PairLowHigh4, 11, 13),
	8:  ambiguous(PairLowHigh2, 4, 6),
	9:  concrete(5),
	11: concrete(7),
	14: ambiguous(PairLowHigh3, 8, 10),
	15: concrete(9),
	2: none, 3: none, 4: none, 5: none, 10: none, 12: none, 13: none,
}

// TablePlus2 is the uplus2 variant, built from three axes (92, T2,
// 6Q) whose membership sets are nowhere spelled out in the retrieved
// documentation for this format. Reading the axis names by the same
// low-to-high convention as umake's 7K/8K/4T (low card first, high
// card second, wrapping past King back to Ace when the low card
// outranks the high one) gives 92(v) = v in {9,10,11,12,13,1,2},
// T2(v) = v in {10,11,12,13,1,2}, 6Q(v) = v in {6..12} — sized 7, 6,
// 7 respectively, matching 7K/8K/4T's 7, 6, 7. Computing the same
// bit0=ODD|bit1=92<<1|bit2=T2<<2|bit3=6Q<<3 join code for v in 1..13
// under this reading lands on the same 9 live codes as TableUmake and
// the same 5-concrete/4-ambiguous/7-illegal shape, which is the
// strongest evidence available that this reading is the intended one
// (see DESIGN.md).
var TablePlus2 = LookupTable{
	0:  concrete(4),
	1:  ambiguous(PairLowHigh1, 3, 5),
	6:  concrete(2),
	7:  ambiguous(PairLowHigh4, 1, 13),
	8:  ambiguous(PairLowHigh2, 6, 8),
	9:  concrete(7),
	11: concrete(9),
	14: ambiguous(PairLowHigh3, 10, 12),
	15: concrete(11),
	2: none, 3: none, 4: none, 5: none, 10: none, 12: none, 13: none,
}

func valueSymbol(v uint8) string {
	switch v {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return fmt.Sprintf("%d", v)
	}
}
