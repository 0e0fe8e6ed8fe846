// Package deckcode implements the deck realizer, its scoring function,
// and the predicate catalog.
package deckcode

// Predicate is one named subset of card values {1,...,13} tested
// against a realized deck. A predicate is supported on a deck iff the
// 52-bit indicator sequence (bit = 1 where the card's value is in the
// predicate's set) is bracelet-valid.
//
// A static table indexed by a small enum, one entry per named thing,
// with a field gating whether it is always exercised or only under an
// opt-in mode — here, the "all" flag for the nine special subsets.
type Predicate struct {
	Name    string
	Members [14]bool // index 1..13; index 0 unused
	// Special marks the nine extra subsets (M34, M46, M47, M58, M59,
	// M6Q, PR, FI, LU) only tested when catalog "all" mode is enabled.
	Special bool
}

func members(values ...uint8) [14]bool {
	var m [14]bool
	for _, v := range values {
		m[v] = true
	}
	return m
}

// Predicates is the full 26-entry catalog.
var Predicates = []Predicate{
	{Name: "A6", Members: members(1, 2, 3, 4, 5, 6)},
	{Name: "A7", Members: members(1, 2, 3, 4, 5, 6, 7)},
	{Name: "27", Members: members(2, 3, 4, 5, 6, 7)},
	{Name: "28", Members: members(2, 3, 4, 5, 6, 7, 8)},
	{Name: "38", Members: members(3, 4, 5, 6, 7, 8)},
	{Name: "39", Members: members(3, 4, 5, 6, 7, 8, 9)},
	{Name: "49", Members: members(4, 5, 6, 7, 8, 9)},
	{Name: "4T", Members: members(4, 5, 6, 7, 8, 9, 10)},
	{Name: "5T", Members: members(5, 6, 7, 8, 9, 10)},
	{Name: "5J", Members: members(5, 6, 7, 8, 9, 10, 11)},
	{Name: "6J", Members: members(6, 7, 8, 9, 10, 11)},
	{Name: "6Q", Members: members(6, 7, 8, 9, 10, 11, 12)},
	{Name: "7Q", Members: members(7, 8, 9, 10, 11, 12)},
	{Name: "EV", Members: members(2, 4, 6, 8, 10, 12)},
	{Name: "HD", Members: [14]bool{}}, // suit-axis markers: membership is
	{Name: "CD", Members: [14]bool{}}, // evaluated directly against the
	{Name: "HC", Members: [14]bool{}}, // deck's suit field, not value set.

	// Special subsets, tested only under the "all" catalog mode.
	{Name: "M34", Members: members(3, 4, 6, 8, 9, 12), Special: true},
	{Name: "M46", Members: members(4, 5, 6, 8, 10, 12), Special: true},
	{Name: "M47", Members: members(4, 5, 6, 7, 8, 10, 12), Special: true},
	// M58, M59, M6Q have no spelled-out membership set in the retrieved
	// specification; these continue M46/M47's irregular, non-range
	// displacement pattern one step further (see DESIGN.md's Open
	// Question resolution #7).
	{Name: "M58", Members: members(5, 6, 8, 9, 10, 13), Special: true},
	{Name: "M59", Members: members(5, 6, 7, 9, 10, 13), Special: true},
	{Name: "M6Q", Members: members(6, 7, 9, 10, 11, 12), Special: true},
	{Name: "PR", Members: members(2, 3, 5, 7, 11, 13), Special: true},
	{Name: "FI", Members: members(1, 2, 3, 5, 8, 13), Special: true},
	{Name: "LU", Members: members(1, 2, 3, 4, 7, 11), Special: true},
}

// IsSuitMarker reports whether name identifies one of the three
// suit-axis predicates (HD, CD, HC), whose indicator sequence is read
// directly off the deck's suit axis rather than a value-membership
// test.
func IsSuitMarker(name string) bool {
	return name == "HD" || name == "CD" || name == "HC"
}
