package deckcode

import "github.com/conmol/bracelet52/pkg/bracelet"

// Bundle is the tuple of axes the compound search emits: the two suit
// axes, their derived complement, the parity axis, and three value
// axes whose codes (combined with the parity axis) define the
// ambiguous-value lookup.
type Bundle struct {
	HD, CD, HC, ODD bracelet.Sequence
	X, Y, Z         bracelet.Sequence
}

// bit returns bit i of seq as 0 or 1.
func bit(seq bracelet.Sequence, i int) uint8 {
	return uint8((seq >> uint(i)) & 1)
}

// joinCode computes the 4-bit (ODD,X,Y,Z) join code at position i,
// matching the bit order LookupTable indexes by: bit0=ODD, bit1=X,
// bit2=Y, bit3=Z.
func (b Bundle) joinCode(i int) uint8 {
	return bit(b.ODD, i) | bit(b.X, i)<<1 | bit(b.Y, i)<<2 | bit(b.Z, i)<<3
}
