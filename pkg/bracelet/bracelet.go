// Package bracelet implements the bit kernel: the bracelet-validity
// test for 52-bit cyclic binary sequences, and the small set of bit
// primitives the rest of the search pipeline builds on.
package bracelet

import (
	"fmt"
	"math/bits"
)

// Sequence is a 52-bit cyclic binary word stored in the low 52 bits
// of a uint64. Bit i corresponds to position i in the cyclic deck.
type Sequence uint64

// Len is the fixed sequence length this package operates on.
const Len = 52

// WindowLen is the length of the sliding window tested for bracelet
// validity.
const WindowLen = 6

// mask52 isolates the 52 significant bits of a Sequence.
const mask52 Sequence = (1 << Len) - 1

// windowMask is the low WindowLen bits.
const windowMask Sequence = (1 << WindowLen) - 1

// IsValid reports whether the 52 cyclically consecutive length-6
// windows of seq (window i starts at bit i, i in [0,52)) are pairwise
// distinct. When strict is true, it additionally requires that no
// window equals all-zero or all-one.
//
// Replicates the low 5 bits of seq above bit 51 so that every cyclic
// window can be read with a single shift, then walks 52 steps marking
// a 64-bit presence vector, failing as soon as a window recurs.
func IsValid(seq Sequence, strict bool) bool {
	s := seq & mask52
	extended := uint64(s) | (uint64(s&31) << Len)

	var seen uint64
	for i := 0; i < Len; i++ {
		window := (extended >> uint(i)) & uint64(windowMask)
		bit := uint64(1) << window
		if seen&bit != 0 {
			return false
		}
		if strict && (window == 0 || window == uint64(windowMask)) {
			return false
		}
		seen |= bit
	}
	return true
}

// HasLongUniformRun reports whether any cyclic length-6 window of seq
// is all-zero or all-one.
func HasLongUniformRun(seq Sequence) bool {
	s := seq & mask52
	extended := uint64(s) | (uint64(s&31) << Len)
	for i := 0; i < Len; i++ {
		window := (extended >> uint(i)) & uint64(windowMask)
		if window == 0 || window == uint64(windowMask) {
			return true
		}
	}
	return false
}

// PopCount returns the number of set bits among the low 52 bits.
func PopCount(seq Sequence) int {
	return bits.OnesCount64(uint64(seq & mask52))
}

// RotateLeft52 rotates seq left by n positions within the 52-bit
// cyclic space. Bracelet validity is rotation-invariant; this helper
// exists for diagnostics and for the top-card cut in the realizer.
func RotateLeft52(seq Sequence, n uint) Sequence {
	n %= Len
	s := uint64(seq & mask52)
	rotated := (s<<n | s>>(Len-n)) & uint64(mask52)
	return Sequence(rotated)
}

// ParseBitString parses a 52-character string of '0'/'1' characters
// into the low 52 bits of a Sequence, MSB-first: s[0] becomes bit 51,
// s[51] becomes bit 0.
func ParseBitString(s string) (Sequence, error) {
	if len(s) != Len {
		return 0, fmt.Errorf("bracelet: bit string must be %d characters, got %d", Len, len(s))
	}
	var v Sequence
	for i := 0; i < Len; i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return 0, fmt.Errorf("bracelet: invalid character %q at position %d", s[i], i)
		}
	}
	return v, nil
}

// BitString renders seq as a 52-character '0'/'1' string, MSB-first
// (the inverse of ParseBitString).
func BitString(seq Sequence) string {
	buf := make([]byte, Len)
	for i := 0; i < Len; i++ {
		bitPos := Len - 1 - i
		if seq&(1<<uint(bitPos)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}
