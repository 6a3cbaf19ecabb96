package bitarray

import (
	"encoding/hex"
	"math/bits"
)

// Width is the number of bits in every BitArray: 32+32+16+16+8.
const Width = 32 + 32 + 16 + 16 + 8

// ByteLen is the number of bytes needed to hold Width bits.
const ByteLen = (Width + 7) / 8

const numWords = 2

// hiMask keeps the valid bits of the upper word.
const hiMask = uint64(1)<<(Width-64) - 1

// BitArray is a fixed-width set of Width bits.
//
// The zero value is the all-zero array.
type BitArray struct {
	w [numWords]uint64
}

// Full returns an array with all Width bits set.
func Full() BitArray {
	return BitArray{w: [numWords]uint64{^uint64(0), hiMask}}
}

// FromBits returns an array with exactly the listed positions set.
//
// Out-of-range positions yield an *IndexError, repeated positions a
// *DuplicateIndexError.
func FromBits(positions []int) (BitArray, error) {
	var b BitArray
	for _, i := range positions {
		if !inRange(i) {
			return BitArray{}, &IndexError{Index: i}
		}
		if b.Bit(i) {
			return BitArray{}, &DuplicateIndexError{Index: i}
		}
		b.w[i>>6] |= 1 << (i & 63)
	}
	return b, nil
}

// FromBytes decodes the network-order byte form produced by Bytes.
func FromBytes(p [ByteLen]byte) BitArray {
	var b BitArray
	for i := range Width {
		if p[i>>3]&(0x80>>(i&7)) != 0 {
			b.w[i>>6] |= 1 << (i & 63)
		}
	}
	return b
}

func inRange(i int) bool { return i >= 0 && i < Width }

// Bit reports whether bit i is set. i must be in [0, Width).
func (b BitArray) Bit(i int) bool {
	return b.w[i>>6]&(1<<(i&63)) != 0
}

// With returns a copy of b with bit i set. i must be in [0, Width).
func (b BitArray) With(i int) BitArray {
	b.w[i>>6] |= 1 << (i & 63)
	return b
}

// Test reports whether bit i is set.
func (b BitArray) Test(i int) (bool, error) {
	if !inRange(i) {
		return false, &IndexError{Index: i}
	}
	return b.Bit(i), nil
}

// Set sets bit i.
func (b *BitArray) Set(i int) error {
	if !inRange(i) {
		return &IndexError{Index: i}
	}
	b.w[i>>6] |= 1 << (i & 63)
	return nil
}

// Clear clears bit i.
func (b *BitArray) Clear(i int) error {
	if !inRange(i) {
		return &IndexError{Index: i}
	}
	b.w[i>>6] &^= 1 << (i & 63)
	return nil
}

// And returns b & o.
func (b BitArray) And(o BitArray) BitArray {
	return BitArray{w: [numWords]uint64{b.w[0] & o.w[0], b.w[1] & o.w[1]}}
}

// Or returns b | o.
func (b BitArray) Or(o BitArray) BitArray {
	return BitArray{w: [numWords]uint64{b.w[0] | o.w[0], b.w[1] | o.w[1]}}
}

// Xor returns b ^ o.
func (b BitArray) Xor(o BitArray) BitArray {
	return BitArray{w: [numWords]uint64{b.w[0] ^ o.w[0], b.w[1] ^ o.w[1]}}
}

// AndNot returns b &^ o.
func (b BitArray) AndNot(o BitArray) BitArray {
	return BitArray{w: [numWords]uint64{b.w[0] &^ o.w[0], b.w[1] &^ o.w[1]}}
}

// Not returns the complement of b within Width bits.
func (b BitArray) Not() BitArray {
	return BitArray{w: [numWords]uint64{^b.w[0], ^b.w[1] & hiMask}}
}

// IsZero reports whether no bit is set.
//
// Cheaper than b == BitArray{} for the same reason netip's uint128 has it.
func (b BitArray) IsZero() bool { return b.w[0]|b.w[1] == 0 }

// Equal reports whether b and o have the same bits set.
func (b BitArray) Equal(o BitArray) bool { return b == o }

// OnesCount returns the number of set bits.
func (b BitArray) OnesCount() int {
	return bits.OnesCount64(b.w[0]) + bits.OnesCount64(b.w[1])
}

// ForEach calls fn for every set bit in ascending order until fn returns false.
func (b BitArray) ForEach(fn func(i int) bool) {
	for wi, word := range b.w {
		for word != 0 {
			i := wi*64 + bits.TrailingZeros64(word)
			if !fn(i) {
				return
			}
			word &= word - 1
		}
	}
}

// Ones returns the set positions in ascending order.
func (b BitArray) Ones() []int {
	out := make([]int, 0, b.OnesCount())
	b.ForEach(func(i int) bool {
		out = append(out, i)
		return true
	})
	return out
}

// Bytes returns the network-order encoding: bit 0 is the most significant
// bit of byte 0.
func (b BitArray) Bytes() [ByteLen]byte {
	var p [ByteLen]byte
	b.ForEach(func(i int) bool {
		p[i>>3] |= 0x80 >> (i & 7)
		return true
	})
	return p
}

// String returns the hex form of Bytes.
func (b BitArray) String() string {
	p := b.Bytes()
	return hex.EncodeToString(p[:])
}
