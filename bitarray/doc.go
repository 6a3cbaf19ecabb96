// Package bitarray provides BitArray, a fixed-width bit vector sized for the
// classic five-tuple packet header (two 32-bit addresses, two 16-bit ports and
// an 8-bit protocol).
//
// A BitArray is a comparable value type backed by two 64-bit words. Bit i
// lives in word i/64 at position i%64; the bits above Width are always zero,
// so two arrays are equal exactly when == says so.
//
// The same type serves as a filter value, a filter mask and an active-bit
// selector for overlap queries:
//
//	mask, err := bitarray.FromBits([]int{0, 1, 2, 96})
//	if err != nil {
//	    return err
//	}
//	if !a.And(mask).IsZero() {
//	    // a has at least one of the selected bits set
//	}
//
// Bit positions map onto header bytes in network order: bit 0 is the most
// significant bit of the first byte, see [BitArray.Bytes].
package bitarray
