// Package filter defines ternary match rules over bitarray.Width header bits
// and the overlap algebra between them.
//
// A Filter is a value/mask pair. A mask bit of 1 marks a constrained ("care")
// position whose value bit must match; 0 marks a wildcard. This is the P4
// ternary convention, and every routine in this module relies on it.
package filter

import (
	"fmt"
	"strings"

	"github.com/hupe1980/tcamoi/bitarray"
)

// Filter is a ternary match rule.
type Filter struct {
	// Value holds the required header bits at constrained positions.
	Value bitarray.BitArray
	// Mask has a 1 at every constrained position.
	Mask bitarray.BitArray
}

// New returns a filter with value bits under wildcards cleared.
func New(value, mask bitarray.BitArray) Filter {
	return Filter{Value: value.And(mask), Mask: mask}
}

// Wildcard returns the filter that matches every header.
func Wildcard() Filter { return Filter{} }

// Independent reports whether a and b cannot match a common header when only
// the active positions are considered: some active position is constrained
// in both and their values disagree there.
func Independent(a, b Filter, active bitarray.BitArray) bool {
	return !Distinguishing(a, b).And(active).IsZero()
}

// Overlaps is the negation of Independent.
func Overlaps(a, b Filter, active bitarray.BitArray) bool {
	return !Independent(a, b, active)
}

// Distinguishing returns the positions where a and b are both constrained
// and disagree.
func Distinguishing(a, b Filter) bitarray.BitArray {
	return a.Mask.And(b.Mask).And(a.Value.Xor(b.Value))
}

// Matches reports whether header h matches f.
func (f Filter) Matches(h bitarray.BitArray) bool {
	return h.Xor(f.Value).And(f.Mask).IsZero()
}

// Constrained returns the number of constrained positions.
func (f Filter) Constrained() int { return f.Mask.OnesCount() }

// Project returns the filter whose bit k is f's bit positions[k]. Positions
// past len(positions) are wildcards.
func (f Filter) Project(positions []int) (Filter, error) {
	if _, err := bitarray.FromBits(positions); err != nil {
		return Filter{}, err
	}
	var out Filter
	for k, i := range positions {
		if !f.Mask.Bit(i) {
			continue
		}
		out.Mask = out.Mask.With(k)
		if f.Value.Bit(i) {
			out.Value = out.Value.With(k)
		}
	}
	return out, nil
}

// String renders f as a full-width ternary string: '0', '1' or '*' per bit,
// bit 0 first.
func (f Filter) String() string {
	var sb strings.Builder
	sb.Grow(bitarray.Width)
	for i := range bitarray.Width {
		switch {
		case !f.Mask.Bit(i):
			sb.WriteByte('*')
		case f.Value.Bit(i):
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Hex renders f as "value/mask" in network-order hex.
func (f Filter) Hex() string {
	return fmt.Sprintf("%s/%s", f.Value, f.Mask)
}
