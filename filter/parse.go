package filter

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/tcamoi/bitarray"
)

// ErrSyntax is matched by all parse failures.
var ErrSyntax = errors.New("invalid filter syntax")

// SyntaxError describes a malformed filter literal.
type SyntaxError struct {
	Input  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Input, e.Reason)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// Parse reads a ternary literal. Character k describes bit k: '0' and '1' are
// constrained values, '*', 'x' and 'X' are wildcards. '_', '.' and spaces
// separate fields and are skipped. Missing trailing bits are wildcards.
func Parse(s string) (Filter, error) {
	var f Filter
	n := 0
	for _, c := range s {
		switch c {
		case '_', '.', ' ', '\t':
			continue
		case '0', '1', '*', 'x', 'X':
		default:
			return Filter{}, &SyntaxError{Input: s, Reason: fmt.Sprintf("unexpected character %q", c)}
		}
		if n >= bitarray.Width {
			return Filter{}, &SyntaxError{Input: s, Reason: fmt.Sprintf("more than %d bits", bitarray.Width)}
		}
		switch c {
		case '1':
			f.Value = f.Value.With(n)
			f.Mask = f.Mask.With(n)
		case '0':
			f.Mask = f.Mask.With(n)
		}
		n++
	}
	return f, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Filter {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseHex reads a "value/mask" pair of network-order hex strings, as written
// by Filter.Hex. A leading "0x" on either half is accepted, and shorter
// halves are left-aligned (the first hex digit covers bits 0-3).
func ParseHex(s string) (Filter, error) {
	vs, ms, ok := strings.Cut(s, "/")
	if !ok {
		return Filter{}, &SyntaxError{Input: s, Reason: "missing '/' between value and mask"}
	}
	value, err := parseHexBits(vs)
	if err != nil {
		return Filter{}, &SyntaxError{Input: s, Reason: "value: " + err.Error()}
	}
	mask, err := parseHexBits(ms)
	if err != nil {
		return Filter{}, &SyntaxError{Input: s, Reason: "mask: " + err.Error()}
	}
	return New(value, mask), nil
}

func parseHexBits(s string) (bitarray.BitArray, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s) > 2*bitarray.ByteLen {
		return bitarray.BitArray{}, fmt.Errorf("more than %d hex digits", 2*bitarray.ByteLen)
	}
	if len(s)%2 == 1 {
		s += "0"
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return bitarray.BitArray{}, err
	}
	var p [bitarray.ByteLen]byte
	copy(p[:], raw)
	return bitarray.FromBytes(p), nil
}
