package filter

import (
	"strings"
	"testing"

	"github.com/hupe1980/tcamoi/bitarray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mask(t *testing.T, bits ...int) bitarray.BitArray {
	t.Helper()
	m, err := bitarray.FromBits(bits)
	require.NoError(t, err)
	return m
}

func TestIndependent(t *testing.T) {
	bit0 := mask(t, 0)

	tests := []struct {
		name   string
		a, b   string
		active bitarray.BitArray
		want   bool
	}{
		{"wildcard vs constrained", "*", "1", bit0, false},
		{"opposite values", "0", "1", bit0, true},
		{"same value", "1", "1", bit0, false},
		{"differ outside active", "10", "11", bit0, false},
		{"differ inside active", "10", "11", mask(t, 1), true},
		{"no active bits", "0", "1", bitarray.BitArray{}, false},
		{"one side wildcard at diff", "1*1", "0*0", mask(t, 1), false},
		{"high word", strings.Repeat("*", 100) + "1", strings.Repeat("*", 100) + "0", bitarray.Full(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := MustParse(tt.a), MustParse(tt.b)
			assert.Equal(t, tt.want, Independent(a, b, tt.active))
			assert.Equal(t, tt.want, Independent(b, a, tt.active), "symmetry")
			assert.Equal(t, !tt.want, Overlaps(a, b, tt.active))
		})
	}
}

func TestIndependent_SelfNeverIndependent(t *testing.T) {
	for _, s := range []string{"*", "1", "0101", "1*0*1", strings.Repeat("10", bitarray.Width/2)} {
		f := MustParse(s)
		assert.False(t, Independent(f, f, bitarray.Full()), s)
	}
}

func TestIndependent_AgreesWithMatching(t *testing.T) {
	a := MustParse("1*0")
	b := MustParse("*10")
	c := MustParse("0**")

	// a and b share header 110...; a and c cannot.
	h := mask(t, 0, 1)
	assert.True(t, a.Matches(h))
	assert.True(t, b.Matches(h))
	assert.False(t, Independent(a, b, bitarray.Full()))
	assert.True(t, Independent(a, c, bitarray.Full()))
	assert.False(t, c.Matches(h))
}

func TestNew_ClearsWildcardValues(t *testing.T) {
	f := New(mask(t, 0, 1, 2), mask(t, 1))
	assert.Equal(t, mask(t, 1), f.Value)
	assert.Equal(t, "*1*", f.String()[:3])
}

func TestParse(t *testing.T) {
	f, err := Parse("10*x_0X 1")
	require.NoError(t, err)
	assert.Equal(t, mask(t, 0, 1, 4, 6), f.Mask)
	assert.Equal(t, mask(t, 0, 6), f.Value)
	assert.Equal(t, 4, f.Constrained())
	assert.Equal(t, "10**0*1*", f.String()[:8])
	assert.Equal(t, strings.Repeat("*", bitarray.Width-8), f.String()[8:])

	_, err = Parse("10a")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Parse(strings.Repeat("1", bitarray.Width+1))
	assert.ErrorIs(t, err, ErrSyntax)

	full, err := Parse(strings.Repeat("1", bitarray.Width))
	require.NoError(t, err)
	assert.Equal(t, bitarray.Full(), full.Mask)
}

func TestParse_StringRoundTrip(t *testing.T) {
	f := MustParse("1*0__1010.****1")
	g, err := Parse(f.String())
	require.NoError(t, err)
	assert.Equal(t, f, g)
}

func TestParseHex(t *testing.T) {
	f, err := ParseHex("0xc0/0xe0")
	require.NoError(t, err)
	assert.Equal(t, "110", f.String()[:3])
	assert.Equal(t, 3, f.Constrained())

	g, err := ParseHex(f.Hex())
	require.NoError(t, err)
	assert.Equal(t, f, g)

	_, err = ParseHex("c0")
	assert.ErrorIs(t, err, ErrSyntax)
	_, err = ParseHex("zz/ff")
	assert.ErrorIs(t, err, ErrSyntax)
	_, err = ParseHex(strings.Repeat("f", 27) + "/0")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestProject(t *testing.T) {
	f := MustParse("1*0*1")

	p, err := f.Project([]int{4, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, "1*0", p.String()[:3])
	assert.Equal(t, 2, p.Constrained())

	_, err = f.Project([]int{1, 1})
	assert.ErrorIs(t, err, bitarray.ErrDuplicateIndex)
	_, err = f.Project([]int{bitarray.Width})
	assert.ErrorIs(t, err, bitarray.ErrIndexOutOfRange)
}

func TestProject_PreservesIndependenceOnSelectedBits(t *testing.T) {
	a := MustParse("10*1")
	b := MustParse("11*0")
	bits := []int{3, 1}

	pa, err := a.Project(bits)
	require.NoError(t, err)
	pb, err := b.Project(bits)
	require.NoError(t, err)

	assert.Equal(t,
		Independent(a, b, mask(t, bits...)),
		Independent(pa, pb, mask(t, 0, 1)),
	)
}

func TestWildcard(t *testing.T) {
	w := Wildcard()
	assert.True(t, w.Matches(bitarray.Full()))
	assert.True(t, w.Matches(bitarray.BitArray{}))
	assert.Equal(t, 0, w.Constrained())
}
