// Package indexset provides Set, a roaring-bitmap backed set of filter
// indices (or other small non-negative integers such as pair ids).
package indexset

import (
	"iter"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// MaxValue is the largest value a Set can hold.
const MaxValue = 1<<32 - 1

// Set is a set of non-negative integers below 2^32.
type Set struct {
	rb *roaring.Bitmap
}

// setPool recycles scratch sets used by the exact searches.
var setPool = sync.Pool{
	New: func() any {
		return &Set{rb: roaring.New()}
	},
}

// New creates an empty set.
func New() *Set {
	return &Set{rb: roaring.New()}
}

// Range creates the set {0, ..., n-1}.
func Range(n int) *Set {
	s := New()
	if n > 0 {
		s.rb.AddRange(0, uint64(n))
	}
	return s
}

// Of creates a set holding the given values.
func Of(values ...int) *Set {
	s := New()
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Get takes an empty set from the pool. Call Put when done.
func Get() *Set {
	s := setPool.Get().(*Set)
	s.rb.Clear()
	return s
}

// Put returns s to the pool.
func Put(s *Set) {
	if s == nil {
		return
	}
	s.rb.Clear()
	setPool.Put(s)
}

// Add inserts v and reports whether it was absent.
func (s *Set) Add(v int) bool {
	return s.rb.CheckedAdd(uint32(v))
}

// Remove deletes v and reports whether it was present.
func (s *Set) Remove(v int) bool {
	return s.rb.CheckedRemove(uint32(v))
}

// Contains reports whether v is in s.
func (s *Set) Contains(v int) bool {
	return s.rb.Contains(uint32(v))
}

// Len returns the number of values in s.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty reports whether s has no values.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Min returns the smallest value. s must not be empty.
func (s *Set) Min() int {
	return int(s.rb.Minimum())
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// CopyFrom replaces the contents of s with those of o.
func (s *Set) CopyFrom(o *Set) {
	s.rb.Clear()
	s.rb.Or(o.rb)
}

// And keeps only values also in o.
func (s *Set) And(o *Set) {
	s.rb.And(o.rb)
}

// Or adds all values of o.
func (s *Set) Or(o *Set) {
	s.rb.Or(o.rb)
}

// AndNot removes all values of o.
func (s *Set) AndNot(o *Set) {
	s.rb.AndNot(o.rb)
}

// Intersects reports whether s and o share a value.
func (s *Set) Intersects(o *Set) bool {
	return s.rb.Intersects(o.rb)
}

// OrLen returns |s ∪ o| without materialising the union.
func (s *Set) OrLen(o *Set) int {
	return int(s.rb.OrCardinality(o.rb))
}

// SubsetOf reports whether every value of s is in o.
func (s *Set) SubsetOf(o *Set) bool {
	return s.rb.AndCardinality(o.rb) == s.rb.GetCardinality()
}

// Equal reports whether s and o hold the same values.
func (s *Set) Equal(o *Set) bool {
	return s.rb.Equals(o.rb)
}

// ForEach calls fn for every value in ascending order until fn returns false.
func (s *Set) ForEach(fn func(v int) bool) {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(int(it.Next())) {
			break
		}
	}
}

// All returns an ascending iterator over s.
func (s *Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Ints returns the values of s in ascending order.
func (s *Set) Ints() []int {
	out := make([]int, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Union returns the union of sets without modifying them.
func Union(sets ...*Set) *Set {
	if len(sets) == 0 {
		return New()
	}
	rbs := make([]*roaring.Bitmap, len(sets))
	for i, s := range sets {
		rbs[i] = s.rb
	}
	return &Set{rb: roaring.FastOr(rbs...)}
}
