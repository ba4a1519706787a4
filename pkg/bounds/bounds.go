package bounds

import (
	"fmt"
	"math"
)

// Bounds is a closed interval [lo, hi] over the reals. Either end may be
// absent, in which case it does not restrict anything. lo > hi is a legal
// value and represents the empty interval.
//
// The zero value is the unbounded interval.
type Bounds struct {
	lo    float64
	hi    float64
	hasLo bool
	hasHi bool
}

// from builds an interval, recording an infinite end as an absent one so
// that equal intervals compare equal.
func from(lo, hi float64) Bounds {
	var r Bounds
	if !math.IsInf(lo, -1) {
		r.lo, r.hasLo = lo, true
	}
	if !math.IsInf(hi, 1) {
		r.hi, r.hasHi = hi, true
	}
	return r
}

// New returns the interval [lo, hi].
func New(lo, hi float64) Bounds {
	return from(lo, hi)
}

// Unbounded returns [-Inf, +Inf], the same as the zero value.
func Unbounded() Bounds {
	return Bounds{}
}

// AtLeast returns [lo, +Inf].
func AtLeast(lo float64) Bounds {
	return from(lo, math.Inf(1))
}

// AtMost returns [-Inf, hi].
func AtMost(hi float64) Bounds {
	return from(math.Inf(-1), hi)
}

// Lo returns the lower endpoint of r, -Inf when r has none.
func (r Bounds) Lo() float64 {
	if !r.hasLo {
		return math.Inf(-1)
	}
	return r.lo
}

// Hi returns the upper endpoint of r, +Inf when r has none.
func (r Bounds) Hi() float64 {
	if !r.hasHi {
		return math.Inf(1)
	}
	return r.hi
}

func (r Bounds) HasLo() bool { return r.hasLo }
func (r Bounds) HasHi() bool { return r.hasHi }

func (r Bounds) IsEmpty() bool {
	return r.hasLo && r.hasHi && r.lo > r.hi
}

// IsUnbounded returns whether r restricts nothing.
func (r Bounds) IsUnbounded() bool {
	return !r.hasLo && !r.hasHi
}

// Contains returns whether lo <= v <= hi. NaN is never contained.
func (r Bounds) Contains(v float64) bool {
	return v >= r.Lo() && v <= r.Hi()
}

// Intersect returns the interval covered by both r and other.
func (r Bounds) Intersect(other Bounds) Bounds {
	return from(
		math.Max(r.Lo(), other.Lo()),
		math.Min(r.Hi(), other.Hi()),
	)
}

func (r Bounds) String() string {
	return fmt.Sprintf("[%g, %g]", r.Lo(), r.Hi())
}
