package locdata

import (
	"slices"
	"sort"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/locdata/pkg/bounds"
)

// backing is the single sorted sequence shared by a root store and every
// view sliced from it. entries is always sorted by (x, y); records with
// equal keys keep their insertion order.
type backing[T Located] struct {
	m       sync.RWMutex
	entries []T
	log     logr.Logger
}

func newBacking[T Located](o *options) *backing[T] {
	return &backing[T]{
		entries: make([]T, 0, o.capacity),
		log:     o.log,
	}
}

func keyLess(ax, ay, bx, by float64) bool {
	return ax < bx || (ax == bx && ay < by)
}

// lowerBound returns the index of the first entry whose key is not less than
// (x, y).
func (r *backing[T]) lowerBound(x, y float64) int {
	return sort.Search(len(r.entries), func(i int) bool {
		return !keyLess(r.entries[i].X(), r.entries[i].Y(), x, y)
	})
}

// upperBound returns the index of the first entry whose key is greater than
// (x, y).
func (r *backing[T]) upperBound(x, y float64) int {
	return sort.Search(len(r.entries), func(i int) bool {
		return keyLess(x, y, r.entries[i].X(), r.entries[i].Y())
	})
}

// insert places d after every entry with a key less than or equal to its own
// and returns the index it landed on.
func (r *backing[T]) insert(d T) int {
	idx := r.upperBound(d.X(), d.Y())
	r.entries = slices.Insert(r.entries, idx, d)
	return idx
}

func (r *backing[T]) delete(idx int) T {
	d := r.entries[idx]
	r.entries = slices.Delete(r.entries, idx, idx+1)
	return d
}

// scan calls fn for every entry inside xb and yb, in sort order, until fn
// returns false. Visible entries all sit in the run that starts at the lower
// corner (xb.lo, yb.lo) and ends at the upper corner (xb.hi, yb.hi), so the
// scan starts with a binary search and stops once it passes the upper corner.
func (r *backing[T]) scan(xb, yb bounds.Bounds, fn func(idx int, d T) bool) {
	if xb.IsEmpty() || yb.IsEmpty() {
		return
	}
	for i := r.lowerBound(xb.Lo(), yb.Lo()); i < len(r.entries); i++ {
		d := r.entries[i]
		x, y := d.X(), d.Y()
		if x > xb.Hi() || (x == xb.Hi() && y > yb.Hi()) {
			return
		}
		if xb.Contains(x) && yb.Contains(y) {
			if !fn(i, d) {
				return
			}
		}
	}
}

// first returns the index of the first visible entry, -1 if there is none.
func (r *backing[T]) first(xb, yb bounds.Bounds) int {
	idx := -1
	r.scan(xb, yb, func(i int, _ T) bool {
		idx = i
		return false
	})
	return idx
}
