package locdata

import (
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/henderiw/locdata/pkg/bounds"
	"github.com/paulmach/orb"
	"k8s.io/apimachinery/pkg/labels"
)

var ErrOutOfBounds = errors.New("out of bounds")

// LocData is a view onto a sequence of located records sorted by (x, y).
// Every view sliced from a store shares that store's sequence: a record
// added or removed through one view is immediately seen by all views whose
// bounds cover it. A view only sees, and may only add, records inside its
// own x and y bounds.
type LocData[T Located] interface {
	// Size returns the number of records visible in this view.
	Size() int
	// Add inserts d into the shared sequence. It fails with ErrOutOfBounds
	// when d lies outside the view's bounds.
	Add(d T) error
	// Remove deletes and returns the first visible record at l's
	// coordinates. The returned record need not be l itself. A nil l
	// behaves like RemoveAny.
	Remove(l Located) (T, bool)
	// RemoveAny deletes and returns some visible record.
	RemoveAny() (T, bool)
	// Slice returns a view over the same records, narrowed to the
	// intersection of this view's bounds with x and y.
	Slice(x, y bounds.Bounds) LocData[T]
	SliceX(x bounds.Bounds) LocData[T]
	SliceY(y bounds.Bounds) LocData[T]
	// Closest returns the visible record nearest to target. target itself
	// may lie outside the view.
	Closest(target Located) (T, bool)

	XBounds() bounds.Bounds
	YBounds() bounds.Bounds
	Bound() orb.Bound
	Has(l Located) bool
	GetAll() []T
	Iterate() *Iterator[T]
	GetByLabel(selector labels.Selector) []T
	RemoveByLabel(selector labels.Selector) []T
}

type Option func(*options)

type options struct {
	log      logr.Logger
	capacity int
}

func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithCapacity pre-sizes the shared sequence.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// New returns an empty, unbounded store.
func New[T Located](opts ...Option) LocData[T] {
	o := &options{log: logr.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return &locData[T]{
		data:    newBacking[T](o),
		xBounds: bounds.Unbounded(),
		yBounds: bounds.Unbounded(),
	}
}

// NewWithEntries returns an unbounded store holding entries. Entries that
// cannot be added (NaN coordinates) are reported in the joined error; the
// rest are kept.
func NewWithEntries[T Located](entries []T, opts ...Option) (LocData[T], error) {
	r := New[T](opts...)

	var errm error
	for _, d := range entries {
		if err := r.Add(d); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	return r, errm
}

type locData[T Located] struct {
	data    *backing[T]
	xBounds bounds.Bounds
	yBounds bounds.Bounds
}

func (r *locData[T]) contains(l Located) bool {
	return r.xBounds.Contains(l.X()) && r.yBounds.Contains(l.Y())
}

func (r *locData[T]) isEmpty() bool {
	return r.xBounds.IsEmpty() || r.yBounds.IsEmpty()
}

func (r *locData[T]) XBounds() bounds.Bounds { return r.xBounds }
func (r *locData[T]) YBounds() bounds.Bounds { return r.yBounds }

func (r *locData[T]) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.xBounds.Lo(), r.yBounds.Lo()},
		Max: orb.Point{r.xBounds.Hi(), r.yBounds.Hi()},
	}
}

func (r *locData[T]) Size() int {
	if r.isEmpty() {
		return 0
	}
	r.data.m.RLock()
	defer r.data.m.RUnlock()

	if r.xBounds.IsUnbounded() && r.yBounds.IsUnbounded() {
		return len(r.data.entries)
	}
	count := 0
	r.data.scan(r.xBounds, r.yBounds, func(int, T) bool {
		count++
		return true
	})
	return count
}

func (r *locData[T]) Add(d T) error {
	if !r.contains(d) {
		r.data.log.V(1).Info("add rejected", "x", d.X(), "y", d.Y(),
			"xBounds", r.xBounds.String(), "yBounds", r.yBounds.String())
		return fmt.Errorf("%w: (%g, %g) not within x %s, y %s",
			ErrOutOfBounds, d.X(), d.Y(), r.xBounds, r.yBounds)
	}
	r.data.m.Lock()
	defer r.data.m.Unlock()

	idx := r.data.insert(d)
	r.data.log.V(1).Info("add", "x", d.X(), "y", d.Y(), "index", idx)
	return nil
}

func (r *locData[T]) Remove(l Located) (T, bool) {
	if l == nil {
		return r.RemoveAny()
	}
	var d T
	if r.isEmpty() || !r.contains(l) {
		return d, false
	}
	r.data.m.Lock()
	defer r.data.m.Unlock()

	idx := r.data.lowerBound(l.X(), l.Y())
	if idx == len(r.data.entries) {
		return d, false
	}
	if e := r.data.entries[idx]; e.X() != l.X() || e.Y() != l.Y() {
		return d, false
	}
	d = r.data.delete(idx)
	r.data.log.V(1).Info("remove", "x", d.X(), "y", d.Y(), "index", idx)
	return d, true
}

func (r *locData[T]) RemoveAny() (T, bool) {
	var d T
	r.data.m.Lock()
	defer r.data.m.Unlock()

	idx := r.data.first(r.xBounds, r.yBounds)
	if idx < 0 {
		return d, false
	}
	d = r.data.delete(idx)
	r.data.log.V(1).Info("remove", "x", d.X(), "y", d.Y(), "index", idx)
	return d, true
}

func (r *locData[T]) Slice(x, y bounds.Bounds) LocData[T] {
	return &locData[T]{
		data:    r.data,
		xBounds: r.xBounds.Intersect(x),
		yBounds: r.yBounds.Intersect(y),
	}
}

func (r *locData[T]) SliceX(x bounds.Bounds) LocData[T] {
	return r.Slice(x, bounds.Unbounded())
}

func (r *locData[T]) SliceY(y bounds.Bounds) LocData[T] {
	return r.Slice(bounds.Unbounded(), y)
}

func (r *locData[T]) Closest(target Located) (T, bool) {
	var closest T
	found := false
	if target == nil {
		return closest, false
	}
	r.data.m.RLock()
	defer r.data.m.RUnlock()

	minDistance := 0.0
	r.data.scan(r.xBounds, r.yBounds, func(_ int, d T) bool {
		if dist := Distance(d, target); !found || dist < minDistance {
			closest, minDistance, found = d, dist, true
		}
		return true
	})
	return closest, found
}

func (r *locData[T]) Has(l Located) bool {
	if l == nil || r.isEmpty() || !r.contains(l) {
		return false
	}
	r.data.m.RLock()
	defer r.data.m.RUnlock()

	idx := r.data.lowerBound(l.X(), l.Y())
	return idx < len(r.data.entries) &&
		r.data.entries[idx].X() == l.X() && r.data.entries[idx].Y() == l.Y()
}

func (r *locData[T]) GetAll() []T {
	r.data.m.RLock()
	defer r.data.m.RUnlock()

	return r.getAll(nil)
}

func (r *locData[T]) getAll(filter func(T) bool) []T {
	entries := []T{}
	r.data.scan(r.xBounds, r.yBounds, func(_ int, d T) bool {
		if filter == nil || filter(d) {
			entries = append(entries, d)
		}
		return true
	})
	return entries
}

func (r *locData[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{current: -1, entries: r.GetAll()}
}

// matchesLabels treats a nil selector as matching everything.
func matchesLabels[T Located](selector labels.Selector) func(T) bool {
	if selector == nil {
		selector = labels.Everything()
	}
	return func(d T) bool {
		l, ok := any(d).(Labeled)
		return ok && selector.Matches(l.Labels())
	}
}

func (r *locData[T]) GetByLabel(selector labels.Selector) []T {
	r.data.m.RLock()
	defer r.data.m.RUnlock()

	return r.getAll(matchesLabels[T](selector))
}

func (r *locData[T]) RemoveByLabel(selector labels.Selector) []T {
	r.data.m.Lock()
	defer r.data.m.Unlock()

	match := matchesLabels[T](selector)
	var idxs []int
	r.data.scan(r.xBounds, r.yBounds, func(i int, d T) bool {
		if match(d) {
			idxs = append(idxs, i)
		}
		return true
	})
	removed := make([]T, len(idxs))
	// delete from the back so earlier indexes stay valid
	for i := len(idxs) - 1; i >= 0; i-- {
		removed[i] = r.data.delete(idxs[i])
	}
	r.data.log.V(1).Info("remove by label", "selector", fmt.Sprint(selector), "count", len(removed))
	return removed
}
