package locdata

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"k8s.io/apimachinery/pkg/labels"
)

// Located is anything with a position in the plane. orb.Point satisfies it.
type Located interface {
	X() float64
	Y() float64
}

// Labeled records can be selected with GetByLabel and RemoveByLabel.
type Labeled interface {
	Labels() labels.Set
}

// Distance returns the euclidean distance between a and b.
func Distance(a, b Located) float64 {
	return planar.Distance(pointOf(a), pointOf(b))
}

func pointOf(l Located) orb.Point {
	return orb.Point{l.X(), l.Y()}
}

// Entry is a located record carrying arbitrary attributes as labels
// (name, cost, description, ...). The store never looks at the labels
// except through a label selector.
type Entry interface {
	Located
	Labeled
	Point() orb.Point
	String() string
	Equal(e2 Entry) bool
}

type entry struct {
	point  orb.Point
	labels labels.Set
}

func (r *entry) X() float64         { return r.point.X() }
func (r *entry) Y() float64         { return r.point.Y() }
func (r *entry) Point() orb.Point   { return r.point }
func (r *entry) Labels() labels.Set { return r.labels }
func (r *entry) String() string {
	return fmt.Sprintf("x: %g, y: %g, labels: %s", r.point.X(), r.point.Y(), r.labels.String())
}

// Equal compares coordinates and labels, not identity.
func (r *entry) Equal(e2 Entry) bool {
	if e2 == nil {
		return false
	}
	if o, ok := e2.(*entry); ok && o == nil {
		return false
	}
	return r.point.Equal(e2.Point()) &&
		r.labels.String() == e2.Labels().String()
}

func NewEntry(x, y float64, l labels.Set) Entry {
	if l == nil {
		l = labels.Set{}
	}
	return &entry{
		point:  orb.Point{x, y},
		labels: l,
	}
}
