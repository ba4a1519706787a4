package locdata

// Iterator walks a snapshot of the entries visible in a view, in sort order.
// Mutations after the snapshot was taken do not affect it.
type Iterator[T any] struct {
	current int
	entries []T
}

func (r *Iterator[T]) Value() T {
	return r.entries[r.current]
}

// Index returns the position of the current value within the snapshot.
func (r *Iterator[T]) Index() int {
	return r.current
}

func (r *Iterator[T]) Next() bool {
	r.current++
	return r.current < len(r.entries)
}

func (r *Iterator[T]) Len() int {
	return len(r.entries)
}
