package asyncgen

import "sort"

type lesser[E any] interface {
	less(v E) bool
}

// priorityqueue keeps its elements sorted; equal elements keep their
// insertion order.
type priorityqueue[E lesser[E]] struct {
	s    []E
	head int
}

func (q *priorityqueue[E]) Empty() bool {
	return q.head == len(q.s)
}

func (q *priorityqueue[E]) Len() int {
	return len(q.s) - q.head
}

func (q *priorityqueue[E]) Push(v E) {
	if q.head != 0 && len(q.s) == cap(q.s) {
		n := copy(q.s, q.s[q.head:])
		clear(q.s[n:])
		q.s = q.s[:n]
		q.head = 0
	}

	live := q.s[q.head:]
	i := q.head + sort.Search(len(live), func(i int) bool {
		return v.less(live[i])
	})

	var zero E
	q.s = append(q.s, zero)
	copy(q.s[i+1:], q.s[i:])
	q.s[i] = v
}

func (q *priorityqueue[E]) Pop() (v E) {
	q.s[q.head], v = v, q.s[q.head]
	q.head++

	if q.head == len(q.s) {
		q.s, q.head = q.s[:0], 0
	}

	return v
}
