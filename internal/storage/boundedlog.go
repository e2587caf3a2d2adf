package storage

// BoundedLog is a fixed-capacity FIFO history. Appending beyond the
// capacity evicts the oldest entry. It is not safe for concurrent use;
// callers guard it with their own lock.
type BoundedLog[T any] struct {
	capacity int
	items    []T
}

// NewBoundedLog creates a log that retains at most capacity entries.
func NewBoundedLog[T any](capacity int) *BoundedLog[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &BoundedLog[T]{capacity: capacity}
}

// Append adds v, evicting the oldest entry when the log is full.
func (l *BoundedLog[T]) Append(v T) {
	if len(l.items) == l.capacity {
		copy(l.items, l.items[1:])
		l.items[len(l.items)-1] = v
		return
	}
	l.items = append(l.items, v)
}

// Tail returns the most recent limit entries in insertion order.
// A non-positive limit returns everything retained.
func (l *BoundedLog[T]) Tail(limit int) []T {
	n := len(l.items)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]T, limit)
	copy(out, l.items[n-limit:])
	return out
}

// Len is the number of retained entries.
func (l *BoundedLog[T]) Len() int { return len(l.items) }
