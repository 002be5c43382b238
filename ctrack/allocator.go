package ctrack

// idAllocator issues strictly increasing track identifiers starting at 1.
// Identifiers are never reused within a session; removing a track does not
// free its id. One allocator belongs to exactly one session and is not safe
// for sharing across sessions.
type idAllocator struct {
	last int64
}

func (a *idAllocator) next() int64 {
	a.last++
	return a.last
}
