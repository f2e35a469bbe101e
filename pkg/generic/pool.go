package generic

// Pool recycles instances of T between a free list and an active set.
// An instance is a member of exactly one of the two at any time. Instances
// are created by the generate function, never destroyed; releasing an
// instance only moves it back to the free list.
//
// Pools are owned by a single goroutine (the simulation loop); there is no
// internal locking.
type Pool[T comparable, D any] struct {
	generate func() T
	reset    func(T, D)

	free   []T
	active []T
	index  map[T]int

	created uint64
}

// NewPool creates a pool that grows on demand. The reset function
// re-initializes a recycled instance with the caller's init data before it
// becomes active; a nil reset hands instances out as-is.
func NewPool[T comparable, D any](generate func() T, reset func(T, D)) *Pool[T, D] {
	return &Pool[T, D]{
		generate: generate,
		reset:    reset,
		index:    make(map[T]int),
	}
}

// NewHotPool pre-allocates hotSize instances into the free list so the first
// acquisitions never hit the allocator.
func NewHotPool[T comparable, D any](generate func() T, reset func(T, D), hotSize int) *Pool[T, D] {
	p := NewPool[T, D](generate, reset)
	for i := 0; i < hotSize; i++ {
		p.free = append(p.free, generate())
		p.created++
	}
	return p
}

// Acquire returns a ready instance. The free list is popped LIFO so the most
// recently released instance is reused first; an empty free list grows the
// pool by one. Acquire never fails.
func (p *Pool[T, D]) Acquire(init D) T {
	var item T
	if n := len(p.free); n > 0 {
		item = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		item = p.generate()
		p.created++
	}
	if p.reset != nil {
		p.reset(item, init)
	}
	p.index[item] = len(p.active)
	p.active = append(p.active, item)
	return item
}

// Release returns an active instance to the free list. Releasing an instance
// that is not active is a no-op, so double releases within a tick are safe.
func (p *Pool[T, D]) Release(item T) {
	i, ok := p.index[item]
	if !ok {
		return
	}
	// Swap-remove keeps the active view compact without shifting.
	last := len(p.active) - 1
	if i != last {
		moved := p.active[last]
		p.active[i] = moved
		p.index[moved] = i
	}
	p.active = p.active[:last]
	delete(p.index, item)
	p.free = append(p.free, item)
}

// ReleaseAll moves every active instance to the free list. The total
// instance count is unchanged.
func (p *Pool[T, D]) ReleaseAll() {
	p.free = append(p.free, p.active...)
	p.active = p.active[:0]
	clear(p.index)
}

// Active returns the current active members. The slice is owned by the pool:
// callers must treat it as read-only and must not retain it across Acquire
// or Release calls.
func (p *Pool[T, D]) Active() []T {
	return p.active
}

// Stats reports the free/active partition. Total only ever grows; sustained
// Acquire pressure without matching Release shows up here rather than as an
// error.
type Stats struct {
	Free   int
	Active int
	Total  uint64
}

func (p *Pool[T, D]) Stats() Stats {
	return Stats{
		Free:   len(p.free),
		Active: len(p.active),
		Total:  p.created,
	}
}
