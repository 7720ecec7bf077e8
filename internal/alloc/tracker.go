package alloc

import "sync"

// Tracker is an allocator that counts live buffers and can refuse
// allocations once a byte budget is exhausted.
type Tracker struct {
	mu       sync.Mutex
	limit    int
	used     int
	allocs   int
	frees    int
	live     map[*byte]int
	lastSize uintptr
}

// NewTracker returns a Tracker. A limit of zero or less means unlimited.
func NewTracker(limit int) *Tracker {
	return &Tracker{limit: limit, live: make(map[*byte]int)}
}

// Allocator exposes the tracker through the Allocator contract.
func (t *Tracker) Allocator() *Allocator {
	return &Allocator{
		Allocate: func(userData any, size, alignment uintptr) []byte {
			return userData.(*Tracker).allocate(size)
		},
		Deallocate: func(userData any, buf []byte) {
			userData.(*Tracker).deallocate(buf)
		},
		UserData: t,
	}
}

func (t *Tracker) allocate(size uintptr) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSize = size
	if size == 0 {
		return nil
	}
	if t.limit > 0 && t.used+int(size) > t.limit {
		return nil
	}
	buf := make([]byte, size)
	t.used += int(size)
	t.allocs++
	t.live[&buf[0]] = int(size)
	return buf
}

func (t *Tracker) deallocate(buf []byte) {
	if len(buf) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	size, ok := t.live[&buf[0]]
	if !ok {
		return
	}
	delete(t.live, &buf[0])
	t.used -= size
	t.frees++
}

// Allocations reports how many buffers were handed out.
func (t *Tracker) Allocations() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs
}

// Frees reports how many buffers were released.
func (t *Tracker) Frees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees
}

// Live reports buffers not yet released.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LastRequest reports the size of the most recent allocation attempt.
func (t *Tracker) LastRequest() uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSize
}
