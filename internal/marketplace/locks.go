package marketplace

import "sync"

// productLocks serializes all lifecycle work on a single product so that
// concurrent transitions cannot race the single-active-request invariant.
type productLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newProductLocks() *productLocks {
	return &productLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for one product and returns its unlock func.
func (l *productLocks) lock(productID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[productID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[productID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
