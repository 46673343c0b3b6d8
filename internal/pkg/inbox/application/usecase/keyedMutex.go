package usecase

import "sync"

// keyedMutex serializes work per string key while leaving distinct keys fully
// independent. Ingestion uses it so two messages from the same sender cannot
// race the resolve-then-create or first-phone-wins steps, without funneling
// unrelated conversations through one lock.
//
// Locks are created lazily and never evicted; the population is bounded by the
// number of distinct senders, which is fine for a single-process inbox.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
